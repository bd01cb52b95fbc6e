package usecase

import (
	"context"

	"messenger-api/dto/req"
	"messenger-api/dto/res"
)

type AuthUsecase interface {
	Signup(ctx context.Context, request *req.SignupRequest) (res.TokenResponse, error)
	Signin(ctx context.Context, request *req.SigninRequest) (res.TokenResponse, error)
	Refresh(ctx context.Context, userID, presentedToken string) (res.TokenResponse, error)
	Logout(ctx context.Context, userID string) error
}
