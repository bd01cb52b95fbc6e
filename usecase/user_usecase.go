package usecase

import (
	"context"

	"messenger-api/dto/req"
	"messenger-api/dto/res"
)

type UserUsecase interface {
	GetUser(ctx context.Context, id string) (res.UserResponse, error)
	ListUsers(ctx context.Context) ([]res.UserResponse, error)
	UpdateProfile(ctx context.Context, id string, request *req.UpdateProfileRequest, callerID string) error
	DeleteUser(ctx context.Context, id string) error
}
