package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/entity"
	"messenger-api/enum"
	"messenger-api/repository"
	"messenger-api/security"
	"messenger-api/util"
)

type AuthUsecaseImpl struct {
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
	*security.JWT
}

func NewAuthUsecase(userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger, JWT *security.JWT) AuthUsecase {
	return &AuthUsecaseImpl{UserRepository: userRepository, Validate: validate, DB: DB, Logger: logger, JWT: JWT}
}

func (uc *AuthUsecaseImpl) Signup(ctx context.Context, request *req.SignupRequest) (res.TokenResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.TokenResponse{}, err
	}

	hashed, err := util.HashPassword(request.Password)
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("failed to hash password", err)
	}

	user := &entity.User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     strings.ToLower(strings.TrimSpace(request.Email)),
		Password:  hashed,
		Role:      enum.RoleUser,
	}

	if err := uc.UserRepository.Save(ctx, uc.DB, user); err != nil {
		existing, findErr := uc.UserRepository.FindByEmail(ctx, uc.DB, user.Email)
		if findErr == nil && existing != nil {
			return res.TokenResponse{}, apperror.Conflict("email already registered")
		}
		uc.Logger.WithError(err).Error("Failed to create user")
		return res.TokenResponse{}, apperror.Internal("failed to create user", err)
	}

	return uc.issueTokens(ctx, user.ID)
}

func (uc *AuthUsecaseImpl) Signin(ctx context.Context, request *req.SigninRequest) (res.TokenResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.TokenResponse{}, err
	}

	user, err := uc.UserRepository.FindByEmail(ctx, uc.DB, strings.TrimSpace(request.Email))
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return res.TokenResponse{}, apperror.Authentication("invalid email or password")
	}

	if !util.ComparePassword(user.Password, request.Password) {
		return res.TokenResponse{}, apperror.Authentication("invalid email or password")
	}

	return uc.issueTokens(ctx, user.ID)
}

// Refresh rotates the token pair. The presented refresh token must match
// the stored digest; after rotation the old token can never be used again.
func (uc *AuthUsecaseImpl) Refresh(ctx context.Context, userID, presentedToken string) (res.TokenResponse, error) {
	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.TokenResponse{}, apperror.Authentication("invalid refresh token")
		}
		return res.TokenResponse{}, apperror.Internal("failed to look up user", err)
	}

	if user.RefreshToken == nil {
		return res.TokenResponse{}, apperror.Authentication("invalid refresh token")
	}

	if !security.CompareRefreshToken(*user.RefreshToken, presentedToken) {
		return res.TokenResponse{}, apperror.Authentication("invalid refresh token")
	}

	return uc.issueTokens(ctx, user.ID)
}

func (uc *AuthUsecaseImpl) Logout(ctx context.Context, userID string) error {
	if err := uc.UserRepository.UpdateRefreshToken(ctx, uc.DB, userID, nil); err != nil {
		return apperror.Internal("failed to clear refresh token", err)
	}
	return nil
}

// issueTokens generates a fresh pair and stores the refresh digest,
// replacing whatever was there before.
func (uc *AuthUsecaseImpl) issueTokens(ctx context.Context, userID string) (res.TokenResponse, error) {
	tokens, err := uc.JWT.GenerateTokenPair(userID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to generate token pair")
		return res.TokenResponse{}, apperror.Internal("failed to generate tokens", err)
	}

	digest := security.HashRefreshToken(tokens.Refresh)
	if err := uc.UserRepository.UpdateRefreshToken(ctx, uc.DB, userID, &digest); err != nil {
		return res.TokenResponse{}, apperror.Internal("failed to store refresh token", err)
	}

	return res.TokenResponse{AccessToken: tokens.Access, RefreshToken: tokens.Refresh}, nil
}
