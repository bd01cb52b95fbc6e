package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/entity"
	"messenger-api/repository"
)

type UserUsecaseImpl struct {
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewUserUsecase(userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, Validate: validate, DB: DB, Logger: logger}
}

func (uc *UserUsecaseImpl) GetUser(ctx context.Context, id string) (res.UserResponse, error) {
	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.UserResponse{}, apperror.NotFound("user not found")
		}
		return res.UserResponse{}, apperror.Internal("failed to find user", err)
	}
	return res.NewUserResponse(user), nil
}

func (uc *UserUsecaseImpl) ListUsers(ctx context.Context) ([]res.UserResponse, error) {
	var users []entity.User
	if err := uc.UserRepository.FindAll(ctx, uc.DB, &users); err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}

	responses := make([]res.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, res.NewUserResponse(user))
	}
	return responses, nil
}

func (uc *UserUsecaseImpl) UpdateProfile(ctx context.Context, id string, request *req.UpdateProfileRequest, callerID string) error {
	if id != callerID {
		return apperror.Forbidden("cannot update another user's profile")
	}

	if err := uc.Validate.Struct(request); err != nil {
		return err
	}

	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal("failed to find user", err)
	}

	updates := map[string]interface{}{}
	if request.FirstName != nil {
		updates["first_name"] = *request.FirstName
	}
	if request.LastName != nil {
		updates["last_name"] = *request.LastName
	}
	if len(updates) == 0 {
		return nil
	}

	if err := uc.UserRepository.UpdateProfile(ctx, uc.DB, id, updates); err != nil {
		return apperror.Internal("failed to update profile", err)
	}
	return nil
}

// DeleteUser soft-deletes the user. The row survives for referential
// integrity; the soft-delete scope keeps the user out of every membership
// and visibility check from here on.
func (uc *UserUsecaseImpl) DeleteUser(ctx context.Context, id string) error {
	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal("failed to find user", err)
	}

	if err := uc.UserRepository.Delete(ctx, uc.DB, &user); err != nil {
		return apperror.Internal("failed to delete user", err)
	}
	return nil
}
