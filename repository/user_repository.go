package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"messenger-api/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a non-deleted user by normalized email. Returns
// nil, nil when absent.
func (repository UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByIDs returns the non-deleted users among ids. Soft-deleted
// rows are excluded by the gorm soft-delete scope.
func (repository UserRepository) FindActiveByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (repository UserRepository) UpdateRefreshToken(ctx context.Context, db *gorm.DB, userID string, digest *string) error {
	return db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("refresh_token", digest).Error
}

func (repository UserRepository) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, updates map[string]interface{}) error {
	return db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}
