package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewboard/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) (created bool, err error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates the user or updates the existing row with the same username.
// Used by the seed tool; the API never writes users.
func (r *userRepository) Upsert(ctx context.Context, user *model.User) (bool, error) {
	var existing model.User
	err := r.db.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return false, err
	}
	return false, nil
}
