package postgres

import (
	"context"
	"fmt"

	"kledje/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return storeError("create user", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User

	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, storeError("find user by id", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User

	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, storeError("find user by email", err)
	}

	return &user, nil
}

// Update writes only the named columns of user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}

	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Select(append(columns, "updated_at")).
		Updates(user)
	if result.Error != nil {
		return storeError("update user", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update user: %w", domain.ErrNotFound)
	}

	return nil
}
