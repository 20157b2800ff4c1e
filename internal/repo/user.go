package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
)

// CreateUserIfNotExists inserts u unless the email is already registered.
func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserExists
	}
	return nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var users []models.User
	if err := r.DB.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return 0, nil, err
	}
	return total, users, nil
}

// UpdateUser applies the non-zero fields and returns the stored record.
func (r *GormRepo) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	user, err := r.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return user, nil
	}
	if err := r.DB.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindUserByID(ctx, id)
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return user, nil
}
