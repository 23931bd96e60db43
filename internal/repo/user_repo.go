// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateUser inserts a user row. The caller supplies an already-hashed
// password; the id is assigned by the store.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()
	err := db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id int) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by unique username, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users ordered by creation time descending.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

// UserExists reports whether a user row with the given id exists.
func UserExists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
