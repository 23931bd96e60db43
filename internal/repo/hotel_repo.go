// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Hotel model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateHotel inserts a new hotel row.
func CreateHotel(ctx context.Context, db *gorm.DB, h *domain.Hotel) error {
	h.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(h).Error
}

// GetHotel fetches a single hotel by id, or ErrNotFound.
func GetHotel(ctx context.Context, db *gorm.DB, id int) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHotels returns hotels ordered by name. When active is non-nil, only
// rows with the matching isActive flag are returned.
func ListHotels(ctx context.Context, db *gorm.DB, active *bool) ([]domain.Hotel, error) {
	var out []domain.Hotel
	q := db.WithContext(ctx).Order("name asc, id asc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// SetHotelActive toggles the soft-enable flag. Returns ErrNotFound when no
// row was affected.
func SetHotelActive(ctx context.Context, db *gorm.DB, id int, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Hotel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HotelExists reports whether a hotel row with the given id exists.
func HotelExists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
