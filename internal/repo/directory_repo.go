// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the two
// directory-style entities: DepartureSchedule and EmergencyContact.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateDepartureSchedule inserts a new departure sheet row.
func CreateDepartureSchedule(ctx context.Context, db *gorm.DB, d *domain.DepartureSchedule) error {
	d.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(d).Error
}

// GetDepartureSchedule fetches a departure sheet by id, or ErrNotFound.
func GetDepartureSchedule(ctx context.Context, db *gorm.DB, id int) (*domain.DepartureSchedule, error) {
	var d domain.DepartureSchedule
	if err := db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDepartureSchedules returns departure sheets newest first, honoring the
// optional active filter.
func ListDepartureSchedules(ctx context.Context, db *gorm.DB, active *bool) ([]domain.DepartureSchedule, error) {
	var out []domain.DepartureSchedule
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// CreateEmergencyContact inserts a new contact row.
func CreateEmergencyContact(ctx context.Context, db *gorm.DB, c *domain.EmergencyContact) error {
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(c).Error
}

// GetEmergencyContact fetches a contact by id, or ErrNotFound.
func GetEmergencyContact(ctx context.Context, db *gorm.DB, id int) (*domain.EmergencyContact, error) {
	var c domain.EmergencyContact
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListEmergencyContacts returns contacts ordered by name, optionally
// filtered by kind (medical, guide-manager, general) and active flag.
func ListEmergencyContacts(ctx context.Context, db *gorm.DB, kind string, active *bool) ([]domain.EmergencyContact, error) {
	var out []domain.EmergencyContact
	q := db.WithContext(ctx).Order("name asc, id asc")
	if kind != "" {
		q = q.Where("type = ?", kind)
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}
