// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// GuideAssignment model, including the join helpers that walk the declared
// guide→assignments and hotel→assignments relations.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateAssignment inserts a new assignment row. Referential checks against
// the guide and hotel tables are the service layer's job and run in the same
// transaction as this insert.
func CreateAssignment(ctx context.Context, db *gorm.DB, a *domain.GuideAssignment) error {
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(a).Error
}

// GetAssignment fetches a single assignment by id, or ErrNotFound.
func GetAssignment(ctx context.Context, db *gorm.DB, id int) (*domain.GuideAssignment, error) {
	var a domain.GuideAssignment
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAssignments returns all assignments ordered by creation time
// descending, honoring the optional active filter.
func ListAssignments(ctx context.Context, db *gorm.DB, active *bool) ([]domain.GuideAssignment, error) {
	var out []domain.GuideAssignment
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListAssignmentsForGuide returns the assignment rows whose guide_id foreign
// key points at guideID (the guide→assignments join path).
func ListAssignmentsForGuide(ctx context.Context, db *gorm.DB, guideID int, active *bool) ([]domain.GuideAssignment, error) {
	var out []domain.GuideAssignment
	q := db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListAssignmentsForHotel returns the assignment rows whose hotel_id foreign
// key points at hotelID (the hotel→assignments join path).
func ListAssignmentsForHotel(ctx context.Context, db *gorm.DB, hotelID int, active *bool) ([]domain.GuideAssignment, error) {
	var out []domain.GuideAssignment
	q := db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// SetAssignmentActive toggles the soft-enable flag. Returns ErrNotFound when
// no row was affected.
func SetAssignmentActive(ctx context.Context, db *gorm.DB, id int, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.GuideAssignment{}).
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
