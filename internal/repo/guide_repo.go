// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Guide model.
//
// Functions:
//
//   - CreateGuide(ctx, db, g) -> error
//     Inserts a new guide row (ErrDuplicate on email collisions).
//
//   - GetGuide(ctx, db, id) -> *domain.Guide, error
//     Fetches a single guide, or ErrNotFound.
//
//   - GetGuideWithAssignments(ctx, db, id) -> guide + eager-loaded roster.
//
//   - ListGuides / ListGuidesPage / CountGuides
//     Read paths with optional active-only filtering and pagination.
//
//   - SetGuideActive(ctx, db, id, active) -> error
//     Soft enable/disable; guides are never physically deleted.
//
//   - UpdateGuideAggregates(ctx, db, id, rating, totalHelped, avgResponse)
//     Refreshes the derived columns from review/session data.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateGuide inserts a new guide row. The assigned id and createdAt are
// written back into g. Email collisions surface as ErrDuplicate.
func CreateGuide(ctx context.Context, db *gorm.DB, g *domain.Guide) error {
	g.CreatedAt = time.Now().UTC()
	err := db.WithContext(ctx).Create(g).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetGuide fetches a single guide by id, or ErrNotFound.
func GetGuide(ctx context.Context, db *gorm.DB, id int) (*domain.Guide, error) {
	var g domain.Guide
	if err := db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGuideWithAssignments fetches a guide together with its assignment rows,
// following the declared has-many relation.
func GetGuideWithAssignments(ctx context.Context, db *gorm.DB, id int) (*domain.Guide, []domain.GuideAssignment, error) {
	g, err := GetGuide(ctx, db, id)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := ListAssignmentsForGuide(ctx, db, id, nil)
	if err != nil {
		return nil, nil, err
	}
	return g, assignments, nil
}

// ListGuides returns guides ordered by creation time descending. When active
// is non-nil, only rows with the matching isActive flag are returned.
func ListGuides(ctx context.Context, db *gorm.DB, active *bool) ([]domain.Guide, error) {
	var out []domain.Guide
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountGuides returns the total number of guides, honoring the active filter.
func CountGuides(ctx context.Context, db *gorm.DB, active *bool) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Guide{})
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Count(&total).Error
	return total, err
}

// ListGuidesPage returns a paginated slice of guides. The caller computes
// offset and limit (e.g. (page-1)*pageSize).
func ListGuidesPage(ctx context.Context, db *gorm.DB, active *bool, offset, limit int) ([]domain.Guide, error) {
	var out []domain.Guide
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// SetGuideActive toggles the soft-enable flag. Returns ErrNotFound when no
// row was affected.
func SetGuideActive(ctx context.Context, db *gorm.DB, id int, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Guide{}).
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

// UpdateGuideAggregates writes the derived performance columns in one update.
func UpdateGuideAggregates(ctx context.Context, db *gorm.DB, id, rating, totalHelped, avgResponseMinutes int) error {
	res := db.WithContext(ctx).
		Model(&domain.Guide{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":            rating,
			"total_helped":      totalHelped,
			"avg_response_time": avgResponseMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GuideExists reports whether a guide row with the given id exists.
func GuideExists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Guide{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
