// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// SessionReview model and the review aggregates consumed by the analytics
// and guide layers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateReview inserts a review row. A second review for the same
// (session, tourist) pair violates the unique index and surfaces as
// ErrDuplicate.
func CreateReview(ctx context.Context, db *gorm.DB, r *domain.SessionReview) error {
	r.CreatedAt = time.Now().UTC()
	err := db.WithContext(ctx).Create(r).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetReviewForSession fetches the review a tourist left on a session, or
// ErrNotFound.
func GetReviewForSession(ctx context.Context, db *gorm.DB, sessionID int, touristID string) (*domain.SessionReview, error) {
	var r domain.SessionReview
	err := db.WithContext(ctx).
		Where("session_id = ? AND tourist_id = ?", sessionID, touristID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReviewsForGuide returns the reviews left on a guide, newest first
// (the guide→reviews join path).
func ListReviewsForGuide(ctx context.Context, db *gorm.DB, guideID int) ([]domain.SessionReview, error) {
	var out []domain.SessionReview
	err := db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}

// GuideReviewStats holds the review aggregates for a single guide.
type GuideReviewStats struct {
	GuideID   int
	Count     int64
	AvgRating float64
}

// ReviewStatsForGuide returns the count and mean rating of a guide's reviews.
// A guide with no reviews yields a zero-value stats row, not an error.
func ReviewStatsForGuide(ctx context.Context, db *gorm.DB, guideID int) (GuideReviewStats, error) {
	st := GuideReviewStats{GuideID: guideID}
	row := db.WithContext(ctx).
		Model(&domain.SessionReview{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg_rating").
		Where("guide_id = ?", guideID).
		Row()
	if err := row.Scan(&st.Count, &st.AvgRating); err != nil {
		return st, err
	}
	return st, nil
}
