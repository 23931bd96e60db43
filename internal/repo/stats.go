// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) and the analytics endpoints
// backing the admin dashboard.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// SessionsStats returns aggregate metadata for a tourist's sessions: total
// row count and the latest updatedAt. With an empty touristID the stats span
// all sessions. Used for weak ETags on the session list; updatedAt moves on
// close, guide assignment, and soft delete, so in-place mutations invalidate
// the tag even though the row count stays put.
func SessionsStats(ctx context.Context, db *gorm.DB, touristID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ChatSession{})
	if touristID != "" {
		q = q.Where("tourist_id = ?", touristID)
	}
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Fetch the latest updated_at directly (avoid MAX() -> TEXT in SQLite).
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// MessagesStats returns aggregate metadata for messages within a session:
// total row count and the latest updatedAt. Used for weak ETags on the
// message list; read marks and soft deletes bump updatedAt without adding
// rows.
func MessagesStats(ctx context.Context, db *gorm.DB, sessionID int) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ChatMessage{}).Where("session_id = ?", sessionID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// CategoryCount is one row of the sessions-per-category aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// SessionCountsByCategory returns session volume grouped by category.
func SessionCountsByCategory(ctx context.Context, db *gorm.DB) ([]CategoryCount, error) {
	var out []CategoryCount
	err := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&out).Error
	return out, err
}

// GuideReviewSummary is one row of the per-guide review aggregate.
type GuideReviewSummary struct {
	GuideID     int     `json:"guideId"`
	GuideName   string  `json:"guideName"`
	ReviewCount int64   `json:"reviewCount"`
	AvgRating   float64 `json:"avgRating"`
}

// ReviewSummaryByGuide returns review counts and mean ratings per guide,
// best-rated first. Guides without reviews are omitted.
func ReviewSummaryByGuide(ctx context.Context, db *gorm.DB) ([]GuideReviewSummary, error) {
	var out []GuideReviewSummary
	err := db.WithContext(ctx).
		Model(&domain.SessionReview{}).
		Select("session_reviews.guide_id AS guide_id, guides.name AS guide_name, COUNT(*) AS review_count, AVG(session_reviews.rating) AS avg_rating").
		Joins("JOIN guides ON guides.id = session_reviews.guide_id").
		Group("session_reviews.guide_id, guides.name").
		Order("avg_rating DESC, review_count DESC").
		Scan(&out).Error
	return out, err
}

// OverviewStats is the headline block on the analytics page.
type OverviewStats struct {
	Guides        int64 `json:"guides"`
	ActiveGuides  int64 `json:"activeGuides"`
	Hotels        int64 `json:"hotels"`
	Sessions      int64 `json:"sessions"`
	OpenSessions  int64 `json:"openSessions"`
	Messages      int64 `json:"messages"`
	Reviews       int64 `json:"reviews"`
	Announcements int64 `json:"announcements"`
}

// Overview collects the headline counters in a handful of cheap COUNTs.
func Overview(ctx context.Context, db *gorm.DB) (OverviewStats, error) {
	var st OverviewStats
	type probe struct {
		dst   *int64
		model any
		where []any
	}
	probes := []probe{
		{&st.Guides, &domain.Guide{}, nil},
		{&st.ActiveGuides, &domain.Guide{}, []any{"is_active = ?", true}},
		{&st.Hotels, &domain.Hotel{}, nil},
		{&st.Sessions, &domain.ChatSession{}, nil},
		{&st.OpenSessions, &domain.ChatSession{}, []any{"closed_at IS NULL"}},
		{&st.Messages, &domain.ChatMessage{}, nil},
		{&st.Reviews, &domain.SessionReview{}, nil},
		{&st.Announcements, &domain.Announcement{}, nil},
	}
	for _, p := range probes {
		q := db.WithContext(ctx).Model(p.model)
		if len(p.where) > 0 {
			q = q.Where(p.where[0], p.where[1:]...)
		}
		if err := q.Count(p.dst).Error; err != nil {
			return st, err
		}
	}
	return st, nil
}
