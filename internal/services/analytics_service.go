// Package services – AnalyticsService
//
// This file implements the AnalyticsService, which backs the admin analytics
// dashboard: an overview of table counts, session counts by category, and a
// per-guide review summary. All figures are computed from stored rows at
// request time; nothing is cached.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// OverviewReport is the admin dashboard headline block: totals per table
// plus session counts broken down by category.
type OverviewReport struct {
	Totals     repo.OverviewStats   `json:"totals"`
	ByCategory []repo.CategoryCount `json:"byCategory"`
}

// AnalyticsService computes dashboard figures from stored rows.
type AnalyticsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// Overview returns table totals and the per-category session breakdown.
func (s *AnalyticsService) Overview(ctx context.Context) (*OverviewReport, error) {
	totals, err := repo.Overview(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	byCat, err := repo.SessionCountsByCategory(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return &OverviewReport{Totals: totals, ByCategory: byCat}, nil
}

// GuideSummaries returns the per-guide review summary (count and average
// rating per guide). Guides without any review are omitted.
func (s *AnalyticsService) GuideSummaries(ctx context.Context) ([]repo.GuideReviewSummary, error) {
	return repo.ReviewSummaryByGuide(ctx, s.DB)
}
