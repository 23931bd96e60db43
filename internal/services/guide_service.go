// Package services – GuideService
//
// This file implements the GuideService, which manages guide profiles and
// their derived aggregates. Display names are normalized (trimmed, collapsed
// whitespace, title-cased per locale) before storage. Aggregates (rating,
// totalHelped, avgResponseTime) are recomputed from reviews and closed
// sessions rather than mutated incrementally, so a refresh is always safe to
// repeat.
package services

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// GuideService provides guide-profile operations and aggregate refresh.
type GuideService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// NameLocale controls title-casing of guide display names.
	NameLocale language.Tag
}

// NewGuideService constructs a GuideService with a locale-neutral name caser.
func NewGuideService(db *gorm.DB) *GuideService {
	return &GuideService{DB: db, NameLocale: language.Und}
}

// Create normalizes the display name and inserts the guide. A linked userId
// must reference an existing user (ErrUserNotFound otherwise); a duplicate
// email returns ErrDuplicateGuideEmail.
func (s *GuideService) Create(ctx context.Context, g *domain.Guide) (*domain.Guide, error) {
	g.Name = s.normalizeName(g.Name)
	if g.UserID != nil {
		if ok, err := repo.UserExists(ctx, s.DB, *g.UserID); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrUserNotFound
		}
	}
	if err := repo.CreateGuide(ctx, s.DB, g); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateGuideEmail
		}
		return nil, err
	}
	return g, nil
}

// Get returns the guide with the given ID, or ErrGuideNotFound.
func (s *GuideService) Get(ctx context.Context, id int) (*domain.Guide, error) {
	g, err := repo.GetGuide(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	return g, nil
}

// GetWithAssignments returns the guide together with its roster assignments.
func (s *GuideService) GetWithAssignments(ctx context.Context, id int) (*domain.Guide, []domain.GuideAssignment, error) {
	g, as, err := repo.GetGuideWithAssignments(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrGuideNotFound
		}
		return nil, nil, err
	}
	return g, as, nil
}

// List returns guides, optionally filtered by active state.
func (s *GuideService) List(ctx context.Context, active *bool) ([]domain.Guide, error) {
	return repo.ListGuides(ctx, s.DB, active)
}

// ListPage returns a page of guides plus the total count. It applies
// defaults for invalid page/pageSize.
func (s *GuideService) ListPage(ctx context.Context, active *bool, page, pageSize int) ([]domain.Guide, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountGuides(ctx, s.DB, active)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Guide{}, 0, nil
	}

	items, err := repo.ListGuidesPage(ctx, s.DB, active, offset, pageSize)
	return items, total, err
}

// SetActive flips the guide's active flag. Deactivation hides the guide from
// active-only listings; it never deletes the row.
func (s *GuideService) SetActive(ctx context.Context, id int, active bool) error {
	if err := repo.SetGuideActive(ctx, s.DB, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrGuideNotFound
		}
		return err
	}
	return nil
}

// RefreshAggregates recomputes the guide's derived fields from stored data:
// rating is the rounded mean of review ratings, totalHelped is the number of
// closed sessions the guide handled, and avgResponseTime is the mean minutes
// between session open and close for those sessions.
func (s *GuideService) RefreshAggregates(ctx context.Context, id int) error {
	if ok, err := repo.GuideExists(ctx, s.DB, id); err != nil {
		return err
	} else if !ok {
		return ErrGuideNotFound
	}

	stats, err := repo.ReviewStatsForGuide(ctx, s.DB, id)
	if err != nil {
		return err
	}
	rating := int(math.Round(stats.AvgRating))

	gid := id
	active := false
	sessions, err := repo.ListSessionsPage(ctx, s.DB, repo.SessionFilter{GuideID: &gid, Active: &active}, 0, 10000)
	if err != nil {
		return err
	}
	helped := 0
	var totalMinutes time.Duration
	for _, sess := range sessions {
		if sess.ClosedAt == nil {
			continue
		}
		helped++
		totalMinutes += sess.ClosedAt.Sub(sess.CreatedAt)
	}
	avgMinutes := 0
	if helped > 0 {
		avgMinutes = int(totalMinutes.Minutes()) / helped
	}

	return repo.UpdateGuideAggregates(ctx, s.DB, id, rating, helped, avgMinutes)
}

// normalizeName trims, collapses whitespace, and title-cases the name.
func (s *GuideService) normalizeName(name string) string {
	name = nameSpaceRE.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return name
	}
	return cases.Title(s.NameLocale, cases.NoLower).String(name)
}

// nameSpaceRE collapses consecutive whitespace to a single space.
var nameSpaceRE = regexp.MustCompile(`\s+`)
