// Package services – ReviewService
//
// This file implements the ReviewService, which governs how tourists rate a
// guide after a chat session. It enforces business rules (session existence,
// optional closed-session requirement, guide match, one review per session
// and tourist) and refreshes the guide's aggregates after every accepted
// review so listings never serve stale scores.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// ReviewService implements the use-cases around session reviews.
type ReviewService struct {
	// DB is the database handle used for all review operations.
	DB *gorm.DB
	// Guides refreshes guide aggregates after a review lands.
	Guides *GuideService

	// RequireClosed rejects reviews for sessions that are still open.
	RequireClosed bool
}

// NewReviewService constructs a ReviewService that refreshes aggregates
// through the given GuideService.
func NewReviewService(db *gorm.DB, guides *GuideService, requireClosed bool) *ReviewService {
	return &ReviewService{DB: db, Guides: guides, RequireClosed: requireClosed}
}

// Leave records a review for the session on behalf of the tourist.
//
// Semantics and validation:
//   - The session must exist; otherwise ErrSessionNotFound.
//   - When RequireClosed is set, the session must have closedAt stamped;
//     otherwise ErrReviewRequiresClosed.
//   - When the session has an assigned guide, the review's guideId must
//     match it; otherwise ErrReviewGuideMismatch. An unassigned session
//     accepts any existing guide.
//   - One review per (session, tourist); repeats yield ErrDuplicateReview.
//
// After a successful insert the guide's aggregates are recomputed. An
// aggregate-refresh failure does not undo the review.
func (s *ReviewService) Leave(ctx context.Context, r *domain.SessionReview) (*domain.SessionReview, error) {
	sess, err := repo.GetSession(ctx, s.DB, r.SessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if s.RequireClosed && !sess.Closed() {
		return nil, ErrReviewRequiresClosed
	}

	if sess.GuideID != nil {
		if r.GuideID != *sess.GuideID {
			return nil, ErrReviewGuideMismatch
		}
	} else if ok, err := repo.GuideExists(ctx, s.DB, r.GuideID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrGuideNotFound
	}

	if err := repo.CreateReview(ctx, s.DB, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if s.Guides != nil {
		// Refresh aggregates on a best-effort basis after the insert.
		_ = s.Guides.RefreshAggregates(ctx, r.GuideID)
	}
	return r, nil
}

// ForSession returns the tourist's review of the session, or a nil review
// when the tourist has not reviewed it yet.
func (s *ReviewService) ForSession(ctx context.Context, sessionID int, touristID string) (*domain.SessionReview, error) {
	r, err := repo.GetReviewForSession(ctx, s.DB, sessionID, touristID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// ForGuide returns all reviews left for a guide, newest first. Unknown
// guides yield ErrGuideNotFound.
func (s *ReviewService) ForGuide(ctx context.Context, guideID int) ([]domain.SessionReview, error) {
	if ok, err := repo.GuideExists(ctx, s.DB, guideID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrGuideNotFound
	}
	return repo.ListReviewsForGuide(ctx, s.DB, guideID)
}
