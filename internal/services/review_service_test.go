package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func reviewFixtures(t *testing.T) (*gorm.DB, *ReviewService, *domain.Guide, *domain.ChatSession) {
	t.Helper()
	db := newSvcDB(t, &domain.Guide{}, &domain.ChatSession{}, &domain.SessionReview{})

	g := domain.Guide{Name: "Elif", Email: "elif@example.com", IsActive: true}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("seed guide: %v", err)
	}
	now := time.Now().UTC()
	sess := domain.ChatSession{
		Category:  domain.CategoryMedicalAssist,
		GuideID:   &g.ID,
		TouristID: "t-1",
		IsActive:  false,
		ClosedAt:  &now,
	}
	if err := db.Create(&sess).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	svc := NewReviewService(db, NewGuideService(db), true)
	return db, svc, &g, &sess
}

func TestLeaveReview_OncePerSessionTourist(t *testing.T) {
	_, svc, g, sess := reviewFixtures(t)
	ctx := context.Background()

	r, err := svc.Leave(ctx, &domain.SessionReview{
		SessionID: sess.ID, GuideID: g.ID, TouristID: "t-1", Rating: 5,
	})
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if r.ID == 0 {
		t.Fatal("review id not assigned")
	}

	_, err = svc.Leave(ctx, &domain.SessionReview{
		SessionID: sess.ID, GuideID: g.ID, TouristID: "t-1", Rating: 1,
	})
	if err != ErrDuplicateReview {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestLeaveReview_RequiresClosedSession(t *testing.T) {
	db, svc, g, _ := reviewFixtures(t)
	ctx := context.Background()

	open := domain.ChatSession{
		Category:  domain.CategoryBookingTours,
		GuideID:   &g.ID,
		TouristID: "t-2",
		IsActive:  true,
	}
	if err := db.Create(&open).Error; err != nil {
		t.Fatalf("seed open session: %v", err)
	}

	_, err := svc.Leave(ctx, &domain.SessionReview{
		SessionID: open.ID, GuideID: g.ID, TouristID: "t-2", Rating: 4,
	})
	if err != ErrReviewRequiresClosed {
		t.Fatalf("expected ErrReviewRequiresClosed, got %v", err)
	}

	svc.RequireClosed = false
	if _, err := svc.Leave(ctx, &domain.SessionReview{
		SessionID: open.ID, GuideID: g.ID, TouristID: "t-2", Rating: 4,
	}); err != nil {
		t.Fatalf("open-session review should pass when not required closed: %v", err)
	}
}

func TestLeaveReview_GuideMismatch(t *testing.T) {
	db, svc, _, sess := reviewFixtures(t)
	ctx := context.Background()

	other := domain.Guide{Name: "Kemal", Email: "kemal@example.com", IsActive: true}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other guide: %v", err)
	}

	_, err := svc.Leave(ctx, &domain.SessionReview{
		SessionID: sess.ID, GuideID: other.ID, TouristID: "t-1", Rating: 3,
	})
	if err != ErrReviewGuideMismatch {
		t.Fatalf("expected ErrReviewGuideMismatch, got %v", err)
	}
}

func TestLeaveReview_UnknownSession(t *testing.T) {
	_, svc, g, _ := reviewFixtures(t)

	_, err := svc.Leave(context.Background(), &domain.SessionReview{
		SessionID: 777, GuideID: g.ID, TouristID: "t-1", Rating: 5,
	})
	if err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLeaveReview_RefreshesGuideAggregates(t *testing.T) {
	db, svc, g, sess := reviewFixtures(t)
	ctx := context.Background()

	if _, err := svc.Leave(ctx, &domain.SessionReview{
		SessionID: sess.ID, GuideID: g.ID, TouristID: "t-1", Rating: 4,
	}); err != nil {
		t.Fatalf("review: %v", err)
	}

	var fresh domain.Guide
	if err := db.First(&fresh, g.ID).Error; err != nil {
		t.Fatalf("reload guide: %v", err)
	}
	if fresh.Rating != 4 {
		t.Fatalf("guide rating not refreshed: %d", fresh.Rating)
	}
	if fresh.TotalHelped != 1 {
		t.Fatalf("closed session should count toward totalHelped: %d", fresh.TotalHelped)
	}
}

func TestForSession_NilWhenUnreviewed(t *testing.T) {
	_, svc, _, sess := reviewFixtures(t)

	r, err := svc.ForSession(context.Background(), sess.ID, "t-1")
	if err != nil {
		t.Fatalf("for session: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil review, got %+v", r)
	}
}

func TestForGuide_UnknownGuide(t *testing.T) {
	_, svc, _, _ := reviewFixtures(t)

	if _, err := svc.ForGuide(context.Background(), 999); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}
}
