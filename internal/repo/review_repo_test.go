package repo

import (
	"context"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestCreateReview_DuplicatePerSessionTourist(t *testing.T) {
	db := newTestDB(t, "revrepo1", &domain.Guide{}, &domain.ChatSession{}, &domain.SessionReview{})
	ctx := context.Background()

	g := &domain.Guide{Name: "Ayşe Demir", Email: "ayse@example.com", IsActive: true}
	if err := CreateGuide(ctx, db, g); err != nil {
		t.Fatalf("seed guide: %v", err)
	}
	s := &domain.ChatSession{Category: domain.CategoryGuideAssist, TouristID: "t-1", IsActive: true}
	if err := CreateSession(ctx, db, s); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	r := &domain.SessionReview{SessionID: s.ID, GuideID: g.ID, TouristID: "t-1", Rating: 5}
	if err := CreateReview(ctx, db, r); err != nil {
		t.Fatalf("first review: %v", err)
	}

	again := &domain.SessionReview{SessionID: s.ID, GuideID: g.ID, TouristID: "t-1", Rating: 1}
	if err := CreateReview(ctx, db, again); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate for second review, got %v", err)
	}

	// A different tourist may still review the same session.
	other := &domain.SessionReview{SessionID: s.ID, GuideID: g.ID, TouristID: "t-2", Rating: 4}
	if err := CreateReview(ctx, db, other); err != nil {
		t.Fatalf("other tourist review: %v", err)
	}
}

func TestReviewStatsForGuide(t *testing.T) {
	db := newTestDB(t, "revrepo2", &domain.Guide{}, &domain.ChatSession{}, &domain.SessionReview{})
	ctx := context.Background()

	g := &domain.Guide{Name: "Mehmet Kaya", Email: "mehmet@example.com", IsActive: true}
	if err := CreateGuide(ctx, db, g); err != nil {
		t.Fatalf("seed guide: %v", err)
	}
	for i, rating := range []int{5, 4, 3} {
		s := &domain.ChatSession{Category: domain.CategoryBookingTours, TouristID: "t-x", IsActive: true}
		if err := CreateSession(ctx, db, s); err != nil {
			t.Fatalf("seed session %d: %v", i, err)
		}
		r := &domain.SessionReview{SessionID: s.ID, GuideID: g.ID, TouristID: "t-x", Rating: rating}
		if err := CreateReview(ctx, db, r); err != nil {
			t.Fatalf("seed review %d: %v", i, err)
		}
	}

	st, err := ReviewStatsForGuide(ctx, db, g.ID)
	if err != nil {
		t.Fatalf("ReviewStatsForGuide: %v", err)
	}
	if st.Count != 3 || st.AvgRating != 4.0 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	empty, err := ReviewStatsForGuide(ctx, db, 999)
	if err != nil {
		t.Fatalf("stats for unreviewed guide: %v", err)
	}
	if empty.Count != 0 || empty.AvgRating != 0 {
		t.Fatalf("unreviewed guide must yield zero stats: %+v", empty)
	}
}

func TestGuideRepo_ActiveFilterAndAggregates(t *testing.T) {
	db := newTestDB(t, "revrepo3", &domain.Guide{})
	ctx := context.Background()

	a := &domain.Guide{Name: "A", Email: "a@example.com", IsActive: true}
	b := &domain.Guide{Name: "B", Email: "b@example.com", IsActive: false}
	for _, g := range []*domain.Guide{a, b} {
		if err := CreateGuide(ctx, db, g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	active := true
	got, err := ListGuides(ctx, db, &active)
	if err != nil || len(got) != 1 || got[0].Email != "a@example.com" {
		t.Fatalf("active filter: %v %+v", err, got)
	}

	if err := UpdateGuideAggregates(ctx, db, a.ID, 5, 12, 7); err != nil {
		t.Fatalf("UpdateGuideAggregates: %v", err)
	}
	fresh, _ := GetGuide(ctx, db, a.ID)
	if fresh.Rating != 5 || fresh.TotalHelped != 12 || fresh.AvgResponseTime != 7 {
		t.Fatalf("aggregates not written: %+v", fresh)
	}

	if err := SetGuideActive(ctx, db, 999, false); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	dup := &domain.Guide{Name: "A2", Email: "a@example.com", IsActive: true}
	if err := CreateGuide(ctx, db, dup); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate for email collision, got %v", err)
	}
}
