package repo

import (
	"context"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func newTestDB(t *testing.T, name string, migrate ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateSession_RoundTripSuperset(t *testing.T) {
	db := newTestDB(t, "sessrepo1", &domain.ChatSession{})
	ctx := context.Background()
	start := time.Now().UTC()

	s := &domain.ChatSession{
		Category:  domain.CategoryBookingTours,
		TouristID: "tourist-42",
		DeletedBy: domain.StringSet{},
		IsActive:  true,
	}
	if err := CreateSession(ctx, db, s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("id must be server-assigned")
	}

	got, err := GetSession(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	// Select shape is a superset of the insert shape: id/createdAt added,
	// nothing else mutated.
	if got.Category != s.Category || got.TouristID != s.TouristID || !got.IsActive {
		t.Fatalf("insert fields mutated: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.CreatedAt.Before(start.Add(-time.Minute)) {
		t.Fatalf("createdAt not set reasonably: %v", got.CreatedAt)
	}
	if got.ClosedAt != nil {
		t.Fatalf("sessions are created open")
	}
}

func TestCloseSession_SetsClosedAtOnce(t *testing.T) {
	db := newTestDB(t, "sessrepo2", &domain.ChatSession{})
	ctx := context.Background()

	s := &domain.ChatSession{Category: domain.CategoryGuideAssist, IsActive: true}
	if err := CreateSession(ctx, db, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	if err := CloseSession(ctx, db, s.ID, first); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	got, _ := GetSession(ctx, db, s.ID)
	if got.ClosedAt == nil || !got.ClosedAt.Equal(first) || got.IsActive {
		t.Fatalf("close must set closedAt and clear isActive: %+v", got)
	}

	// Closing again keeps the original timestamp.
	if err := CloseSession(ctx, db, s.ID, first.Add(time.Hour)); err != nil {
		t.Fatalf("second close: %v", err)
	}
	got, _ = GetSession(ctx, db, s.ID)
	if !got.ClosedAt.Equal(first) {
		t.Fatalf("second close must not move closedAt: %v", got.ClosedAt)
	}
}

func TestCloseSession_Missing(t *testing.T) {
	db := newTestDB(t, "sessrepo3", &domain.ChatSession{})
	if err := CloseSession(context.Background(), db, 999, time.Now()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkSessionDeleted_SetUnion(t *testing.T) {
	db := newTestDB(t, "sessrepo4", &domain.ChatSession{})
	ctx := context.Background()

	s := &domain.ChatSession{Category: domain.CategoryHotelChange, IsActive: true}
	if err := CreateSession(ctx, db, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Same actor twice keeps one entry; a second actor is added alongside.
	for _, actor := range []string{"tourist-42", "tourist-42", "guide-7"} {
		if err := MarkSessionDeleted(ctx, db, s.ID, actor); err != nil {
			t.Fatalf("MarkSessionDeleted(%s): %v", actor, err)
		}
	}

	got, err := GetSession(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if len(got.DeletedBy) != 2 || got.DeletedBy[0] != "tourist-42" || got.DeletedBy[1] != "guide-7" {
		t.Fatalf("expected set-union [tourist-42 guide-7], got %v", got.DeletedBy)
	}

	// Soft delete never removes the row.
	if _, err := GetSession(ctx, db, s.ID); err != nil {
		t.Fatalf("soft-deleted session must still be fetchable: %v", err)
	}
}

func TestListSessionsPage_Filters(t *testing.T) {
	db := newTestDB(t, "sessrepo5", &domain.ChatSession{})
	ctx := context.Background()

	gid := 3
	seed := []domain.ChatSession{
		{Category: domain.CategoryBookingTours, TouristID: "t-1", IsActive: true},
		{Category: domain.CategoryMedicalAssist, TouristID: "t-1", GuideID: &gid, IsActive: true},
		{Category: domain.CategoryBookingTours, TouristID: "t-2", IsActive: false},
	}
	for i := range seed {
		if err := CreateSession(ctx, db, &seed[i]); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	byTourist, err := ListSessionsPage(ctx, db, SessionFilter{TouristID: "t-1"}, 0, 10)
	if err != nil || len(byTourist) != 2 {
		t.Fatalf("tourist filter: %v, n=%d", err, len(byTourist))
	}

	active := true
	n, err := CountSessions(ctx, db, SessionFilter{Active: &active})
	if err != nil || n != 2 {
		t.Fatalf("active count: %v, n=%d", err, n)
	}

	byGuide, err := ListSessionsPage(ctx, db, SessionFilter{GuideID: &gid}, 0, 10)
	if err != nil || len(byGuide) != 1 || byGuide[0].Category != domain.CategoryMedicalAssist {
		t.Fatalf("guide filter: %v, %+v", err, byGuide)
	}
}
