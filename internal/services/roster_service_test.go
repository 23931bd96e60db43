package services

import (
	"context"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestCreateAssignment_ParentChecks(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{}, &domain.Hotel{}, &domain.GuideAssignment{})
	svc := NewRosterService(db)
	ctx := context.Background()

	base := func() *domain.GuideAssignment {
		return &domain.GuideAssignment{
			GuideID:        1,
			HotelID:        1,
			DaysOfWeek:     []int{1, 3},
			CustomShifts:   []domain.ShiftWindow{{StartTime: "09:00", EndTime: "17:00"}},
			WeekStartDates: []string{"2026-03-02"},
			IsActive:       true,
		}
	}

	if _, err := svc.CreateAssignment(ctx, base()); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}

	g := domain.Guide{Name: "G", Email: "g@example.com", IsActive: true}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("seed guide: %v", err)
	}
	a := base()
	a.GuideID = g.ID
	if _, err := svc.CreateAssignment(ctx, a); err != ErrHotelNotFound {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}

	h := domain.Hotel{Name: "Blue Bay", IsActive: true}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	a = base()
	a.GuideID = g.ID
	a.HotelID = h.ID
	created, err := svc.CreateAssignment(ctx, a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// JSON array columns must round-trip intact.
	got, err := svc.GetAssignment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.DaysOfWeek) != 2 || got.DaysOfWeek[0] != 1 || got.DaysOfWeek[1] != 3 {
		t.Fatalf("daysOfWeek mangled: %v", got.DaysOfWeek)
	}
	if len(got.CustomShifts) != 1 || got.CustomShifts[0].EndTime != "17:00" {
		t.Fatalf("customShifts mangled: %v", got.CustomShifts)
	}
	if len(got.WeekStartDates) != 1 || got.WeekStartDates[0] != "2026-03-02" {
		t.Fatalf("weekStartDates mangled: %v", got.WeekStartDates)
	}
}

func TestListAssignments_ParentScoping(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{}, &domain.Hotel{}, &domain.GuideAssignment{})
	svc := NewRosterService(db)
	ctx := context.Background()

	g1 := domain.Guide{Name: "G1", Email: "g1@example.com", IsActive: true}
	g2 := domain.Guide{Name: "G2", Email: "g2@example.com", IsActive: true}
	h := domain.Hotel{Name: "Blue Bay", IsActive: true}
	for _, m := range []any{&g1, &g2, &h} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	for _, gid := range []int{g1.ID, g2.ID} {
		a := &domain.GuideAssignment{
			GuideID: gid, HotelID: h.ID,
			DaysOfWeek:     []int{0},
			CustomShifts:   []domain.ShiftWindow{{StartTime: "08:00", EndTime: "12:00"}},
			WeekStartDates: []string{"2026-03-02"},
			IsActive:       true,
		}
		if _, err := svc.CreateAssignment(ctx, a); err != nil {
			t.Fatalf("seed assignment: %v", err)
		}
	}

	byGuide, err := svc.ListAssignments(ctx, g1.ID, 0, nil)
	if err != nil || len(byGuide) != 1 {
		t.Fatalf("guide scope: %v %d", err, len(byGuide))
	}
	byHotel, err := svc.ListAssignments(ctx, 0, h.ID, nil)
	if err != nil || len(byHotel) != 2 {
		t.Fatalf("hotel scope: %v %d", err, len(byHotel))
	}
	all, err := svc.ListAssignments(ctx, 0, 0, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("unscoped: %v %d", err, len(all))
	}
}

func TestSetAssignmentActive_NotFound(t *testing.T) {
	db := newSvcDB(t, &domain.GuideAssignment{})
	svc := NewRosterService(db)

	if err := svc.SetAssignmentActive(context.Background(), 5, false); err != ErrAssignmentNotFound {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}
