package services

import (
	"context"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestGuideCreate_NormalizesName(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{})
	svc := NewGuideService(db)

	g, err := svc.Create(context.Background(), &domain.Guide{
		Name: "  ayşe   demir ", Email: "ayse@example.com", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.Name != "Ayşe Demir" {
		t.Fatalf("name not normalized: %q", g.Name)
	}
}

func TestGuideCreate_DanglingUserLink(t *testing.T) {
	db := newSvcDB(t, &domain.User{}, &domain.Guide{})
	svc := NewGuideService(db)
	ctx := context.Background()

	missing := 424242
	_, err := svc.Create(ctx, &domain.Guide{
		Name: "Linked", Email: "linked@example.com", UserID: &missing, IsActive: true,
	})
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	u, err := NewUserService(db).Create(ctx, &domain.User{Username: "linked", Password: "s3cret", Role: domain.RoleGuide})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	g, err := svc.Create(ctx, &domain.Guide{
		Name: "Linked", Email: "linked@example.com", UserID: &u.ID, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create with valid link: %v", err)
	}
	if g.UserID == nil || *g.UserID != u.ID {
		t.Fatalf("userId = %v", g.UserID)
	}
}

func TestGuideCreate_DuplicateEmail(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{})
	svc := NewGuideService(db)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &domain.Guide{Name: "A", Email: "dup@example.com", IsActive: true}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, &domain.Guide{Name: "B", Email: "dup@example.com", IsActive: true})
	if err != ErrDuplicateGuideEmail {
		t.Fatalf("expected ErrDuplicateGuideEmail, got %v", err)
	}
}

func TestGuideListPage_Defaults(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{})
	svc := NewGuideService(db)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.Create(ctx, &domain.Guide{Name: "G", Email: email, IsActive: true}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := svc.ListPage(ctx, nil, 0, 0)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("defaults should list all: total=%d items=%d", total, len(items))
	}

	items, total, err = svc.ListPage(ctx, nil, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if total != 3 || len(items) != 1 {
		t.Fatalf("page 2 of size 2: total=%d items=%d", total, len(items))
	}
}

func TestGuideSetActive_NotFound(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{})
	svc := NewGuideService(db)

	if err := svc.SetActive(context.Background(), 404, false); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}
}

func TestRefreshAggregates_UnknownGuide(t *testing.T) {
	db := newSvcDB(t, &domain.Guide{}, &domain.ChatSession{}, &domain.SessionReview{})
	svc := NewGuideService(db)

	if err := svc.RefreshAggregates(context.Background(), 404); err != ErrGuideNotFound {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}
}
