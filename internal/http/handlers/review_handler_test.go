package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestLeaveReview_Lifecycle(t *testing.T) {
	r, db := newTestAPI(t, true)
	g := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	s := seedSession(t, db, "tourist-1", &g.ID)

	payload := map[string]any{
		"sessionId":      s.ID,
		"guideId":        g.ID,
		"touristId":      "tourist-1",
		"rating":         5,
		"comment":        "Sorted the hotel swap in an hour",
		"wouldRecommend": true,
	}

	// Session still open -> 409
	w := doJSON(t, r, http.MethodPost, "/reviews", payload, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("open session -> %d body=%s", w.Code, w.Body.String())
	}

	closeSeededSession(t, db, s.ID)

	// Now it lands -> 201
	w = doJSON(t, r, http.MethodPost, "/reviews", payload, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("review -> %d body=%s", w.Code, w.Body.String())
	}
	var rev domain.SessionReview
	decode(t, w, &rev)
	if rev.ID == 0 || rev.Rating != 5 || rev.GuideID != g.ID {
		t.Fatalf("review = %+v", rev)
	}

	// Second review by the same tourist -> 409
	w = doJSON(t, r, http.MethodPost, "/reviews", payload, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate -> %d body=%s", w.Code, w.Body.String())
	}
	if code := errCode(t, w); code != ErrCodeConflict {
		t.Fatalf("duplicate code = %q", code)
	}

	// The guide's aggregates picked up the rating
	var refreshed domain.Guide
	if err := db.First(&refreshed, g.ID).Error; err != nil {
		t.Fatalf("reload guide: %v", err)
	}
	if refreshed.Rating != 5 || refreshed.TotalHelped != 1 {
		t.Fatalf("aggregates = rating %d helped %d", refreshed.Rating, refreshed.TotalHelped)
	}
}

func TestLeaveReview_GuideMismatch_And_Validation(t *testing.T) {
	r, db := newTestAPI(t, false)
	g1 := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	g2 := seedGuide(t, db, "Eleni", "eleni@aegeantours.example")
	s := seedSession(t, db, "tourist-1", &g1.ID)

	// Reviewing a guide the session was never assigned to -> 409
	w := doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
		"sessionId": s.ID,
		"guideId":   g2.ID,
		"touristId": "tourist-1",
		"rating":    4,
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("mismatch -> %d body=%s", w.Code, w.Body.String())
	}

	// Unknown session -> 404
	w = doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
		"sessionId": 999,
		"guideId":   g1.ID,
		"touristId": "tourist-1",
		"rating":    4,
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown session -> %d", w.Code)
	}

	// Out-of-range rating -> 422
	w = doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
		"sessionId": s.ID,
		"guideId":   g1.ID,
		"touristId": "tourist-1",
		"rating":    9,
	}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad rating -> %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetSessionReview(t *testing.T) {
	r, db := newTestAPI(t, false)
	g := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	s := seedSession(t, db, "tourist-1", &g.ID)

	// touristId is mandatory
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/review", s.ID), nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no tourist -> %d", w.Code)
	}

	// Nothing yet -> 404
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/review?touristId=tourist-1", s.ID), nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing review -> %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
		"sessionId": s.ID,
		"guideId":   g.ID,
		"touristId": "tourist-1",
		"rating":    3,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("review -> %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/review?touristId=tourist-1", s.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d body=%s", w.Code, w.Body.String())
	}
	var rev domain.SessionReview
	decode(t, w, &rev)
	if rev.Rating != 3 || rev.TouristID != "tourist-1" {
		t.Fatalf("review = %+v", rev)
	}

	// /guides/:id/reviews sees it too
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/guides/%d/reviews", g.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("guide reviews -> %d", w.Code)
	}
	var list []domain.SessionReview
	decode(t, w, &list)
	if len(list) != 1 {
		t.Fatalf("guide reviews = %d", len(list))
	}

	if w := doJSON(t, r, http.MethodGet, "/guides/999/reviews", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown guide -> %d", w.Code)
	}
}
