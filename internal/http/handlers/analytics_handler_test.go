package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/repo"
	"github.com/aegeantours/go-guide-backend/internal/services"
)

func TestAnalyticsOverview(t *testing.T) {
	r, db := newTestAPI(t, false)
	g := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	s1 := seedSession(t, db, "tourist-1", &g.ID)
	seedSession(t, db, "tourist-2", nil)
	closeSeededSession(t, db, s1.ID)

	w := doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
		"sessionId": s1.ID,
		"guideId":   g.ID,
		"touristId": "tourist-1",
		"rating":    4,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed review -> %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/analytics/overview", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("overview -> %d body=%s", w.Code, w.Body.String())
	}
	var rep services.OverviewReport
	decode(t, w, &rep)
	if rep.Totals.Guides != 1 || rep.Totals.Sessions != 2 || rep.Totals.OpenSessions != 1 || rep.Totals.Reviews != 1 {
		t.Fatalf("totals = %+v", rep.Totals)
	}
	found := false
	for _, cc := range rep.ByCategory {
		if cc.Category != "" && cc.Count > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("byCategory = %+v", rep.ByCategory)
	}
}

func TestAnalyticsGuideSummaries(t *testing.T) {
	r, db := newTestAPI(t, false)
	g1 := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	seedGuide(t, db, "Eleni", "eleni@aegeantours.example")

	for i, rating := range []int{5, 3} {
		s := seedSession(t, db, fmt.Sprintf("tourist-%d", i), &g1.ID)
		closeSeededSession(t, db, s.ID)
		w := doJSON(t, r, http.MethodPost, "/reviews", map[string]any{
			"sessionId": s.ID,
			"guideId":   g1.ID,
			"touristId": fmt.Sprintf("tourist-%d", i),
			"rating":    rating,
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed review -> %d body=%s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/analytics/guides", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summaries -> %d body=%s", w.Code, w.Body.String())
	}
	var sums []repo.GuideReviewSummary
	decode(t, w, &sums)
	if len(sums) != 1 {
		t.Fatalf("summaries = %+v", sums)
	}
	if sums[0].GuideID != g1.ID || sums[0].ReviewCount != 2 || sums[0].AvgRating != 4 {
		t.Fatalf("summary = %+v", sums[0])
	}
}
