package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestOpenSession_Success_And_Validation(t *testing.T) {
	r, _ := newTestAPI(t, false)

	w := doJSON(t, r, http.MethodPost, "/sessions", map[string]any{
		"category":  "hotel-change",
		"touristId": "tourist-1",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open -> %d body=%s", w.Code, w.Body.String())
	}
	var s domain.ChatSession
	decode(t, w, &s)
	if s.ID == 0 || !s.IsActive || s.ClosedAt != nil {
		t.Fatalf("session = %+v", s)
	}

	// Unknown category -> 422
	w = doJSON(t, r, http.MethodPost, "/sessions", map[string]any{
		"category":  "time-travel",
		"touristId": "tourist-1",
	}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad category -> %d body=%s", w.Code, w.Body.String())
	}

	// Pre-assigned guide must exist; 404, not a driver-level FK failure
	w = doJSON(t, r, http.MethodPost, "/sessions", map[string]any{
		"category":  "guide-assistance",
		"touristId": "tourist-1",
		"guideId":   999,
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("dangling guideId -> %d body=%s", w.Code, w.Body.String())
	}
	if code := errCode(t, w); code != ErrCodeNotFound {
		t.Fatalf("dangling guideId code = %q", code)
	}
}

func TestListSessions_ActorFilter(t *testing.T) {
	r, db := newTestAPI(t, false)
	s1 := seedSession(t, db, "tourist-1", nil)
	seedSession(t, db, "tourist-1", nil)

	// tourist-1 soft-deletes the first session
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/sessions/%d?actor=tourist-1", s1.ID), nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d body=%s", w.Code, w.Body.String())
	}

	// Without an actor both rows show
	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	var resp ListSessionsResponse
	decode(t, w, &resp)
	if len(resp.Sessions) != 2 {
		t.Fatalf("unscoped sessions = %d", len(resp.Sessions))
	}

	// The deleting actor no longer sees it
	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-1&actor=tourist-1", nil, nil)
	decode(t, w, &resp)
	if len(resp.Sessions) != 1 || resp.Sessions[0].ID == s1.ID {
		t.Fatalf("actor-scoped sessions = %+v", resp.Sessions)
	}

	// Any other actor still does
	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-1&actor=guide-7", nil, nil)
	decode(t, w, &resp)
	if len(resp.Sessions) != 2 {
		t.Fatalf("other-actor sessions = %d", len(resp.Sessions))
	}
}

func TestListSessions_ETag(t *testing.T) {
	r, db := newTestAPI(t, false)
	seedSession(t, db, "tourist-9", nil)

	w := doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-9", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on tourist-scoped listing")
	}

	// Replaying the tag gets 304
	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-9", nil, map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("revalidation -> %d", w.Code)
	}

	// New data invalidates it
	seedSession(t, db, "tourist-9", nil)
	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-9", nil, map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("stale tag -> %d", w.Code)
	}
	if w.Header().Get("ETag") == etag {
		t.Fatal("ETag did not change with new data")
	}

	// Unscoped listings carry no ETag
	w = doJSON(t, r, http.MethodGet, "/sessions", nil, nil)
	if w.Header().Get("ETag") != "" {
		t.Fatal("unexpected ETag on unscoped listing")
	}
}

// Closing a session mutates a row in place without changing the row count;
// the tag must still move so clients do not cache the open state forever.
func TestListSessions_ETag_InvalidatedByClose(t *testing.T) {
	r, _ := newTestAPI(t, false)

	w := doJSON(t, r, http.MethodPost, "/sessions", map[string]any{
		"category":  "medical-assistance",
		"touristId": "tourist-11",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open -> %d body=%s", w.Code, w.Body.String())
	}
	var s domain.ChatSession
	decode(t, w, &s)

	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-11", nil, nil)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on tourist-scoped listing")
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/close", s.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close -> %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/sessions?touristId=tourist-11", nil,
		map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("tag must go stale after close, got %d", w.Code)
	}
	if got := w.Header().Get("ETag"); got == "" || got == etag {
		t.Fatalf("ETag after close = %q (was %q)", got, etag)
	}
}

func TestCloseSession_Idempotent(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/close", s.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close -> %d body=%s", w.Code, w.Body.String())
	}
	var first domain.ChatSession
	decode(t, w, &first)
	if first.ClosedAt == nil || first.IsActive {
		t.Fatalf("not closed: %+v", first)
	}

	// Closing again keeps the original stamp
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/close", s.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("re-close -> %d", w.Code)
	}
	var second domain.ChatSession
	decode(t, w, &second)
	if second.ClosedAt == nil || !second.ClosedAt.Equal(*first.ClosedAt) {
		t.Fatalf("closedAt moved: %v vs %v", second.ClosedAt, first.ClosedAt)
	}

	if w := doJSON(t, r, http.MethodPut, "/sessions/999/close", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown -> %d", w.Code)
	}
}

func TestAssignSessionGuide(t *testing.T) {
	r, db := newTestAPI(t, false)
	g := seedGuide(t, db, "Nikos", "nikos@aegeantours.example")
	s := seedSession(t, db, "tourist-1", nil)

	// guideId accepts the string JSON form too
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/guide", s.ID),
		map[string]any{"guideId": fmt.Sprint(g.ID)}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("assign -> %d body=%s", w.Code, w.Body.String())
	}
	var out domain.ChatSession
	decode(t, w, &out)
	if out.GuideID == nil || *out.GuideID != g.ID {
		t.Fatalf("guide not attached: %+v", out)
	}

	// Unknown guide -> 404
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/guide", s.ID),
		map[string]any{"guideId": 999}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown guide -> %d", w.Code)
	}

	// Missing guideId -> 400
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/sessions/%d/guide", s.ID),
		map[string]any{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing guideId -> %d", w.Code)
	}
}

func TestDeleteSession_RequiresActor(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/sessions/%d", s.ID), nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no actor -> %d", w.Code)
	}

	// X-Actor-ID header works as well as ?actor=
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/sessions/%d", s.ID), nil,
		map[string]string{"X-Actor-ID": "tourist-1"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d body=%s", w.Code, w.Body.String())
	}

	// The row itself survives
	if w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d", s.ID), nil, nil); w.Code != http.StatusOK {
		t.Fatalf("row gone -> %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, "/sessions/999?actor=x", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown -> %d", w.Code)
	}
}
