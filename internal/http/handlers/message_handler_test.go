package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

func TestPostMessage_Lifecycle(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	// Append -> 201
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
		"senderId":   "tourist-1",
		"content":    "I need to change hotels",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("post -> %d body=%s", w.Code, w.Body.String())
	}
	var m domain.ChatMessage
	decode(t, w, &m)
	if m.ID == 0 || m.SessionID != s.ID || m.IsRead {
		t.Fatalf("message = %+v", m)
	}

	// Body sessionId loses to the path
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"sessionId":  999,
		"senderType": "guide",
		"senderId":   "guide-1",
		"content":    "On it",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("post -> %d body=%s", w.Code, w.Body.String())
	}
	decode(t, w, &m)
	if m.SessionID != s.ID {
		t.Fatalf("path did not win: %+v", m)
	}

	// Missing content -> 422
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
	}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("validation -> %d", w.Code)
	}

	// Unknown session -> 404
	w = doJSON(t, r, http.MethodPost, "/sessions/999/messages", map[string]any{
		"senderType": "user",
		"content":    "hello?",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown session -> %d", w.Code)
	}
}

func TestPostMessage_ClosedSession(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)
	closeSeededSession(t, db, s.ID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
		"senderId":   "tourist-1",
		"content":    "anyone there?",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("closed -> %d body=%s", w.Code, w.Body.String())
	}
	if code := errCode(t, w); code != ErrCodeSessionClosed {
		t.Fatalf("code = %q", code)
	}
}

func TestPostMessage_IdempotentReplay(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	body := map[string]any{
		"senderType": "user",
		"senderId":   "tourist-1",
		"content":    "please book the morning tour",
	}
	hdr := map[string]string{"Idempotency-Key": "book-tour-001"}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), body, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("first post -> %d body=%s", w.Code, w.Body.String())
	}
	var first domain.ChatMessage
	decode(t, w, &first)

	// Retrying the same key replays the stored row instead of appending
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), body, hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("replay -> %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatal("replay header missing")
	}
	var replayed domain.ChatMessage
	decode(t, w, &replayed)
	if replayed.ID != first.ID {
		t.Fatalf("replay returned a different message: %d vs %d", replayed.ID, first.ID)
	}

	var count int64
	db.Model(&domain.ChatMessage{}).Where("session_id = ?", s.ID).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate append, count = %d", count)
	}

	// A different key appends normally
	hdr["Idempotency-Key"] = "book-tour-002"
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), body, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("new key -> %d", w.Code)
	}

	// Malformed keys are rejected before the handler runs
	hdr["Idempotency-Key"] = "spaces are invalid"
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), body, hdr)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad key -> %d", w.Code)
	}
}

func TestListMessages_ActorFilter_And_ETag(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
			"senderType": "user",
			"senderId":   "tourist-1",
			"content":    fmt.Sprintf("message %d", i),
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed post -> %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages", s.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on message listing")
	}
	var resp ListMessagesResponse
	decode(t, w, &resp)
	if len(resp.Messages) != 3 || resp.Pagination.Total != 3 {
		t.Fatalf("listing = %+v", resp)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages", s.ID), nil,
		map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("revalidation -> %d", w.Code)
	}

	// tourist-1 deletes the first message; only their view shrinks
	first := resp.Messages[0]
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/messages/%d?actor=tourist-1", first.ID), nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages?actor=tourist-1", s.ID), nil, nil)
	decode(t, w, &resp)
	if len(resp.Messages) != 2 {
		t.Fatalf("actor view = %d messages", len(resp.Messages))
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages?actor=guide-1", s.ID), nil, nil)
	decode(t, w, &resp)
	if len(resp.Messages) != 3 {
		t.Fatalf("other view = %d messages", len(resp.Messages))
	}
}

// A read mark mutates an existing row; the listing tag must move even
// though the message count is unchanged.
func TestListMessages_ETag_InvalidatedByReadMark(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-2", nil)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
		"senderId":   "tourist-2",
		"content":    "anyone there?",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("post -> %d body=%s", w.Code, w.Body.String())
	}
	var m domain.ChatMessage
	decode(t, w, &m)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages", s.ID), nil, nil)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on message listing")
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/messages/%d/read?actor=guide-3", m.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("read -> %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sessions/%d/messages", s.ID), nil,
		map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("tag must go stale after read mark, got %d", w.Code)
	}
	if got := w.Header().Get("ETag"); got == "" || got == etag {
		t.Fatalf("ETag after read mark = %q (was %q)", got, etag)
	}
}

// Read and delete state is server-owned: payload fields claiming the message
// was already read or deleted are dropped on insert.
func TestPostMessage_IgnoresClientReadState(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
		"senderId":   "tourist-1",
		"content":    "hello",
		"isRead":     true,
		"readBy":     []string{"guide-1"},
		"deletedBy":  []string{"guide-2"},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("post -> %d body=%s", w.Code, w.Body.String())
	}
	var m domain.ChatMessage
	decode(t, w, &m)
	if m.IsRead || len(m.ReadBy) != 0 || len(m.DeletedBy) != 0 {
		t.Fatalf("message must start unread with empty actor sets, got %+v", m)
	}
}

func TestMarkMessageRead(t *testing.T) {
	r, db := newTestAPI(t, false)
	s := seedSession(t, db, "tourist-1", nil)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/sessions/%d/messages", s.ID), map[string]any{
		"senderType": "user",
		"senderId":   "tourist-1",
		"content":    "read me",
	}, nil)
	var m domain.ChatMessage
	decode(t, w, &m)

	// Actor required
	if w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/messages/%d/read", m.ID), nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("no actor -> %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/messages/%d/read?actor=guide-1", m.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("read -> %d body=%s", w.Code, w.Body.String())
	}
	var read domain.ChatMessage
	decode(t, w, &read)
	if !read.IsRead || len(read.ReadBy) != 1 || read.ReadBy[0] != "guide-1" {
		t.Fatalf("receipt = %+v", read)
	}

	// Repeating is a no-op on readBy
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/messages/%d/read?actor=guide-1", m.ID), nil, nil)
	decode(t, w, &read)
	if len(read.ReadBy) != 1 {
		t.Fatalf("readBy grew: %+v", read.ReadBy)
	}

	if w := doJSON(t, r, http.MethodPut, "/messages/999/read?actor=x", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown -> %d", w.Code)
	}
}
