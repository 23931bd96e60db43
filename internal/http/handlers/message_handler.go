// Chat message HTTP handlers.
//
//   - GET    /sessions/:id/messages       (list, paginated, ETag support)
//   - POST   /sessions/:id/messages       (append; Idempotency-Key replay)
//   - PUT    /messages/:id/read           (per-actor read receipt)
//   - DELETE /messages/:id                (per-actor soft delete)
//
// Posting is idempotent when the client sends an Idempotency-Key header: a
// retry within the TTL returns the originally stored message instead of
// appending a duplicate.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/http/middleware"
	"github.com/aegeantours/go-guide-backend/internal/repo"
	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
)

// ListMessagesResponse wraps a page of messages and pagination information.
type ListMessagesResponse struct {
	Messages   []domain.ChatMessage `json:"messages"`
	Pagination Pagination           `json:"pagination"`
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List a session's messages (paginated)
// @Description Returns messages in chronological order. Soft-deleted messages are included unless ?actor= is given, in which case rows that actor deleted are filtered out. Supports weak ETag via If-None-Match.
// @Tags        Messages
// @Produce     json
// @Param       id         path   int     true   "Session ID"
// @Param       actor      query  string  false  "Hide messages this actor deleted"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(50)
// @Success     200  {object}  handlers.ListMessagesResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /sessions/{id}/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if h.DB != nil {
		count, maxTS, err := repo.MessagesStats(ctx, h.DB, sessionID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"messages:%d:%d:%d"`, sessionID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.Chat.ListMessagesPage(ctx, sessionID, page, pageSize)
	if err != nil {
		if err == services.ErrSessionNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	if actor := actorID(c); actor != "" {
		visible := items[:0]
		for _, m := range items {
			if m.VisibleTo(actor) {
				visible = append(visible, m)
			}
		}
		items = visible
	}

	ok(c, http.StatusOK, ListMessagesResponse{
		Messages:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// PostMessage godoc
// @ID          postMessage
// @Summary     Append a message to a session
// @Description Posts a message. A closed session rejects the write with 409/session_closed. With an Idempotency-Key header, retries within the TTL replay the stored message instead of appending again.
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string                    false  "Safe-retry key"
// @Param       id               path    int                       true   "Session ID"
// @Param       body             body    schema.InsertChatMessage  true   "Message payload"
// @Success     200  {object}  domain.ChatMessage  "Replayed from a previous request"
// @Success     201  {object}  domain.ChatMessage
// @Failure     404  {object}  handlers.ErrorResponse  "Session missing"
// @Failure     409  {object}  handlers.ErrorResponse  "Session closed"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /sessions/{id}/messages [post]
func (h *Handlers) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}

	var in schema.InsertChatMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	// The path wins over whatever sessionId the body carries.
	in.SessionID = sessionID
	m, errs := schema.ValidateChatMessage(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	key, hasKey := middleware.GetIdempotencyKey(c)

	// Replay path: a stored record within its TTL short-circuits the write.
	if hasKey && h.DB != nil {
		rec, err := repo.GetIdempotency(ctx, h.DB, m.SenderID, sessionID, key, time.Now().UTC())
		if err == nil && rec != nil {
			if stored, gerr := repo.GetMessage(ctx, h.DB, rec.MessageID); gerr == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, stored)
				return
			}
		}
	}

	created, err := h.Chat.PostMessage(ctx, &m)
	if err != nil {
		switch err {
		case services.ErrSessionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case services.ErrSessionClosed:
			fail(c, http.StatusConflict, ErrCodeSessionClosed, "session is closed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	if hasKey && h.DB != nil {
		ttl := h.IdemTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		// Losing the race to a concurrent retry is fine; that retry already
		// recorded the same key.
		_, _ = repo.CreateIdempotency(ctx, h.DB, created.SenderID, sessionID, key, created.ID, http.StatusCreated, ttl)
	}

	ok(c, http.StatusCreated, created)
}

// MarkMessageRead godoc
// @ID          markMessageRead
// @Summary     Record a read receipt
// @Description Adds the actor to the message's readBy set (repeating is a no-op) and flips isRead.
// @Tags        Messages
// @Produce     json
// @Param       id     path   int     true  "Message ID"
// @Param       actor  query  string  true  "Acting identity"
// @Success     200  {object}  domain.ChatMessage
// @Failure     400  {object}  handlers.ErrorResponse  "Actor missing"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /messages/{id}/read [put]
func (h *Handlers) MarkMessageRead(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be a positive integer")
		return
	}
	actor := actorID(c)
	if actor == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "actor required")
		return
	}

	m, err := h.Chat.MarkRead(c.Request.Context(), id, actor)
	if err != nil {
		if err == services.ErrMessageNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Soft-delete a message for one actor
// @Description Adds the actor to the message's deletedBy set. The row survives and stays visible to everyone else.
// @Tags        Messages
// @Produce     json
// @Param       id     path   int     true  "Message ID"
// @Param       actor  query  string  true  "Acting identity"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Actor missing"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be a positive integer")
		return
	}
	actor := actorID(c)
	if actor == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "actor required")
		return
	}
	if err := h.Chat.DeleteMessageFor(c.Request.Context(), id, actor); err != nil {
		if err == services.ErrMessageNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
