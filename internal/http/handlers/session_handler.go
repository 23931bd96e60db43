// Chat session HTTP handlers.
//
//   - POST   /sessions            (open; first write creates the session)
//   - GET    /sessions            (filters + weak ETag support)
//   - GET    /sessions/:id
//   - PUT    /sessions/:id/close  (terminal, idempotent)
//   - PUT    /sessions/:id/guide  (attach a guide)
//   - DELETE /sessions/:id        (per-actor soft delete; row survives)
//
// Visibility: a session "deleted" by one actor stays in storage and remains
// visible to every other actor; the hiding happens here, per request.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
	"github.com/aegeantours/go-guide-backend/internal/utils"
)

// AssignGuideRequest is the JSON payload for attaching a guide to a session.
// The id accepts string or numeric JSON form.
type AssignGuideRequest struct {
	GuideID schema.FlexID `json:"guideId" binding:"required"`
}

// ListSessionsResponse wraps a page of sessions and pagination information.
type ListSessionsResponse struct {
	Sessions   []domain.ChatSession `json:"sessions"`
	Pagination Pagination           `json:"pagination"`
}

// OpenSession godoc
// @ID          openSession
// @Summary     Open a chat session
// @Description Creates a new open session in one of the five support categories. closedAt starts unset regardless of input.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertChatSession  true  "Session payload"
// @Success     201  {object}  domain.ChatSession
// @Failure     404  {object}  handlers.ErrorResponse  "Guide not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /sessions [post]
func (h *Handlers) OpenSession(c *gin.Context) {
	var in schema.InsertChatSession
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	sess, errs := schema.ValidateChatSession(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	created, err := h.Chat.OpenSession(c.Request.Context(), &sess)
	if err != nil {
		if err == services.ErrGuideNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListSessions godoc
// @ID          listSessions
// @Summary     List chat sessions (paginated)
// @Description Returns a page of sessions. When ?actor= is given, sessions that actor soft-deleted are filtered out. Supports weak ETag via If-None-Match when scoped to one tourist.
// @Tags        Sessions
// @Produce     json
// @Param       touristId  query  string  false  "Scope to one tourist"
// @Param       guideId    query  int     false  "Scope to one guide"
// @Param       category   query  string  false  "Filter by category"
// @Param       active     query  bool    false  "Filter by active flag"
// @Param       actor      query  string  false  "Hide sessions this actor deleted"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListSessionsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /sessions [get]
func (h *Handlers) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	filter := repo.SessionFilter{
		TouristID: c.Query("touristId"),
		Category:  c.Query("category"),
		Active:    boolQuery(c, "active"),
	}
	if gid := utils.AtoiDefault(c.Query("guideId"), 0); gid > 0 {
		filter.GuideID = &gid
	}

	// ETag pre-check (best effort), only for tourist-scoped listings where
	// the stats stay cheap.
	if filter.TouristID != "" && h.DB != nil {
		count, maxTS, err := repo.SessionsStats(ctx, h.DB, filter.TouristID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				// Nanoseconds: close/assign/delete can land within the
				// same second as the insert.
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"sessions:%s:%d:%d"`, filter.TouristID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.Chat.ListSessionsPage(ctx, filter, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	if actor := actorID(c); actor != "" {
		visible := items[:0]
		for _, s := range items {
			if !contains(s.DeletedBy, actor) {
				visible = append(visible, s)
			}
		}
		items = visible
	}

	ok(c, http.StatusOK, ListSessionsResponse{
		Sessions:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// GetSession godoc
// @ID          getSession
// @Summary     Fetch one session
// @Tags        Sessions
// @Produce     json
// @Param       id  path  int  true  "Session ID"
// @Success     200  {object}  domain.ChatSession
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /sessions/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	sess, err := h.Chat.GetSession(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}
	ok(c, http.StatusOK, sess)
}

// CloseSession godoc
// @ID          closeSession
// @Summary     Close a session
// @Description Stamps closedAt and clears isActive. Closing twice keeps the original timestamp.
// @Tags        Sessions
// @Produce     json
// @Param       id  path  int  true  "Session ID"
// @Success     200  {object}  domain.ChatSession
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /sessions/{id}/close [put]
func (h *Handlers) CloseSession(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	sess, err := h.Chat.Close(c.Request.Context(), id)
	if err != nil {
		if err == services.ErrSessionNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sess)
}

// AssignSessionGuide godoc
// @ID          assignSessionGuide
// @Summary     Attach a guide to a session
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id    path  int                           true  "Session ID"
// @Param       body  body  handlers.AssignGuideRequest  true  "Guide payload"
// @Success     200  {object}  domain.ChatSession
// @Failure     404  {object}  handlers.ErrorResponse  "Session or guide missing"
// @Router      /sessions/{id}/guide [put]
func (h *Handlers) AssignSessionGuide(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	var req AssignGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GuideID.Int() <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guideId required")
		return
	}

	sess, err := h.Chat.AssignGuide(c.Request.Context(), id, req.GuideID.Int())
	if err != nil {
		switch err {
		case services.ErrSessionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case services.ErrGuideNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, sess)
}

// DeleteSession godoc
// @ID          deleteSession
// @Summary     Soft-delete a session for one actor
// @Description Adds the actor to the session's deletedBy set. The row survives and stays visible to everyone else.
// @Tags        Sessions
// @Produce     json
// @Param       id     path   int     true  "Session ID"
// @Param       actor  query  string  true  "Acting identity"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Actor missing"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /sessions/{id} [delete]
func (h *Handlers) DeleteSession(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	actor := actorID(c)
	if actor == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "actor required")
		return
	}
	if err := h.Chat.DeleteSessionFor(c.Request.Context(), id, actor); err != nil {
		if err == services.ErrSessionNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// contains reports whether the set holds the given actor.
func contains(set domain.StringSet, actor string) bool {
	for _, id := range set {
		if id == actor {
			return true
		}
	}
	return false
}
