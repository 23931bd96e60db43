// Review HTTP handlers.
//
//   - POST /reviews                    (one per session and tourist)
//   - GET  /sessions/:id/review        (?touristId= scopes to the tourist)
//
// Per-guide review listings live under /guides/:id/reviews (see
// directory_handler.go).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
)

// LeaveReview godoc
// @ID          leaveReview
// @Summary     Review a guide after a session
// @Description Records a 1–5 rating with optional axis scores. One review per (session, tourist); by default the session must already be closed.
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertSessionReview  true  "Review payload"
// @Success     201  {object}  domain.SessionReview
// @Failure     404  {object}  handlers.ErrorResponse  "Session or guide missing"
// @Failure     409  {object}  handlers.ErrorResponse  "Duplicate, open session, or wrong guide"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /reviews [post]
func (h *Handlers) LeaveReview(c *gin.Context) {
	var in schema.InsertSessionReview
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, errs := schema.ValidateSessionReview(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	created, err := h.Reviews.Leave(c.Request.Context(), &r)
	if err != nil {
		switch err {
		case services.ErrSessionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case services.ErrGuideNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
		case services.ErrDuplicateReview:
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		case services.ErrReviewRequiresClosed:
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		case services.ErrReviewGuideMismatch:
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// GetSessionReview godoc
// @ID          getSessionReview
// @Summary     Fetch a tourist's review of a session
// @Tags        Reviews
// @Produce     json
// @Param       id         path   int     true  "Session ID"
// @Param       touristId  query  string  true  "Reviewing tourist"
// @Success     200  {object}  domain.SessionReview
// @Failure     404  {object}  handlers.ErrorResponse  "No review yet"
// @Router      /sessions/{id}/review [get]
func (h *Handlers) GetSessionReview(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return
	}
	touristID := c.Query("touristId")
	if touristID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "touristId required")
		return
	}

	r, err := h.Reviews.ForSession(c.Request.Context(), id, touristID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if r == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "review not found")
		return
	}
	ok(c, http.StatusOK, r)
}
