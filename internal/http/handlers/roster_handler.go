// Roster HTTP handlers: guide-to-hotel shift assignments.
//
//   - POST /assignments            (create; guide and hotel must exist)
//   - GET  /assignments            (?guideId= ?hotelId= ?active= filters)
//   - GET  /assignments/:id
//   - PUT  /assignments/:id/active (retire or reinstate a rotation)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
	"github.com/aegeantours/go-guide-backend/internal/utils"
)

// CreateAssignment godoc
// @ID          createAssignment
// @Summary     Schedule a guide at a hotel
// @Description Creates a shift assignment. guideId/hotelId accept string or numeric JSON form; both normalize identically.
// @Tags        Assignments
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertGuideAssignment  true  "Assignment payload"
// @Success     201  {object}  domain.GuideAssignment
// @Failure     404  {object}  handlers.ErrorResponse  "Guide or hotel missing"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /assignments [post]
func (h *Handlers) CreateAssignment(c *gin.Context) {
	var in schema.InsertGuideAssignment
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	a, errs := schema.ValidateGuideAssignment(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	created, err := h.Roster.CreateAssignment(c.Request.Context(), &a)
	if err != nil {
		switch err {
		case services.ErrGuideNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
		case services.ErrHotelNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "hotel not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListAssignments godoc
// @ID          listAssignments
// @Summary     List shift assignments
// @Tags        Assignments
// @Produce     json
// @Param       guideId  query  int   false  "Scope to one guide"
// @Param       hotelId  query  int   false  "Scope to one hotel"
// @Param       active   query  bool  false  "Filter by active flag"
// @Success     200  {array}   domain.GuideAssignment
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /assignments [get]
func (h *Handlers) ListAssignments(c *gin.Context) {
	guideID := utils.AtoiDefault(c.Query("guideId"), 0)
	hotelID := utils.AtoiDefault(c.Query("hotelId"), 0)

	items, err := h.Roster.ListAssignments(c.Request.Context(), guideID, hotelID, boolQuery(c, "active"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetAssignment godoc
// @ID          getAssignment
// @Summary     Fetch one assignment
// @Tags        Assignments
// @Produce     json
// @Param       id  path  int  true  "Assignment ID"
// @Success     200  {object}  domain.GuideAssignment
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /assignments/{id} [get]
func (h *Handlers) GetAssignment(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "assignment id must be a positive integer")
		return
	}
	a, err := h.Roster.GetAssignment(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "assignment not found")
		return
	}
	ok(c, http.StatusOK, a)
}

// SetAssignmentActive godoc
// @ID          setAssignmentActive
// @Summary     Retire or reinstate an assignment
// @Tags        Assignments
// @Accept      json
// @Produce     json
// @Param       id    path  int                          true  "Assignment ID"
// @Param       body  body  handlers.SetActiveRequest  true  "Flag payload"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /assignments/{id}/active [put]
func (h *Handlers) SetAssignmentActive(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "assignment id must be a positive integer")
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isActive boolean required")
		return
	}
	if err := h.Roster.SetAssignmentActive(c.Request.Context(), id, *req.IsActive); err != nil {
		if err == services.ErrAssignmentNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "assignment not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
