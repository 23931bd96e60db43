// Directory HTTP handlers: users, guides, and hotels.
//
//   - POST /users                  (create account, password hashed)
//   - GET  /users                  (list; hashes never serialize)
//   - GET  /users/:id
//   - POST /guides
//   - GET  /guides                 (paginated, ?active= filter)
//   - GET  /guides/:id             (includes roster assignments)
//   - PUT  /guides/:id/active
//   - GET  /guides/:id/reviews
//   - POST /hotels
//   - GET  /hotels
//   - GET  /hotels/:id
//   - PUT  /hotels/:id/active
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
)

// SetActiveRequest is the JSON payload for activation toggles.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// GuideDetailResponse wraps a guide together with its roster assignments.
type GuideDetailResponse struct {
	Guide       domain.Guide             `json:"guide"`
	Assignments []domain.GuideAssignment `json:"assignments"`
}

// ListGuidesResponse wraps a page of guides and pagination information.
type ListGuidesResponse struct {
	Guides     []domain.Guide `json:"guides"`
	Pagination Pagination     `json:"pagination"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user account
// @Description Creates an admin or guide dashboard account. The password is hashed before storage and never serialized back.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertUser  true  "Account payload"
// @Success     201  {object}  domain.User
// @Failure     409  {object}  handlers.ErrorResponse  "Username taken"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var in schema.InsertUser
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, errs := schema.ValidateUser(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	created, err := h.Users.Create(c.Request.Context(), &u)
	if err != nil {
		if err == services.ErrDuplicateUsername {
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List user accounts
// @Tags        Users
// @Produce     json
// @Success     200  {array}   domain.User
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, users)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch one user account
// @Tags        Users
// @Produce     json
// @Param       id  path  int  true  "User ID"
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a positive integer")
		return
	}
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	ok(c, http.StatusOK, u)
}

// CreateGuide godoc
// @ID          createGuide
// @Summary     Create a guide profile
// @Tags        Guides
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertGuide  true  "Guide payload"
// @Success     201  {object}  domain.Guide
// @Failure     404  {object}  handlers.ErrorResponse  "Linked user not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Email taken"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /guides [post]
func (h *Handlers) CreateGuide(c *gin.Context) {
	var in schema.InsertGuide
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	g, errs := schema.ValidateGuide(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}

	created, err := h.Guides.Create(c.Request.Context(), &g)
	if err != nil {
		if err == services.ErrDuplicateGuideEmail {
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		if err == services.ErrUserNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListGuides godoc
// @ID          listGuides
// @Summary     List guides (paginated)
// @Tags        Guides
// @Produce     json
// @Param       active     query  bool  false  "Filter by active flag"
// @Param       page       query  int   false  "Page number"      minimum(1) default(1)
// @Param       page_size  query  int   false  "Items per page"   minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListGuidesResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /guides [get]
func (h *Handlers) ListGuides(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.Guides.ListPage(c.Request.Context(), boolQuery(c, "active"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListGuidesResponse{
		Guides:     items,
		Pagination: paginate(page, pageSize, total),
	})
}

// GetGuide godoc
// @ID          getGuide
// @Summary     Fetch one guide with roster assignments
// @Tags        Guides
// @Produce     json
// @Param       id  path  int  true  "Guide ID"
// @Success     200  {object}  handlers.GuideDetailResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /guides/{id} [get]
func (h *Handlers) GetGuide(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guide id must be a positive integer")
		return
	}
	g, assignments, err := h.Guides.GetWithAssignments(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
		return
	}
	ok(c, http.StatusOK, GuideDetailResponse{Guide: *g, Assignments: assignments})
}

// SetGuideActive godoc
// @ID          setGuideActive
// @Summary     Activate or deactivate a guide
// @Description Deactivation hides the guide from active-only listings; the row survives.
// @Tags        Guides
// @Accept      json
// @Produce     json
// @Param       id    path  int                          true  "Guide ID"
// @Param       body  body  handlers.SetActiveRequest  true  "Flag payload"
// @Success     200  {object}  domain.Guide
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /guides/{id}/active [put]
func (h *Handlers) SetGuideActive(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guide id must be a positive integer")
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isActive boolean required")
		return
	}
	if err := h.Guides.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		if err == services.ErrGuideNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	g, err := h.Guides.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, g)
}

// ListGuideReviews godoc
// @ID          listGuideReviews
// @Summary     List reviews left for a guide
// @Tags        Guides
// @Produce     json
// @Param       id  path  int  true  "Guide ID"
// @Success     200  {array}   domain.SessionReview
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /guides/{id}/reviews [get]
func (h *Handlers) ListGuideReviews(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guide id must be a positive integer")
		return
	}
	reviews, err := h.Reviews.ForGuide(c.Request.Context(), id)
	if err != nil {
		if err == services.ErrGuideNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "guide not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, reviews)
}

// CreateHotel godoc
// @ID          createHotel
// @Summary     Create a partner hotel
// @Tags        Hotels
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertHotel  true  "Hotel payload"
// @Success     201  {object}  domain.Hotel
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /hotels [post]
func (h *Handlers) CreateHotel(c *gin.Context) {
	var in schema.InsertHotel
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	hotel, errs := schema.ValidateHotel(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	created, err := h.Roster.CreateHotel(c.Request.Context(), &hotel)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListHotels godoc
// @ID          listHotels
// @Summary     List hotels
// @Tags        Hotels
// @Produce     json
// @Param       active  query  bool  false  "Filter by active flag"
// @Success     200  {array}   domain.Hotel
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /hotels [get]
func (h *Handlers) ListHotels(c *gin.Context) {
	hotels, err := h.Roster.ListHotels(c.Request.Context(), boolQuery(c, "active"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, hotels)
}

// GetHotel godoc
// @ID          getHotel
// @Summary     Fetch one hotel
// @Tags        Hotels
// @Produce     json
// @Param       id  path  int  true  "Hotel ID"
// @Success     200  {object}  domain.Hotel
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /hotels/{id} [get]
func (h *Handlers) GetHotel(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "hotel id must be a positive integer")
		return
	}
	hotel, err := h.Roster.GetHotel(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "hotel not found")
		return
	}
	ok(c, http.StatusOK, hotel)
}

// SetHotelActive godoc
// @ID          setHotelActive
// @Summary     Activate or deactivate a hotel
// @Tags        Hotels
// @Accept      json
// @Produce     json
// @Param       id    path  int                          true  "Hotel ID"
// @Param       body  body  handlers.SetActiveRequest  true  "Flag payload"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /hotels/{id}/active [put]
func (h *Handlers) SetHotelActive(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "hotel id must be a positive integer")
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isActive boolean required")
		return
	}
	if err := h.Roster.SetHotelActive(c.Request.Context(), id, *req.IsActive); err != nil {
		if err == services.ErrHotelNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "hotel not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
