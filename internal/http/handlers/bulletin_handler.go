// Bulletin HTTP handlers: announcements, departure schedules, and emergency
// contacts.
//
//   - POST /announcements
//   - GET  /announcements            (?active= ?live= filters, ETag-free)
//   - GET  /announcements/:id
//   - PUT  /announcements/:id/active
//   - POST /departures
//   - GET  /departures
//   - GET  /departures/:id
//   - POST /contacts
//   - GET  /contacts                 (?type= ?active= filters)
//   - GET  /contacts/:id
//
// Expired announcements are returned by default so the admin surface can
// audit them; pass ?live=true to drop them for the tourist surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/schema"
	"github.com/aegeantours/go-guide-backend/internal/services"
	"github.com/aegeantours/go-guide-backend/internal/utils"
)

// CreateAnnouncement godoc
// @ID          createAnnouncement
// @Summary     Post an announcement
// @Tags        Bulletins
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertAnnouncement  true  "Announcement payload"
// @Success     201  {object}  domain.Announcement
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /announcements [post]
func (h *Handlers) CreateAnnouncement(c *gin.Context) {
	var in schema.InsertAnnouncement
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	a, errs := schema.ValidateAnnouncement(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	created, err := h.Bulletin.CreateAnnouncement(c.Request.Context(), &a)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListAnnouncements godoc
// @ID          listAnnouncements
// @Summary     List announcements
// @Description Expired notices are included by default; ?live=true drops them.
// @Tags        Bulletins
// @Produce     json
// @Param       active  query  bool  false  "Filter by active flag"
// @Param       live    query  bool  false  "Drop expired notices"
// @Success     200  {array}   domain.Announcement
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /announcements [get]
func (h *Handlers) ListAnnouncements(c *gin.Context) {
	live := utils.ParseBoolDefault(c.Query("live"), false)
	items, err := h.Bulletin.ListAnnouncements(c.Request.Context(), boolQuery(c, "active"), live)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetAnnouncement godoc
// @ID          getAnnouncement
// @Summary     Fetch one announcement
// @Tags        Bulletins
// @Produce     json
// @Param       id  path  int  true  "Announcement ID"
// @Success     200  {object}  domain.Announcement
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /announcements/{id} [get]
func (h *Handlers) GetAnnouncement(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "announcement id must be a positive integer")
		return
	}
	a, err := h.Bulletin.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
		return
	}
	ok(c, http.StatusOK, a)
}

// SetAnnouncementActive godoc
// @ID          setAnnouncementActive
// @Summary     Activate or deactivate an announcement
// @Tags        Bulletins
// @Accept      json
// @Produce     json
// @Param       id    path  int                          true  "Announcement ID"
// @Param       body  body  handlers.SetActiveRequest  true  "Flag payload"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /announcements/{id}/active [put]
func (h *Handlers) SetAnnouncementActive(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "announcement id must be a positive integer")
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isActive boolean required")
		return
	}
	if err := h.Bulletin.SetAnnouncementActive(c.Request.Context(), id, *req.IsActive); err != nil {
		if err == services.ErrAnnouncementNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// CreateDeparture godoc
// @ID          createDeparture
// @Summary     Upload a departure schedule sheet
// @Tags        Bulletins
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertDepartureSchedule  true  "Schedule payload"
// @Success     201  {object}  domain.DepartureSchedule
// @Failure     404  {object}  handlers.ErrorResponse  "Uploader missing"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /departures [post]
func (h *Handlers) CreateDeparture(c *gin.Context) {
	var in schema.InsertDepartureSchedule
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	d, errs := schema.ValidateDepartureSchedule(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	created, err := h.Bulletin.CreateDeparture(c.Request.Context(), &d)
	if err != nil {
		if err == services.ErrUserNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "uploading user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListDepartures godoc
// @ID          listDepartures
// @Summary     List departure schedules
// @Tags        Bulletins
// @Produce     json
// @Param       active  query  bool  false  "Filter by active flag"
// @Success     200  {array}   domain.DepartureSchedule
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /departures [get]
func (h *Handlers) ListDepartures(c *gin.Context) {
	items, err := h.Bulletin.ListDepartures(c.Request.Context(), boolQuery(c, "active"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetDeparture godoc
// @ID          getDeparture
// @Summary     Fetch one departure schedule
// @Tags        Bulletins
// @Produce     json
// @Param       id  path  int  true  "Schedule ID"
// @Success     200  {object}  domain.DepartureSchedule
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /departures/{id} [get]
func (h *Handlers) GetDeparture(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "schedule id must be a positive integer")
		return
	}
	d, err := h.Bulletin.GetDeparture(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "departure schedule not found")
		return
	}
	ok(c, http.StatusOK, d)
}

// CreateContact godoc
// @ID          createContact
// @Summary     Add an emergency contact
// @Tags        Bulletins
// @Accept      json
// @Produce     json
// @Param       body  body  schema.InsertEmergencyContact  true  "Contact payload"
// @Success     201  {object}  domain.EmergencyContact
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	var in schema.InsertEmergencyContact
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	contact, errs := schema.ValidateEmergencyContact(in)
	if errs != nil {
		failValidation(c, errs)
		return
	}
	created, err := h.Bulletin.CreateContact(c.Request.Context(), &contact)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListContacts godoc
// @ID          listContacts
// @Summary     List emergency contacts
// @Tags        Bulletins
// @Produce     json
// @Param       type    query  string  false  "Filter by kind (medical, guide-manager, general)"
// @Param       active  query  bool    false  "Filter by active flag"
// @Success     200  {array}   domain.EmergencyContact
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	items, err := h.Bulletin.ListContacts(c.Request.Context(), c.Query("type"), boolQuery(c, "active"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetContact godoc
// @ID          getContact
// @Summary     Fetch one emergency contact
// @Tags        Bulletins
// @Produce     json
// @Param       id  path  int  true  "Contact ID"
// @Success     200  {object}  domain.EmergencyContact
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	id, okID := intParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "contact id must be a positive integer")
		return
	}
	contact, err := h.Bulletin.GetContact(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact not found")
		return
	}
	ok(c, http.StatusOK, contact)
}
