package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Overview godoc
// @ID          analyticsOverview
// @Summary     Operational overview counters
// @Description Totals for sessions, messages, guides and users, plus session counts per category.
// @Tags        Analytics
// @Produce     json
// @Success     200  {object}  services.OverviewReport
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /analytics/overview [get]
func (h *Handlers) Overview(c *gin.Context) {
	report, err := h.Analytics.Overview(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, report)
}

// GuideSummaries godoc
// @ID          analyticsGuides
// @Summary     Per-guide review summaries
// @Description Review count and average rating per guide, for the admin dashboard.
// @Tags        Analytics
// @Produce     json
// @Success     200  {array}  repo.GuideReviewSummary
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /analytics/guides [get]
func (h *Handlers) GuideSummaries(c *gin.Context) {
	rows, err := h.Analytics.GuideSummaries(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}
