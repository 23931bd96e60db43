// Handler wiring and shared request helpers.
//
// Handlers are transport-thin: they bind and validate input through the
// schema package, call application services, and translate results into HTTP
// responses. Per-actor visibility filtering (soft-deleted sessions and
// messages) happens here, at the boundary, so storage and services stay
// symmetric for all actors.
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/services"
	"github.com/aegeantours/go-guide-backend/internal/utils"
)

// Handlers groups the HTTP endpoints for every API resource. It depends on
// concrete services; the DB handle is kept only for the idempotency record
// store used by PostMessage.
type Handlers struct {
	DB        *gorm.DB
	Users     *services.UserService
	Guides    *services.GuideService
	Roster    *services.RosterService
	Chat      *services.ChatService
	Bulletin  *services.BulletinService
	Reviews   *services.ReviewService
	Analytics *services.AnalyticsService

	// IdemTTL bounds how long a stored Idempotency-Key replay stays valid.
	IdemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(db *gorm.DB, users *services.UserService, guides *services.GuideService,
	roster *services.RosterService, chat *services.ChatService,
	bulletin *services.BulletinService, reviews *services.ReviewService,
	analytics *services.AnalyticsService, idemTTL time.Duration) *Handlers {
	return &Handlers{
		DB:        db,
		Users:     users,
		Guides:    guides,
		Roster:    roster,
		Chat:      chat,
		Bulletin:  bulletin,
		Reviews:   reviews,
		Analytics: analytics,
		IdemTTL:   idemTTL,
	}
}

// actorID extracts the acting identity for per-actor operations (soft delete,
// read receipts, visibility filtering). The ?actor= query parameter wins;
// the X-Actor-ID header is the fallback used by non-browser clients.
func actorID(c *gin.Context) string {
	if v := strings.TrimSpace(c.Query("actor")); v != "" {
		return v
	}
	if c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-Actor-ID"))
	}
	return ""
}

// boolQuery parses a tri-state boolean query parameter: absent means nil
// (no filter), anything else goes through utils.ParseBoolDefault.
func boolQuery(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v := utils.ParseBoolDefault(raw, false)
	return &v
}

// intParam parses a positive integer path parameter, returning ok=false when
// it is absent or malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	id := utils.AtoiDefault(c.Param(name), 0)
	return id, id > 0
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// paginate computes the metadata block for a page of total items.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
