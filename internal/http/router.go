// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, compression, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/config"
	"github.com/aegeantours/go-guide-backend/internal/http/handlers"
	"github.com/aegeantours/go-guide-backend/internal/http/middleware"
	"github.com/aegeantours/go-guide-backend/internal/repo"
	"github.com/aegeantours/go-guide-backend/internal/services"
	"github.com/aegeantours/go-guide-backend/internal/utils"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per actor/IP, bypass on replay)
//  9. CORS, gzip, and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (tourist phone/WhatsApp numbers and
	//    emails must never reach the logs)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB covers every insert shape)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, actorID, sessionID, key string, now time.Time) (bool, error) {
			sid := utils.AtoiDefault(sessionID, 0)
			rec, err := repo.GetIdempotency(ctx, db, actorID, sid, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per actor/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByActorOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderActorID, middleware.HeaderIdempotencyKey, "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderActorID, middleware.HeaderIdempotencyKey, "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Compress API payloads; Prometheus negotiates its own encoding.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false, // session/message listings rely on ETag revalidation
		EnablePolicy: true,
	}))

	// Fallbacks: JSON 404/405 for API paths; the SPA catch-all (when a static
	// dir is configured) takes over NoRoute for client-side routes.
	registerFallbacks(r, cfg)

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (behind a flag; the OpenAPI document comes from handler annotations)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db
	userSvc := services.NewUserService(db)
	guideSvc := services.NewGuideService(db)
	rosterSvc := services.NewRosterService(db)
	chatSvc := services.NewChatService(db)
	bulletinSvc := services.NewBulletinService(db)
	reviewSvc := services.NewReviewService(db, guideSvc, cfg.ReviewRequireClosed)
	analyticsSvc := services.NewAnalyticsService(db)

	h := handlers.New(db, userSvc, guideSvc, rosterSvc, chatSvc, bulletinSvc, reviewSvc, analyticsSvc, cfg.IdempotencyTTL)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)

		// Guides
		api.POST("/guides", h.CreateGuide)
		api.GET("/guides", h.ListGuides)
		api.GET("/guides/:id", h.GetGuide)
		api.PUT("/guides/:id/active", h.SetGuideActive)
		api.GET("/guides/:id/reviews", h.ListGuideReviews)

		// Hotels
		api.POST("/hotels", h.CreateHotel)
		api.GET("/hotels", h.ListHotels)
		api.GET("/hotels/:id", h.GetHotel)
		api.PUT("/hotels/:id/active", h.SetHotelActive)

		// Guide-hotel assignments
		api.POST("/assignments", h.CreateAssignment)
		api.GET("/assignments", h.ListAssignments)
		api.GET("/assignments/:id", h.GetAssignment)
		api.PUT("/assignments/:id/active", h.SetAssignmentActive)

		// Chat sessions
		api.POST("/sessions", h.OpenSession)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSession)
		api.PUT("/sessions/:id/close", h.CloseSession)
		api.PUT("/sessions/:id/guide", h.AssignSessionGuide)
		api.DELETE("/sessions/:id", h.DeleteSession)

		// Messages
		api.GET("/sessions/:id/messages", h.ListMessages)
		api.POST("/sessions/:id/messages", h.PostMessage)
		api.PUT("/messages/:id/read", h.MarkMessageRead)
		api.DELETE("/messages/:id", h.DeleteMessage)

		// Announcements, departures, emergency contacts
		api.POST("/announcements", h.CreateAnnouncement)
		api.GET("/announcements", h.ListAnnouncements)
		api.GET("/announcements/:id", h.GetAnnouncement)
		api.PUT("/announcements/:id/active", h.SetAnnouncementActive)
		api.POST("/departures", h.CreateDeparture)
		api.GET("/departures", h.ListDepartures)
		api.GET("/departures/:id", h.GetDeparture)
		api.POST("/contacts", h.CreateContact)
		api.GET("/contacts", h.ListContacts)
		api.GET("/contacts/:id", h.GetContact)

		// Reviews
		api.POST("/reviews", h.LeaveReview)
		api.GET("/sessions/:id/review", h.GetSessionReview)

		// Analytics
		api.GET("/analytics/overview", h.Overview)
		api.GET("/analytics/guides", h.GuideSummaries)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
