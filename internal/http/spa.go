// Static serving for the tourist-facing single-page client. The built client
// is a directory of hashed assets plus an index document; every client-side
// route must resolve to that document so the browser router can take over.
package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/config"
	"github.com/aegeantours/go-guide-backend/internal/http/handlers"
)

// clientRoutes are the paths the SPA router owns. Kept as an explicit table
// so server-side redirects and smoke tests have a single source of truth.
var clientRoutes = []string{
	"/",
	"/auth",
	"/guide-dashboard",
	"/admin",
	"/admin-analytics",
}

// registerFallbacks installs the NoRoute/NoMethod handlers. Without a static
// dir every unmatched path gets the JSON error envelope; with one, unmatched
// GETs outside the API surface fall through to the SPA index document.
func registerFallbacks(r *gin.Engine, cfg config.Config) {
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	if cfg.StaticDir == "" {
		r.NoRoute(func(c *gin.Context) {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
		})
		return
	}

	registerSPA(r, cfg.StaticDir, cfg.APIBasePath)
}

// registerSPA mounts the client routes and the SPA catch-all on top of dir.
func registerSPA(r *gin.Engine, dir, apiBase string) {
	index := filepath.Join(dir, "index.html")

	serveIndex := func(c *gin.Context) {
		c.File(index)
	}
	for _, route := range clientRoutes {
		r.GET(route, serveIndex)
		r.HEAD(route, serveIndex)
	}

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path

		// API-shaped paths always answer JSON, never HTML.
		if isAPIPath(path, apiBase) {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
			return
		}

		// Serve a real asset when it exists (hashed JS/CSS, images, fonts).
		if f := filepath.Join(dir, filepath.Clean("/"+path)); fileExists(f) {
			c.File(f)
			return
		}

		// Anything else is a client-side route: hand the SPA its index.
		serveIndex(c)
	})
}

// isAPIPath reports whether path belongs to the JSON surface (the API base
// plus the operational endpoints) rather than the SPA.
func isAPIPath(path, apiBase string) bool {
	if apiBase != "" && apiBase != "/" && strings.HasPrefix(path, apiBase) {
		return true
	}
	for _, p := range []string{"/metrics", "/health", "/swagger"} {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// fileExists reports whether p names an existing regular file.
func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
