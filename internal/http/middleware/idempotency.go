// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe HTTP methods, used by
// the message-posting endpoint so that client retries over flaky hotel wifi
// do not produce duplicate messages. It validates an Idempotency-Key request
// header, optionally performs a caller-supplied lookup to detect previously
// completed requests, and annotates the request context so downstream
// handlers can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - bypass rate limiting when a replay is served (via an internal flag)
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to convey an
// idempotency key for unsafe operations. The value is expected to be stable
// for a given semantic operation so retries can be safely deduplicated.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderActorID identifies the requesting participant (tourist, guide or
// admin id) when it is not carried in the request body or query string.
const HeaderActorID = "X-Actor-ID"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored replay exists
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates presence.
//
// Handlers should prefer this function over reading the header directly.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request would
// replay a previously completed operation for the same (actor, session, key).
//
// When true, handlers may short-circuit and return the previously persisted
// result instead of recomputing it.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation behavior for
// IdempotencyValidator. TTL enforcement is intentionally out of scope here and
// should be implemented inside the provided lookup function.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative RFC7230-like
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether a successful, still-valid result exists
// for (actorID, sessionID, key) at the given time. Implementations typically
// consult a database record holding the previous response metadata and its
// TTL window.
//
// Return exists=true when the prior response can be replayed; return an error
// only for lookup failures (which should not block normal processing).
type IdempotencyLookup func(ctx context.Context, actorID, sessionID, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the request context, and optionally checks for a prior
// completed request via the supplied lookup. When a replay is detected, it
// marks the context so downstream components can:
//   - detect replay via IsReplay
//   - bypass rate limiting (internal flag checked by the RL middleware)
//
// Behavior:
//   - If the header is absent: the middleware is a no-op.
//   - If the header fails validation: responds 400 with a compact error body.
//   - If lookup indicates a replay: sets replay + rate-bypass flags.
//   - Always invokes the next handler unless validation fails.
//
// The middleware does not itself return a cached payload; handlers remain in
// control of how replays are served (by fetching the persisted message).
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		// RFC-7230-ish token + common safe chars.
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		// Stash the normalized key for downstream use.
		c.Set(ctxKeyIdemKey, key)

		// If we can detect a previously stored response, mark replay + rate bypass.
		if lookup != nil {
			actor := actorFromRequest(c)
			sessionID := c.Param("id") // POST /sessions/:id/messages
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), actor, sessionID, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// actorFromRequest extracts the requesting participant's identifier from the
// ?actor= query parameter, falling back to the X-Actor-ID header.
func actorFromRequest(c *gin.Context) string {
	if v := c.Query("actor"); v != "" {
		return v
	}
	return c.GetHeader(HeaderActorID)
}
