// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the Idempotency-Key request header on unsafe methods,
// stashes the key for handlers, and asks a lookup whether the request would
// replay an earlier one. Replays are flagged so the rate limiter skips them;
// serving the stored result stays with the handler.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// previously recorded request.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// MsgInvalidIdempotencyKey is the 400 message for malformed keys.
const MsgInvalidIdempotencyKey = "Bad Request: invalid Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found a live record for this request.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// ScopeParam names the route parameter that scopes keys (e.g.
	// "article_id"). Empty means keys are global.
	ScopeParam string
	// ValidScope, when set, must accept the ScopeParam value. Otherwise the
	// request passes through untouched so the handler reports the bad path.
	ValidScope func(string) bool
	// Routes restricts the validator to these route patterns, as reported
	// by gin's FullPath (e.g. "/api/articles/:article_id/comments"). Empty
	// means every route.
	Routes []string
}

// IdempotencyLookup reports whether a live record exists for (scope, key) at
// now. Lookup errors are treated as "no record".
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (bool, error)

// IdempotencyValidator checks the Idempotency-Key header on POST, PUT and
// PATCH requests to the configured routes. Absent header: no-op. Malformed header: 400. Otherwise the
// key is stashed and, when lookup finds a record, the request is marked as a
// replay and exempted from rate limiting.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}
	var routes map[string]struct{}
	if len(opts.Routes) > 0 {
		routes = make(map[string]struct{}, len(opts.Routes))
		for _, p := range opts.Routes {
			routes[p] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if routes != nil {
			if _, ok := routes[c.FullPath()]; !ok {
				c.Next()
				return
			}
		}
		var scope string
		if opts.ScopeParam != "" {
			scope = c.Param(opts.ScopeParam)
			if opts.ValidScope != nil && !opts.ValidScope(scope) {
				c.Next()
				return
			}
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": MsgInvalidIdempotencyKey})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			if exists, _ := lookup(c.Request.Context(), scope, key, time.Now().UTC()); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
