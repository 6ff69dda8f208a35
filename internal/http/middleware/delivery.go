// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements webhook redelivery support. Message sources retry
// deliveries after transport hiccups, so every inbound POST may carry a
// delivery identifier (X-Delivery-ID). The middleware validates the header,
// optionally performs a user-defined lookup to detect already-processed
// deliveries, and annotates the request context so downstream handlers can:
//   - read the normalized delivery ID (GetDeliveryID)
//   - detect replayed deliveries (IsReplay)
//   - bypass rate limiting when a replay is served (via an internal flag)
//
// Design goals:
//   - Keep transport concerns (validation, context stashing) in middleware.
//   - Decouple persistence via a narrow DeliveryLookup function type.
//   - Remain framework-agnostic beyond Gin's context.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderDeliveryID is the request header that message sources use to convey
// a stable per-delivery identifier (e.g., the source's update sequence
// number) so that redeliveries can be detected.
const HeaderDeliveryID = "X-Delivery-ID"

// Context keys used internally to stash delivery state.
// These keys are intentionally unexported and referenced via accessor helpers.
const (
	ctxKeyDeliveryID = "delivery.id"
	ctxKeyReplay     = "delivery.replay" // bool: true when already processed
	ctxKeyRateBypass = "rate.bypass"     // bool: true to skip rate limiting
)

// GetDeliveryID returns the validated delivery ID stored in the Gin context
// by DeliveryValidator. The second return value indicates presence.
//
// Handlers should prefer this function over reading the header directly.
func GetDeliveryID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyDeliveryID)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request
// re-delivers an already-processed inbound message.
//
// When true, upstream components (e.g., handlers, rate limiters) may choose
// to short-circuit processing and return the previously recorded outcome.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// DeliveryOptions configures header validation behavior for DeliveryValidator.
type DeliveryOptions struct {
	// MaxLen caps the accepted ID length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative RFC7230-like
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
	// Now supplies the instant handed to the lookup for TTL checks.
	// If nil, time.Now is used. Tests pin this to a fixed instant.
	Now func() time.Time
}

// DeliveryLookup answers whether a still-valid record exists for deliveryID
// at the given time. Implementations typically consult the
// processed_deliveries table with its TTL window.
//
// Return exists=true when the delivery was already handled; return an error
// only for lookup failures (which should not block normal processing).
type DeliveryLookup func(ctx context.Context, deliveryID string, now time.Time) (exists bool, err error)

// DeliveryValidator validates the X-Delivery-ID header (if present), stashes
// it in the request context, and optionally checks for a prior completed
// delivery via the supplied lookup. When a replay is detected, it marks the
// context so downstream components can:
//   - detect replay via IsReplay
//   - bypass rate limiting (internal flag checked by the RL middleware)
//
// Behavior:
//   - If header is absent: the middleware is a no-op.
//   - If header fails validation: responds 400 with a compact error body.
//   - If lookup indicates a replay: sets replay + rate-bypass flags.
//   - Always invokes the next handler unless validation fails.
//
// This middleware does not itself serve the recorded outcome; handlers
// remain in control of how replays are answered.
func DeliveryValidator(opts DeliveryOptions, lookup DeliveryLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		// RFC-7230-ish token + common safe chars.
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	return func(c *gin.Context) {
		id := c.GetHeader(HeaderDeliveryID)
		if id == "" {
			c.Next()
			return
		}
		if len(id) > maxLen || !pat.MatchString(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_delivery_id",
				"message": "invalid X-Delivery-ID",
			})
			return
		}

		c.Set(ctxKeyDeliveryID, id)

		if lookup != nil {
			if exists, _ := lookup(c.Request.Context(), id, nowFn().UTC()); exists {
				c.Set(ctxKeyReplay, true)
				c.Set(ctxKeyRateBypass, true) // let RL middleware skip limiting
			}
		}

		c.Next()
	}
}
