// Message ingestion HTTP handlers.
//
// This file exposes the webhook endpoint a message source (bot front-end,
// bridge, or test harness) calls for every inbound group text message:
//   - POST /messages   (run one dedup cycle, return the outcome)
//
// Handlers are transport-thin:
//   - validate & bind the inbound payload
//   - delegate to the application service (DedupService)
//   - translate service errors into HTTP results
//
// Redelivery:
// If the source supplies an X-Delivery-ID header and that delivery was
// already processed for the chat, the handler returns the recorded outcome
// and sets `Delivery-Replayed: true` instead of running another cycle.
// A replayed duplicate carries no notice: the reply was already sent the
// first time, so the source must not post it again.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-dedup-backend/internal/http/middleware"
	"github.com/tbourn/go-dedup-backend/internal/repo"
	"github.com/tbourn/go-dedup-backend/internal/services"
)

//
// Service contracts
//

// DedupService is the decision engine contract required by the handlers.
type DedupService interface {
	// Process runs one terminal dedup cycle for an inbound message.
	Process(ctx context.Context, msg services.InboundMessage) (*services.Outcome, error)
	// Sweep evicts records past the retention horizon and reports the count.
	Sweep(ctx context.Context) (int64, error)
}

//
// Handler wiring
//

// Handlers bundles the injected dependencies for all HTTP endpoints.
type Handlers struct {
	svc DedupService
	db  *gorm.DB

	// now supplies the instant used for delivery expiry checks; tests pin it.
	now func() time.Time

	// DeliveryTTL bounds how long processed delivery IDs stay recognizable.
	DeliveryTTL time.Duration
}

// New constructs a Handlers instance bound to the given service and store.
func New(svc DedupService, db *gorm.DB, deliveryTTL time.Duration) *Handlers {
	if deliveryTTL <= 0 {
		deliveryTTL = 24 * time.Hour
	}
	return &Handlers{svc: svc, db: db, now: time.Now, DeliveryTTL: deliveryTTL}
}

//
// DTOs
//

// PostMessageRequest is the JSON payload for one inbound group message.
type PostMessageRequest struct {
	// ChatID scopes dedup; group IDs may be negative, zero is invalid.
	ChatID int64 `json:"chat_id" binding:"required" example:"-1001234567890"`
	// AuthorID identifies the sender within the source platform.
	AuthorID int64 `json:"author_id" binding:"required" example:"987654321"`
	// AuthorName is the sender's display name; optional, the backend falls
	// back to the stringified AuthorID.
	AuthorName string `json:"author_name" example:"Alice"`
	// Text is the verbatim message text.
	Text string `json:"text" binding:"required" example:"Hello World"`
}

// PostMessageResponse reports the dedup outcome for one inbound message.
//
// Notice is present only when Outcome is "duplicate": it is the reply the
// source should post back into the originating chat.
type PostMessageResponse struct {
	Outcome string `json:"outcome" example:"duplicate"`
	Notice  string `json:"notice,omitempty" example:"Duplicate message detected"`
}

//
// Handlers
//

// PostMessage godoc
// @ID          postMessage
// @Summary     Process an inbound group message
// @Description Runs one dedup cycle: short messages are skipped, novel ones recorded,
// @Description duplicates answered with a notice to relay into the chat.
// @Description Supports redelivery detection via the X-Delivery-ID header.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       X-Delivery-ID  header  string  false "Stable delivery identifier for redelivery detection"  example(upd-1001)
// @Param       body           body    handlers.PostMessageRequest  true  "Inbound message payload"
//
// @Success     200  {object}  handlers.PostMessageResponse  "Dedup outcome"
// @Failure     400  {object}  handlers.ErrorResponse        "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse        "Internal error"
// @Router      /messages [post]
func (h *Handlers) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat_id, author_id and text required")
		return
	}

	// Redelivery (replay path) – serve the recorded outcome without
	// running another cycle.
	deliveryID, _ := middleware.GetDeliveryID(c)
	if deliveryID != "" && h.db != nil {
		if rec, err := repo.GetDelivery(ctx, h.db, req.ChatID, deliveryID, h.now().UTC()); err == nil && rec != nil {
			c.Header("Delivery-Replayed", "true")
			ok(c, http.StatusOK, PostMessageResponse{Outcome: rec.Outcome})
			return
		}
	}

	out, err := h.svc.Process(ctx, services.InboundMessage{
		ChatID:     req.ChatID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Text:       req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidChat):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat_id required")
		default:
			// Storage faults are contained to this message: log, no reply.
			fail(c, http.StatusInternalServerError, ErrCodeProcessFailed, err.Error())
		}
		return
	}

	// Redelivery (store path) – best effort.
	if deliveryID != "" && h.db != nil {
		_, _ = repo.CreateDelivery(ctx, h.db, req.ChatID, deliveryID, out.Status, h.now().UTC(), h.DeliveryTTL)
	}

	ok(c, http.StatusOK, PostMessageResponse{Outcome: out.Status, Notice: out.Notice})
}
