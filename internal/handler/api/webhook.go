package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	reqdto "geargo/internal/handler/dto/request"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
	eventRefundProcessed = "refund.processed"

	webhookSignatureHeader = "X-Razorpay-Signature"
	maxWebhookBodyBytes    = 1 << 20
)

// WebhookVerifier authenticates raw webhook payloads.
type WebhookVerifier interface {
	VerifyWebhook(body []byte, signature string) bool
}

type WebhookHandler struct {
	bookingCommands commands.BookingCommands
	verifier        WebhookVerifier
}

func NewWebhookHandler(bookingCommands commands.BookingCommands, verifier WebhookVerifier) *WebhookHandler {
	return &WebhookHandler{
		bookingCommands: bookingCommands,
		verifier:        verifier,
	}
}

// @Summary Payment webhook
// @Description Receive payment lifecycle events from the payment provider
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "HMAC signature of the raw body"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	// Signature covers the raw body, so read it before any decoding.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if signature == "" || !h.verifier.VerifyWebhook(body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	var event reqdto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event payload",
		})
		return
	}

	orderID := event.OrderID()
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Event is missing an order reference",
		})
		return
	}

	ctx := c.Request.Context()
	switch event.Event {
	case eventPaymentCaptured:
		err = h.bookingCommands.HandlePaymentCaptured(ctx, orderID, event.Payload.Payment.Entity.ID)
	case eventPaymentFailed:
		err = h.bookingCommands.HandlePaymentFailed(ctx, orderID)
	case eventRefundProcessed:
		err = h.bookingCommands.HandleRefundProcessed(ctx, orderID, event.Payload.Refund.Entity.Amount)
	default:
		// Unknown events are acknowledged so the provider stops retrying.
		slog.Info("ignoring unhandled webhook event", "event", event.Event)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			// No booking for this order; acknowledge to stop retries.
			slog.Warn("webhook references unknown order", "event", event.Event, "order_id", orderID)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		case errors.Is(err, errs.ErrAlreadyProcessed),
			errors.Is(err, errs.ErrHoldExpired),
			errors.Is(err, errs.ErrBookingConflict):
			// Terminal outcome; retrying would not change it.
			slog.Warn("webhook event not applicable", "event", event.Event, "order_id", orderID, "reason", err.Error())
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		slog.Error("webhook processing failed", "event", event.Event, "order_id", orderID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
