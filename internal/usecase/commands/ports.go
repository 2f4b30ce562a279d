package commands

import (
	"context"
	"time"

	"geargo/internal/domain/booking"

	"github.com/google/uuid"
)

// PaymentOrder is the gateway-side order a renter pays against.
type PaymentOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// PaymentGateway is the opaque payment-provider boundary. Signature
// verification is HMAC-SHA256 over "orderID|paymentID" with the shared
// key secret, matching the provider's checkout callback scheme.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount booking.Money, receipt string) (*PaymentOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Refund(ctx context.Context, paymentID string, amount booking.Money, reason string) (string, error)
}

type CreateHoldInput struct {
	ItemID        uuid.UUID
	RenterID      uuid.UUID
	PickupDate    time.Time
	ReturnDate    time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// ExpectedTotalPaise is the total the client previewed. Zero means
	// the client did not send one; a non-zero mismatch rejects the hold.
	ExpectedTotalPaise int64
}

// HoldResult is returned to the caller so the client can drive the
// payment flow and show an expiry countdown.
type HoldResult struct {
	BookingID  uuid.UUID
	Ref        string
	OrderID    string
	Currency   string
	TotalPaise int64
	Days       int
	ExpiresAt  time.Time
}

type ConfirmInput struct {
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

type CreateItemInput struct {
	OwnerID        uuid.UUID
	Kind           string
	Name           string
	Category       string
	Features       []string
	Location       string
	DailyRatePaise int64
}
