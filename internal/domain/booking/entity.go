package booking

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount = errors.New("total amount must be positive")
	ErrNotPending        = errors.New("booking is not pending")
	ErrHoldExpired       = errors.New("hold has expired")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("booking cannot be cancelled")
)

// Booking is a reservation for a catalog item over a half-open date
// range. It starts life as a time-boxed pending hold and either gets
// confirmed on verified payment or lapses.
type Booking struct {
	id            uuid.UUID
	ref           string
	itemID        uuid.UUID
	renterID      uuid.UUID
	dateRange     DateRange
	dailyRate     Money
	total         Money
	status        Status
	paymentStatus PaymentStatus
	customer      CustomerDetails
	orderID       string
	paymentID     *string
	expiresAt     *time.Time
	cancelReason  *string
	refund        Money
	createdAt     time.Time
	updatedAt     time.Time
}

// NewHold creates a pending hold that occupies the calendar until
// expiresAt. Availability and self-booking checks happen in the command
// layer, where the item is loaded.
func NewHold(
	itemID, renterID uuid.UUID,
	r DateRange,
	dailyRate, total Money,
	customer CustomerDetails,
	orderID string,
	now time.Time,
	ttl time.Duration,
) (*Booking, error) {
	if r.IsZero() {
		return nil, ErrInvalidDateRange
	}
	if !total.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" {
		return nil, ErrIncompleteContact
	}

	expiresAt := now.Add(ttl)
	return &Booking{
		id:            uuid.New(),
		ref:           newBookingRef(now),
		itemID:        itemID,
		renterID:      renterID,
		dateRange:     r,
		dailyRate:     dailyRate,
		total:         total,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		customer:      customer,
		orderID:       orderID,
		expiresAt:     &expiresAt,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func newBookingRef(now time.Time) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("BK%d", now.UnixNano())
	}
	return fmt.Sprintf("BK%d%s", now.UnixMilli(), hex.EncodeToString(buf))
}

func ReconstructBooking(
	id uuid.UUID,
	ref string,
	itemID, renterID uuid.UUID,
	r DateRange,
	dailyRate, total Money,
	status Status,
	paymentStatus PaymentStatus,
	customer CustomerDetails,
	orderID string,
	paymentID *string,
	expiresAt *time.Time,
	cancelReason *string,
	refund Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		ref:           ref,
		itemID:        itemID,
		renterID:      renterID,
		dateRange:     r,
		dailyRate:     dailyRate,
		total:         total,
		status:        status,
		paymentStatus: paymentStatus,
		customer:      customer,
		orderID:       orderID,
		paymentID:     paymentID,
		expiresAt:     expiresAt,
		cancelReason:  cancelReason,
		refund:        refund,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// IsOccupying reports whether this booking blocks the calendar at now:
// confirmed, or pending with an unexpired hold.
func (b *Booking) IsOccupying(now time.Time) bool {
	switch b.status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return b.expiresAt != nil && now.Before(*b.expiresAt)
	default:
		return false
	}
}

func (b *Booking) HasLapsed(now time.Time) bool {
	return b.status == StatusPending && b.expiresAt != nil && !now.Before(*b.expiresAt)
}

// Confirm transitions a live pending hold to confirmed/paid and clears
// the expiry. Payment verification happens before this is called.
func (b *Booking) Confirm(paymentID string, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	if b.HasLapsed(now) {
		return ErrHoldExpired
	}
	b.status = StatusConfirmed
	b.paymentStatus = PaymentPaid
	b.paymentID = &paymentID
	b.expiresAt = nil
	b.updatedAt = now
	return nil
}

// Expire persists the lapse of a pending hold whose deadline has passed.
func (b *Booking) Expire(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusExpired
	b.expiresAt = nil
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	b.cancelReason = &reason
	b.expiresAt = nil
	b.updatedAt = now
	return nil
}

// MarkRefunded records a processed refund for a cancelled paid booking.
func (b *Booking) MarkRefunded(amount Money, now time.Time) {
	b.paymentStatus = PaymentRefunded
	b.refund = amount
	b.updatedAt = now
}

func (b *Booking) MarkPaymentFailed(now time.Time) {
	b.paymentStatus = PaymentFailed
	b.updatedAt = now
}

func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

// TransitionTo applies an administrative status change, enforcing the
// state machine edges.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() || !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	switch next {
	case StatusConfirmed:
		// Administrative confirms bypass payment; keep payment status as-is.
		b.status = StatusConfirmed
		b.expiresAt = nil
	case StatusCancelled:
		b.status = StatusCancelled
		b.expiresAt = nil
	case StatusCompleted:
		b.status = StatusCompleted
	case StatusExpired:
		b.status = StatusExpired
		b.expiresAt = nil
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) Ref() string                   { return b.ref }
func (b *Booking) ItemID() uuid.UUID             { return b.itemID }
func (b *Booking) RenterID() uuid.UUID           { return b.renterID }
func (b *Booking) DateRange() DateRange          { return b.dateRange }
func (b *Booking) DailyRate() Money              { return b.dailyRate }
func (b *Booking) Total() Money                  { return b.total }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) Customer() CustomerDetails     { return b.customer }
func (b *Booking) OrderID() string               { return b.orderID }
func (b *Booking) PaymentID() *string            { return b.paymentID }
func (b *Booking) ExpiresAt() *time.Time         { return b.expiresAt }
func (b *Booking) CancelReason() *string         { return b.cancelReason }
func (b *Booking) Refund() Money                 { return b.refund }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
