package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/infra"
	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/config"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/queries"
	"geargo/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	// CreateHold reserves the slot with a time-boxed pending hold and
	// opens a payment order for the computed total.
	CreateHold(ctx context.Context, in CreateHoldInput) (*HoldResult, error)
	// Confirm verifies the payment signature and atomically promotes the
	// hold to a confirmed reservation.
	Confirm(ctx context.Context, in ConfirmInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, actor queries.Actor) (*queries.BookingView, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, newStatus booking.Status, actor queries.Actor) (*queries.BookingView, error)

	// Webhook-driven transitions; the caller has already authenticated
	// the event payload.
	HandlePaymentCaptured(ctx context.Context, orderID, paymentID string) error
	HandlePaymentFailed(ctx context.Context, orderID string) error
	HandleRefundProcessed(ctx context.Context, orderID string, amountPaise int64) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	gateway        PaymentGateway
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	cfg            config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
	cfg config.Config,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		gateway:        gateway,
		bookingQueries: bookingQueries,
		clock:          clock,
		cfg:            cfg.Booking,
	}
}

func (c *bookingCommandsImpl) CreateHold(ctx context.Context, in CreateHoldInput) (*HoldResult, error) {
	r, err := booking.NewDateRange(in.PickupDate, in.ReturnDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	customer, err := booking.NewCustomerDetails(in.CustomerName, in.CustomerEmail, in.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIncompleteContact)
	}

	var result *HoldResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Items().Get(ctx, in.ItemID)
		if err != nil {
			return mapItemRepoErr(err)
		}
		if !item.IsAvailable() {
			return errs.ErrItemUnavailable
		}
		if item.IsOwnedBy(in.RenterID) {
			return errs.ErrSelfBooking
		}

		now := c.clock.Now()
		overlaps, err := tx.Bookings().CountOccupyingOverlaps(ctx, item.ID(), r, now, uuid.Nil)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if overlaps > 0 {
			return errs.ErrBookingConflict
		}

		rate := booking.NewMoney(item.DailyRatePaise())
		breakdown, err := booking.ComputePrice(rate, r.Start(), r.End(), now, booking.ProfileFor(item.Kind()))
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidAmount)
		}
		if in.ExpectedTotalPaise != 0 && in.ExpectedTotalPaise != breakdown.Total.Paise() {
			return errs.ErrInvalidAmount
		}

		receipt := fmt.Sprintf("booking_%s_%d", item.ID(), now.UnixMilli())
		order, err := c.gateway.CreateOrder(ctx, breakdown.Total, receipt)
		if err != nil {
			return errs.Mark(err, errs.ErrPaymentGateway)
		}

		hold, err := booking.NewHold(item.ID(), in.RenterID, r, rate, breakdown.Total, customer, order.ID, now, c.cfg.HoldTTL)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, hold); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &HoldResult{
			BookingID:  hold.ID(),
			Ref:        hold.Ref(),
			OrderID:    order.ID,
			Currency:   order.Currency,
			TotalPaise: hold.Total().Paise(),
			Days:       breakdown.Days,
			ExpiresAt:  *hold.ExpiresAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, in ConfirmInput) (*queries.BookingView, error) {
	if !c.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		// The hold stays pending so the renter can retry within the window.
		return nil, errs.ErrPaymentVerification
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().Get(ctx, in.BookingID)
		if err != nil {
			return mapBookingRepoErr(err)
		}
		// A signature only proves payment against its own order; it must
		// be the order this hold was opened with.
		if b.OrderID() != in.OrderID {
			return errs.ErrPaymentVerification
		}

		now := c.clock.Now()
		confirmed, err := tx.Bookings().ConfirmHold(ctx, in.BookingID, in.PaymentID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if confirmed {
			return nil
		}
		return c.classifyConfirmFailure(ctx, tx, in.BookingID, now)
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, in.BookingID)
}

// classifyConfirmFailure inspects the hold after a rejected conditional
// confirm and maps the state to a distinct caller-facing reason. A lapsed
// hold is transitioned to expired in the same transaction.
func (c *bookingCommandsImpl) classifyConfirmFailure(ctx context.Context, tx shared.Tx, id uuid.UUID, now time.Time) error {
	b, err := tx.Bookings().Get(ctx, id)
	if err != nil {
		return mapBookingRepoErr(err)
	}

	switch {
	case b.Status() == booking.StatusConfirmed:
		return errs.ErrAlreadyProcessed
	case b.Status() != booking.StatusPending:
		return errs.ErrAlreadyProcessed
	case b.HasLapsed(now):
		if err := b.Expire(now); err != nil {
			return errs.Mark(err, errs.ErrHoldExpired)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return errs.ErrHoldExpired
	default:
		// Still pending and live, so a confirmed overlap beat it to the slot.
		return errs.ErrBookingConflict
	}
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, reason string, actor queries.Actor) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return mapBookingRepoErr(err)
		}

		item, err := tx.Items().Get(ctx, b.ItemID())
		if err != nil {
			return mapItemRepoErr(err)
		}
		if b.RenterID() != actor.ID && !item.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return errs.ErrBookingNotFound
		}

		now := c.clock.Now()
		wasPaid := b.PaymentStatus() == booking.PaymentPaid
		if err := b.Cancel(reason, now); err != nil {
			return errs.Mark(err, errs.ErrAlreadyProcessed)
		}

		if wasPaid && b.PaymentID() != nil {
			refundID, err := c.gateway.Refund(ctx, *b.PaymentID(), b.Total(), reason)
			if err != nil {
				return errs.Mark(err, errs.ErrPaymentGateway)
			}
			slog.Info("refund initiated", "booking_id", b.ID(), "refund_id", refundID)
			b.MarkRefunded(b.Total(), now)
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, newStatus booking.Status, actor queries.Actor) (*queries.BookingView, error) {
	if !newStatus.IsValid() {
		return nil, errs.Mark(booking.ErrInvalidTransition, errs.ErrInvalidTransition)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return mapBookingRepoErr(err)
		}

		item, err := tx.Items().Get(ctx, b.ItemID())
		if err != nil {
			return mapItemRepoErr(err)
		}
		if !item.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return errs.ErrNotItemOwner
		}

		if err := b.TransitionTo(newStatus, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func mapBookingRepoErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrBookingNotFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func mapItemRepoErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrItemNotFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func (c *bookingCommandsImpl) HandlePaymentCaptured(ctx context.Context, orderID, paymentID string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetByOrderID(ctx, orderID)
		if err != nil {
			return mapBookingRepoErr(err)
		}
		if b.Status() != booking.StatusPending {
			// Checkout callback already confirmed it; webhook is a no-op.
			return nil
		}

		now := c.clock.Now()
		confirmed, err := tx.Bookings().ConfirmHold(ctx, b.ID(), paymentID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !confirmed {
			return c.classifyConfirmFailure(ctx, tx, b.ID(), now)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) HandlePaymentFailed(ctx context.Context, orderID string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetByOrderID(ctx, orderID)
		if err != nil {
			return mapBookingRepoErr(err)
		}
		b.MarkPaymentFailed(c.clock.Now())
		return tx.Bookings().Update(ctx, b)
	})
}

func (c *bookingCommandsImpl) HandleRefundProcessed(ctx context.Context, orderID string, amountPaise int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetByOrderID(ctx, orderID)
		if err != nil {
			return mapBookingRepoErr(err)
		}
		b.MarkRefunded(booking.NewMoney(amountPaise), c.clock.Now())
		return tx.Bookings().Update(ctx, b)
	})
}
