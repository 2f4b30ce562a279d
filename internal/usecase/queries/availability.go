package queries

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/infra"
	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error)
	// BookedRanges returns occupying reservations of the item intersecting
	// the window: confirmed ones plus pending holds that are still live at now.
	BookedRanges(ctx context.Context, itemID uuid.UUID, window booking.DateRange, now time.Time) ([]*BookedRange, error)
}

type AvailabilityQueries interface {
	// IsAvailable reports whether the item can be booked for [start, end).
	// A missing item is a distinct error, not "unavailable".
	IsAvailable(ctx context.Context, itemID uuid.UUID, start, end time.Time) (bool, error)
	Calendar(ctx context.Context, itemID uuid.UUID, start, end time.Time) ([]*BookedRange, error)
}

type availabilityQueriesImpl struct {
	items    ItemReadStore
	bookings BookingReadStore
	clock    clock.Clock
}

func NewAvailabilityQueries(items ItemReadStore, bookings BookingReadStore, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		items:    items,
		bookings: bookings,
		clock:    clock,
	}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, itemID uuid.UUID, start, end time.Time) (bool, error) {
	r, err := booking.NewDateRange(start, end)
	if err != nil {
		return false, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	item, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.ErrItemNotFound
		}
		return false, errs.Wrap(err, "failed to find item")
	}
	if !item.Available {
		return false, nil
	}

	occupying, err := q.bookings.BookedRanges(ctx, itemID, r, q.clock.Now())
	if err != nil {
		return false, errs.Wrap(err, "failed to query overlapping bookings")
	}
	return len(occupying) == 0, nil
}

func (q *availabilityQueriesImpl) Calendar(ctx context.Context, itemID uuid.UUID, start, end time.Time) ([]*BookedRange, error) {
	if _, err := q.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	window, err := booking.NewDateRange(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	ranges, err := q.bookings.BookedRanges(ctx, itemID, window, q.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "failed to query booked ranges")
	}
	return ranges, nil
}
