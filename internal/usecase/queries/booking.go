package queries

import (
	"context"

	"geargo/internal/domain/user"
	"geargo/internal/infra"
	"geargo/internal/pkg/errs"

	"github.com/google/uuid"
)

type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

type BookingQueries interface {
	// GetByID returns the booking when the actor is its renter, the owner
	// of the booked item, or an admin.
	GetByID(ctx context.Context, id uuid.UUID, actor Actor) (*BookingView, error)
	// GetByIDSystem skips access checks; for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
}

func NewBookingQueries(bookings BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor Actor) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.RenterID != actor.ID && view.ItemOwnerID != actor.ID && !actor.IsAdmin() {
		// Hide existence from unrelated users.
		return nil, errs.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list renter bookings")
	}
	return items, nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list owner bookings")
	}
	return items, nil
}
