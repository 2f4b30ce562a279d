package shared

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/domain/catalog"
	"geargo/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Items() ItemRepository
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	// ConfirmHold performs the conditional confirm update: the hold must
	// still be pending and unexpired, and no confirmed booking may overlap
	// its range. Returns false when the guard rejected the update.
	ConfirmHold(ctx context.Context, id uuid.UUID, paymentID string, now time.Time) (bool, error)
	// CountOccupyingOverlaps counts confirmed or live-pending bookings of
	// the item overlapping r, excluding excludeID when non-nil UUID.
	CountOccupyingOverlaps(ctx context.Context, itemID uuid.UUID, r booking.DateRange, now time.Time, excludeID uuid.UUID) (int64, error)
	// CountOccupying counts all bookings of the item that still block the
	// calendar at now, regardless of date range.
	CountOccupying(ctx context.Context, itemID uuid.UUID, now time.Time) (int64, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *catalog.Item) error
	Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool, now time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
