package repository

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/infra"
	"geargo/internal/infra/db"
	"geargo/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
	id, ref, item_id, renter_id, start_date, end_date,
	daily_rate_paise, total_paise, status, payment_status,
	customer_name, customer_email, customer_phone,
	order_id, payment_id, expires_at, cancel_reason, refund_paise,
	created_at, updated_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, ref, item_id, renter_id, start_date, end_date,
			daily_rate_paise, total_paise, status, payment_status,
			customer_name, customer_email, customer_phone,
			order_id, payment_id, expires_at, cancel_reason, refund_paise,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)`

	_, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		b.Ref(),
		pgconv.UUIDToPgtype(b.ItemID()),
		pgconv.UUIDToPgtype(b.RenterID()),
		pgconv.DateToPgtype(b.DateRange().Start()),
		pgconv.DateToPgtype(b.DateRange().End()),
		b.DailyRate().Paise(),
		b.Total().Paise(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.Customer().Name,
		b.Customer().Email,
		b.Customer().Phone,
		b.OrderID(),
		pgconv.StringPtrToPgtype(b.PaymentID()),
		pgconv.TimePtrToPgtype(b.ExpiresAt()),
		pgconv.StringPtrToPgtype(b.CancelReason()),
		b.Refund().Paise(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(ctx, query, pgconv.UUIDToPgtype(id))
}

func (r *BookingRepository) GetByOrderID(ctx context.Context, orderID string) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE order_id = $1`
	return r.scanBooking(ctx, query, orderID)
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings SET
			status = $2,
			payment_status = $3,
			payment_id = $4,
			expires_at = $5,
			cancel_reason = $6,
			refund_paise = $7,
			updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		b.Status().String(),
		b.PaymentStatus().String(),
		pgconv.StringPtrToPgtype(b.PaymentID()),
		pgconv.TimePtrToPgtype(b.ExpiresAt()),
		pgconv.StringPtrToPgtype(b.CancelReason()),
		b.Refund().Paise(),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ConfirmHold promotes a pending hold to confirmed in a single guarded
// update. The guard requires the hold to still be live and no confirmed
// booking to overlap its range, so of two racing confirms exactly one
// sees a row change.
func (r *BookingRepository) ConfirmHold(ctx context.Context, id uuid.UUID, paymentID string, now time.Time) (bool, error) {
	const query = `
		UPDATE bookings SET
			status = 'confirmed',
			payment_status = 'paid',
			payment_id = $2,
			expires_at = NULL,
			updated_at = $3
		WHERE id = $1
		  AND status = 'pending'
		  AND expires_at > $3
		  AND NOT EXISTS (
			SELECT 1 FROM bookings other
			WHERE other.item_id = bookings.item_id
			  AND other.id <> bookings.id
			  AND other.status = 'confirmed'
			  AND other.start_date < bookings.end_date
			  AND other.end_date > bookings.start_date
		  )`

	tag, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(id),
		paymentID,
		pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm hold", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) CountOccupyingOverlaps(ctx context.Context, itemID uuid.UUID, dr booking.DateRange, now time.Time, excludeID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM bookings
		WHERE item_id = $1
		  AND id <> $2
		  AND (status = 'confirmed' OR (status = 'pending' AND expires_at > $3))
		  AND start_date < $5
		  AND end_date > $4`

	var count int64
	err := r.db.QueryRow(ctx, query,
		pgconv.UUIDToPgtype(itemID),
		pgconv.UUIDToPgtype(excludeID),
		pgconv.TimeToPgtype(now),
		pgconv.DateToPgtype(dr.Start()),
		pgconv.DateToPgtype(dr.End()),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) CountOccupying(ctx context.Context, itemID uuid.UUID, now time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM bookings
		WHERE item_id = $1
		  AND (status = 'confirmed' OR (status = 'pending' AND expires_at > $2))`

	var count int64
	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(itemID), pgconv.TimeToPgtype(now)).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count occupying bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) scanBooking(ctx context.Context, query string, arg any) (*booking.Booking, error) {
	var (
		id            pgtype.UUID
		ref           string
		itemID        pgtype.UUID
		renterID      pgtype.UUID
		startDate     pgtype.Date
		endDate       pgtype.Date
		dailyRate     int64
		total         int64
		status        string
		paymentStatus string
		custName      string
		custEmail     string
		custPhone     string
		orderID       string
		paymentID     pgtype.Text
		expiresAt     pgtype.Timestamptz
		cancelReason  pgtype.Text
		refund        int64
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id, &ref, &itemID, &renterID, &startDate, &endDate,
		&dailyRate, &total, &status, &paymentStatus,
		&custName, &custEmail, &custPhone,
		&orderID, &paymentID, &expiresAt, &cancelReason, &refund,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}

	dr, err := booking.NewDateRange(pgconv.DateFromPgtype(startDate), pgconv.DateFromPgtype(endDate))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid date range", err)
	}

	return booking.ReconstructBooking(
		uuid.UUID(id.Bytes),
		ref,
		uuid.UUID(itemID.Bytes),
		uuid.UUID(renterID.Bytes),
		dr,
		booking.NewMoney(dailyRate),
		booking.NewMoney(total),
		booking.Status(status),
		booking.PaymentStatus(paymentStatus),
		booking.CustomerDetails{Name: custName, Email: custEmail, Phone: custPhone},
		orderID,
		pgconv.StringPtrFromPgtype(paymentID),
		pgconv.TimePtrFromPgtype(expiresAt),
		pgconv.StringPtrFromPgtype(cancelReason),
		booking.NewMoney(refund),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
