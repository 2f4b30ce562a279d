package readstore

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/infra"
	"geargo/internal/infra/db"
	"geargo/internal/pkg/pgconv"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewQuery = `
	SELECT b.id, b.ref, b.item_id, i.name, i.kind, i.owner_id, b.renter_id,
	       b.start_date, b.end_date, b.daily_rate_paise, b.total_paise,
	       b.status, b.payment_status,
	       b.customer_name, b.customer_email, b.customer_phone,
	       b.order_id, b.payment_id, b.expires_at, b.cancel_reason, b.refund_paise,
	       b.created_at, b.updated_at
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.id = $1`

	row := s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id))
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (s *BookingReadStore) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.ref, b.item_id, i.name, b.start_date, b.end_date,
		       b.status, b.total_paise, b.created_at
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.renter_id = $1
		ORDER BY b.created_at DESC`

	rows, err := s.db.Query(ctx, query, pgconv.UUIDToPgtype(renterID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list renter bookings", err)
	}
	return scanBookingList(rows)
}

func (s *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.ref, b.item_id, i.name, b.start_date, b.end_date,
		       b.status, b.total_paise, b.created_at
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1
		ORDER BY b.created_at DESC`

	rows, err := s.db.Query(ctx, query, pgconv.UUIDToPgtype(ownerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list owner bookings", err)
	}
	return scanBookingList(rows)
}

// BookedRanges returns the occupying reservations intersecting the
// window. Expired holds drop out here without waiting for the sweep job.
func (s *BookingReadStore) BookedRanges(ctx context.Context, itemID uuid.UUID, window booking.DateRange, now time.Time) ([]*queries.BookedRange, error) {
	const query = `
		SELECT start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		  AND (status = 'confirmed' OR (status = 'pending' AND expires_at > $2))
		  AND start_date < $4
		  AND end_date > $3
		ORDER BY start_date`

	rows, err := s.db.Query(ctx, query,
		pgconv.UUIDToPgtype(itemID),
		pgconv.TimeToPgtype(now),
		pgconv.DateToPgtype(window.Start()),
		pgconv.DateToPgtype(window.End()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked ranges", err)
	}
	defer rows.Close()

	var ranges []*queries.BookedRange
	for rows.Next() {
		var (
			start  pgtype.Date
			end    pgtype.Date
			status string
		)
		if err := rows.Scan(&start, &end, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		ranges = append(ranges, &queries.BookedRange{
			Start:  pgconv.DateFromPgtype(start),
			End:    pgconv.DateFromPgtype(end),
			Status: status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked ranges", err)
	}
	return ranges, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		id            pgtype.UUID
		ref           string
		itemID        pgtype.UUID
		itemName      string
		itemKind      string
		itemOwnerID   pgtype.UUID
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

	err := row.Scan(
		&id, &ref, &itemID, &itemName, &itemKind, &itemOwnerID, &renterID,
		&startDate, &endDate, &dailyRate, &total,
		&status, &paymentStatus,
		&custName, &custEmail, &custPhone,
		&orderID, &paymentID, &expiresAt, &cancelReason, &refund,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &queries.BookingView{
		ID:             uuid.UUID(id.Bytes),
		Ref:            ref,
		ItemID:         uuid.UUID(itemID.Bytes),
		ItemName:       itemName,
		ItemKind:       itemKind,
		ItemOwnerID:    uuid.UUID(itemOwnerID.Bytes),
		RenterID:       uuid.UUID(renterID.Bytes),
		StartDate:      pgconv.DateFromPgtype(startDate),
		EndDate:        pgconv.DateFromPgtype(endDate),
		DailyRatePaise: dailyRate,
		TotalPaise:     total,
		Status:         status,
		PaymentStatus:  paymentStatus,
		CustomerName:   custName,
		CustomerEmail:  custEmail,
		CustomerPhone:  custPhone,
		OrderID:        orderID,
		PaymentID:      pgconv.StringPtrFromPgtype(paymentID),
		ExpiresAt:      pgconv.TimePtrFromPgtype(expiresAt),
		CancelReason:   pgconv.StringPtrFromPgtype(cancelReason),
		RefundPaise:    refund,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func scanBookingList(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			id        pgtype.UUID
			ref       string
			itemID    pgtype.UUID
			itemName  string
			startDate pgtype.Date
			endDate   pgtype.Date
			status    string
			total     int64
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &ref, &itemID, &itemName, &startDate, &endDate, &status, &total, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &queries.BookingListItem{
			ID:         uuid.UUID(id.Bytes),
			Ref:        ref,
			ItemID:     uuid.UUID(itemID.Bytes),
			ItemName:   itemName,
			StartDate:  pgconv.DateFromPgtype(startDate),
			EndDate:    pgconv.DateFromPgtype(endDate),
			Status:     status,
			TotalPaise: total,
			CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return items, nil
}
