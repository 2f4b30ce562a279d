//go:build unit

package commands_test

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/domain/catalog"
	"geargo/internal/infra"
	"geargo/internal/infra/db"
	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"
	"geargo/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the transactional ports. Within runs the closure
// against the same stores every time, so state written in one command is
// visible to the next.

type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: &fakeTx{
		bookings: newFakeBookingRepo(),
		items:    newFakeItemRepo(),
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	bookings *fakeBookingRepo
	items    *fakeItemRepo
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Items() shared.ItemRepository       { return t.items }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeBookingRepo struct {
	byID      map[uuid.UUID]*booking.Booking
	overlaps  int64
	occupying int64
	// confirmOK makes ConfirmHold apply the confirm when the hold would
	// genuinely pass the guard; false simulates a lost race.
	confirmOK bool
	updated   []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*booking.Booking), confirmOK: true}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.byID[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByOrderID(_ context.Context, orderID string) (*booking.Booking, error) {
	for _, b := range r.byID {
		if b.OrderID() == orderID {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.byID[b.ID()] = b
	r.updated = append(r.updated, b.ID())
	return nil
}

func (r *fakeBookingRepo) ConfirmHold(_ context.Context, id uuid.UUID, paymentID string, now time.Time) (bool, error) {
	b, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if !r.confirmOK || b.Status() != booking.StatusPending || b.HasLapsed(now) {
		return false, nil
	}
	if err := b.Confirm(paymentID, now); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeBookingRepo) CountOccupyingOverlaps(_ context.Context, _ uuid.UUID, _ booking.DateRange, _ time.Time, _ uuid.UUID) (int64, error) {
	return r.overlaps, nil
}

func (r *fakeBookingRepo) CountOccupying(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	return r.occupying, nil
}

type fakeItemRepo struct {
	byID      map[uuid.UUID]*catalog.Item
	deleteErr error
	deleted   []uuid.UUID
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: make(map[uuid.UUID]*catalog.Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *catalog.Item) error {
	r.byID[item.ID()] = item
	return nil
}

func (r *fakeItemRepo) Get(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return item, nil
}

func (r *fakeItemRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool, now time.Time) error {
	item, ok := r.byID[id]
	if !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	if item.IsAvailable() != available {
		item.ToggleAvailability(now)
	}
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeGateway struct {
	orderID    string
	orderErr   error
	verifyOK   bool
	refundID   string
	refundErr  error
	orders     []int64
	refunds    []string
	refundAmts []int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orderID: "order_test", verifyOK: true, refundID: "rfnd_test"}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount booking.Money, _ string) (*commands.PaymentOrder, error) {
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.orders = append(g.orders, amount.Paise())
	return &commands.PaymentOrder{ID: g.orderID, Amount: amount.Paise(), Currency: "INR"}, nil
}

func (g *fakeGateway) VerifySignature(_, _, _ string) bool {
	return g.verifyOK
}

func (g *fakeGateway) Refund(_ context.Context, paymentID string, amount booking.Money, _ string) (string, error) {
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.refunds = append(g.refunds, paymentID)
	g.refundAmts = append(g.refundAmts, amount.Paise())
	return g.refundID, nil
}

// fakeBookingQueries projects views straight off the booking repo so
// read-after-write assertions see command side effects.
type fakeBookingQueries struct {
	repo *fakeBookingRepo
}

func (q *fakeBookingQueries) GetByID(ctx context.Context, id uuid.UUID, _ queries.Actor) (*queries.BookingView, error) {
	return q.GetByIDSystem(ctx, id)
}

func (q *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := q.repo.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &queries.BookingView{
		ID:            b.ID(),
		Ref:           b.Ref(),
		ItemID:        b.ItemID(),
		RenterID:      b.RenterID(),
		StartDate:     b.DateRange().Start(),
		EndDate:       b.DateRange().End(),
		TotalPaise:    b.Total().Paise(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		OrderID:       b.OrderID(),
		PaymentID:     b.PaymentID(),
		ExpiresAt:     b.ExpiresAt(),
		CancelReason:  b.CancelReason(),
		RefundPaise:   b.Refund().Paise(),
	}, nil
}

func (q *fakeBookingQueries) ListByRenter(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *fakeBookingQueries) ListByOwner(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type fakeCatalogQueries struct {
	repo *fakeItemRepo
}

func (q *fakeCatalogQueries) GetItem(_ context.Context, id uuid.UUID) (*queries.ItemView, error) {
	item, ok := q.repo.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return &queries.ItemView{
		ID:             item.ID(),
		OwnerID:        item.OwnerID(),
		Kind:           item.Kind().String(),
		Name:           item.Name(),
		Category:       item.Category(),
		Features:       item.Features(),
		Location:       item.Location(),
		DailyRatePaise: item.DailyRatePaise(),
		Available:      item.IsAvailable(),
	}, nil
}

func (q *fakeCatalogQueries) ListItems(_ context.Context, _ queries.ItemFilter) ([]*queries.ItemView, error) {
	return nil, nil
}
