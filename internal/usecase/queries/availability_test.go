//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/infra"
	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

type fakeItemReadStore struct {
	items map[uuid.UUID]*queries.ItemView
}

func (s *fakeItemReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ItemView, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return item, nil
}

func (s *fakeItemReadStore) List(_ context.Context, _ queries.ItemFilter) ([]*queries.ItemView, error) {
	out := make([]*queries.ItemView, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeBookingReadStore struct {
	views  map[uuid.UUID]*queries.BookingView
	ranges []*queries.BookedRange
}

func (s *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, ok := s.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (s *fakeBookingReadStore) ListByRenter(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *fakeBookingReadStore) ListByOwner(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *fakeBookingReadStore) BookedRanges(_ context.Context, _ uuid.UUID, window booking.DateRange, _ time.Time) ([]*queries.BookedRange, error) {
	out := make([]*queries.BookedRange, 0)
	for _, r := range s.ranges {
		if r.Start.Before(window.End()) && r.End.After(window.Start()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func newItemView(available bool) *queries.ItemView {
	return &queries.ItemView{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Kind:           "car",
		Name:           "Swift Dzire",
		Location:       "Bengaluru",
		DailyRatePaise: 100000,
		Available:      available,
	}
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	start := testNow.AddDate(0, 0, 14)
	end := testNow.AddDate(0, 0, 16)

	newQueries := func(item *queries.ItemView, ranges []*queries.BookedRange) queries.AvailabilityQueries {
		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{}}
		if item != nil {
			items.items[item.ID] = item
		}
		return queries.NewAvailabilityQueries(items, &fakeBookingReadStore{ranges: ranges}, clock.NewMockClock(testNow))
	}

	t.Run("free range on a listed item", func(t *testing.T) {
		item := newItemView(true)
		q := newQueries(item, nil)

		ok, err := q.IsAvailable(ctx, item.ID, start, end)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("occupied range is unavailable", func(t *testing.T) {
		item := newItemView(true)
		q := newQueries(item, []*queries.BookedRange{
			{Start: start, End: end, Status: "confirmed"},
		})

		ok, err := q.IsAvailable(ctx, item.ID, start, end)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delisted item is unavailable without a booking check", func(t *testing.T) {
		item := newItemView(false)
		q := newQueries(item, nil)

		ok, err := q.IsAvailable(ctx, item.ID, start, end)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown item is an error, not unavailable", func(t *testing.T) {
		q := newQueries(nil, nil)

		_, err := q.IsAvailable(ctx, uuid.New(), start, end)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		item := newItemView(true)
		q := newQueries(item, nil)

		_, err := q.IsAvailable(ctx, item.ID, end, start)
		assert.ErrorIs(t, err, errs.ErrInvalidDateRange)
	})

	t.Run("invalid range on a delisted item is still rejected", func(t *testing.T) {
		item := newItemView(false)
		q := newQueries(item, nil)

		_, err := q.IsAvailable(ctx, item.ID, end, start)
		assert.ErrorIs(t, err, errs.ErrInvalidDateRange)
	})
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	windowStart := testNow
	windowEnd := testNow.AddDate(0, 1, 0)

	t.Run("returns intersecting booked ranges", func(t *testing.T) {
		item := newItemView(true)
		inside := &queries.BookedRange{Start: testNow.AddDate(0, 0, 3), End: testNow.AddDate(0, 0, 6), Status: "confirmed"}
		outside := &queries.BookedRange{Start: testNow.AddDate(0, 2, 0), End: testNow.AddDate(0, 2, 3), Status: "confirmed"}

		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{item.ID: item}}
		q := queries.NewAvailabilityQueries(items, &fakeBookingReadStore{ranges: []*queries.BookedRange{inside, outside}}, clock.NewMockClock(testNow))

		got, err := q.Calendar(ctx, item.ID, windowStart, windowEnd)
		require.NoError(t, err)

		want := []*queries.BookedRange{inside}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("calendar mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{}}
		q := queries.NewAvailabilityQueries(items, &fakeBookingReadStore{}, clock.NewMockClock(testNow))

		_, err := q.Calendar(ctx, uuid.New(), windowStart, windowEnd)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}
