//go:build unit

package queries_test

import (
	"context"
	"testing"

	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("computes a preview for a listed vehicle", func(t *testing.T) {
		item := newItemView(true)
		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{item.ID: item}}
		q := queries.NewPricingQueries(items, clock.NewMockClock(testNow))

		// Mon-Wed two weeks out: 2 days, no urgency, no weekend.
		quote, err := q.Quote(ctx, item.ID, testNow.AddDate(0, 0, 14), testNow.AddDate(0, 0, 16))
		require.NoError(t, err)

		assert.Equal(t, item.ID, quote.ItemID)
		assert.Equal(t, 2, quote.Days)
		assert.Equal(t, int64(200000), quote.BasePaise)
		assert.Equal(t, int64(0), quote.UrgencyFeePaise)
		assert.Equal(t, int64(0), quote.WeekendSurchargePaise)
		assert.Equal(t, int64(0), quote.LongTermDiscountPaise)
		assert.Equal(t, int64(200000), quote.TotalPaise)
	})

	t.Run("same-day pickup includes the urgency fee", func(t *testing.T) {
		item := newItemView(true)
		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{item.ID: item}}
		q := queries.NewPricingQueries(items, clock.NewMockClock(testNow))

		quote, err := q.Quote(ctx, item.ID, testNow, testNow.AddDate(0, 0, 2))
		require.NoError(t, err)

		assert.Equal(t, int64(30000), quote.UrgencyFeePaise)
		assert.Equal(t, int64(230000), quote.TotalPaise)
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		q := queries.NewPricingQueries(&fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{}}, clock.NewMockClock(testNow))

		_, err := q.Quote(ctx, uuid.New(), testNow.AddDate(0, 0, 14), testNow.AddDate(0, 0, 16))
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		item := newItemView(true)
		items := &fakeItemReadStore{items: map[uuid.UUID]*queries.ItemView{item.ID: item}}
		q := queries.NewPricingQueries(items, clock.NewMockClock(testNow))

		_, err := q.Quote(ctx, item.ID, testNow.AddDate(0, 0, 16), testNow.AddDate(0, 0, 14))
		assert.ErrorIs(t, err, errs.ErrInvalidDateRange)
	})
}
