package queries

import (
	"context"
	"time"

	"geargo/internal/domain/booking"
	"geargo/internal/domain/catalog"
	"geargo/internal/infra"
	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/errs"

	"github.com/google/uuid"
)

type PricingQueries interface {
	// Quote computes a price preview for the item over [pickup, ret).
	Quote(ctx context.Context, itemID uuid.UUID, pickup, ret time.Time) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	items ItemReadStore
	clock clock.Clock
}

func NewPricingQueries(items ItemReadStore, clock clock.Clock) PricingQueries {
	return &pricingQueriesImpl{items: items, clock: clock}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, itemID uuid.UUID, pickup, ret time.Time) (*QuoteView, error) {
	item, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	profile := booking.ProfileFor(catalog.Kind(item.Kind))
	breakdown, err := booking.ComputePrice(booking.NewMoney(item.DailyRatePaise), pickup, ret, q.clock.Now(), profile)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	return &QuoteView{
		ItemID:                item.ID,
		Days:                  breakdown.Days,
		BasePaise:             breakdown.Base.Paise(),
		UrgencyFeePaise:       breakdown.UrgencyFee.Paise(),
		WeekendSurchargePaise: breakdown.WeekendSurcharge.Paise(),
		LongTermDiscountPaise: breakdown.LongTermDiscount.Paise(),
		TotalPaise:            breakdown.Total.Paise(),
	}, nil
}
