package booking

import (
	"errors"
	"time"

	"geargo/internal/domain/catalog"
)

var ErrNonPositiveTotal = errors.New("computed total must be positive")

// Profile holds the pricing-rule parameters that differ between item
// kinds: urgency threshold/rate, weekend rate and long-term discount tiers.
type Profile struct {
	UrgencyThresholdDays int
	UrgencyRate          float64
	WeekendRate          float64
	DiscountTiers        []DiscountTier
}

// DiscountTier grants Rate off the base amount for stays of at least
// MinDays. Tiers must be ordered by MinDays descending; only the highest
// qualifying tier applies.
type DiscountTier struct {
	MinDays int
	Rate    float64
}

var (
	VehicleProfile = Profile{
		UrgencyThresholdDays: 2,
		UrgencyRate:          0.15,
		WeekendRate:          0.10,
		DiscountTiers: []DiscountTier{
			{MinDays: 30, Rate: 0.20},
			{MinDays: 7, Rate: 0.10},
		},
	}

	GearProfile = Profile{
		UrgencyThresholdDays: 1,
		UrgencyRate:          0.10,
		WeekendRate:          0.05,
		DiscountTiers: []DiscountTier{
			{MinDays: 30, Rate: 0.25},
			{MinDays: 14, Rate: 0.15},
		},
	}
)

func ProfileFor(kind catalog.Kind) Profile {
	if kind == catalog.KindGear {
		return GearProfile
	}
	return VehicleProfile
}

// Breakdown is the derived pricing result; it is recomputed on demand
// and never persisted.
type Breakdown struct {
	Days             int
	Base             Money
	UrgencyFee       Money
	WeekendSurcharge Money
	LongTermDiscount Money
	Total            Money
}

// ComputePrice is a pure function over the requested range, the daily
// rate and an injected "today". All dates are treated as whole days.
func ComputePrice(dailyRate Money, pickup, ret, today time.Time, p Profile) (Breakdown, error) {
	r, err := NewDateRange(pickup, ret)
	if err != nil {
		return Breakdown{}, err
	}

	days := r.Days()
	base := dailyRate.MulDays(days)

	var urgencyFee Money
	if daysUntil(today, r.Start()) < p.UrgencyThresholdDays {
		urgencyFee = base.Percent(p.UrgencyRate)
	}

	var weekendSurcharge Money
	if includesWeekend(r.Start(), days) {
		weekendSurcharge = base.Percent(p.WeekendRate)
	}

	var discount Money
	for _, tier := range p.DiscountTiers {
		if days >= tier.MinDays {
			discount = base.Percent(tier.Rate)
			break
		}
	}

	total := base.Add(urgencyFee).Add(weekendSurcharge).Sub(discount)
	if !total.IsPositive() {
		return Breakdown{}, ErrNonPositiveTotal
	}

	return Breakdown{
		Days:             days,
		Base:             base,
		UrgencyFee:       urgencyFee,
		WeekendSurcharge: weekendSurcharge,
		LongTermDiscount: discount,
		Total:            total,
	}, nil
}

func daysUntil(today, pickup time.Time) int {
	return int(truncateToDay(pickup).Sub(truncateToDay(today)) / dayDuration)
}

// includesWeekend reports whether any rented day falls on Fri, Sat or Sun.
// It is an all-or-nothing flag, not a per-day surcharge.
func includesWeekend(start time.Time, days int) bool {
	for i := 0; i < days; i++ {
		switch start.Add(time.Duration(i) * dayDuration).Weekday() {
		case time.Friday, time.Saturday, time.Sunday:
			return true
		}
	}
	return false
}
