package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDateRange  = errors.New("return date must be after pickup date")
	ErrNegativeMoney     = errors.New("money cannot be negative")
	ErrIncompleteContact = errors.New("customer name, email and phone are required")
)

const dayDuration = 24 * time.Hour

// DateRange is a half-open [start, end) rental period. Bounds are
// normalized to UTC midnight so overlap checks work on whole days.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if !end.After(start) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: start, end: end}, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

// Days returns the billable day count, the ceiling of the duration in
// whole days. A valid range always yields at least 1.
func (r DateRange) Days() int {
	d := r.end.Sub(r.start)
	days := int(d / dayDuration)
	if d%dayDuration > 0 {
		days++
	}
	return days
}

// Overlaps uses half-open semantics: ranges that merely touch (one ends
// the day the other starts) do not conflict, allowing same-day turnover.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Money is an amount in paise (1/100 INR).
type Money struct {
	paise int64
}

func NewMoney(paise int64) Money {
	return Money{paise: paise}
}

func NewMoneyFromPaise(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{paise: paise}, nil
}

func (m Money) Paise() int64 {
	return m.paise
}

func (m Money) Rupees() float64 {
	return float64(m.paise) / 100.0
}

func (m Money) IsPositive() bool {
	return m.paise > 0
}

func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

func (m Money) Sub(other Money) Money {
	return Money{paise: m.paise - other.paise}
}

func (m Money) MulDays(days int) Money {
	return Money{paise: m.paise * int64(days)}
}

// Percent returns rate*m rounded to the nearest paisa.
func (m Money) Percent(rate float64) Money {
	return Money{paise: int64(float64(m.paise)*rate + 0.5)}
}

type CustomerDetails struct {
	Name  string
	Email string
	Phone string
}

func NewCustomerDetails(name, email, phone string) (CustomerDetails, error) {
	c := CustomerDetails{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return CustomerDetails{}, ErrIncompleteContact
	}
	return c, nil
}
