package queries

import (
	"time"

	"github.com/google/uuid"
)

type ItemView struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Kind           string
	Name           string
	Category       string
	Features       []string
	Location       string
	DailyRatePaise int64
	Available      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ItemFilter struct {
	Kind     *string
	Category *string
	Location *string
}

type BookingView struct {
	ID             uuid.UUID
	Ref            string
	ItemID         uuid.UUID
	ItemName       string
	ItemKind       string
	ItemOwnerID    uuid.UUID
	RenterID       uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	DailyRatePaise int64
	TotalPaise     int64
	Status         string
	PaymentStatus  string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	OrderID        string
	PaymentID      *string
	ExpiresAt      *time.Time
	CancelReason   *string
	RefundPaise    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BookingListItem struct {
	ID         uuid.UUID
	Ref        string
	ItemID     uuid.UUID
	ItemName   string
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	TotalPaise int64
	CreatedAt  time.Time
}

// BookedRange is a calendar entry for availability display.
type BookedRange struct {
	Start  time.Time
	End    time.Time
	Status string
}

type QuoteView struct {
	ItemID                uuid.UUID
	Days                  int
	BasePaise             int64
	UrgencyFeePaise       int64
	WeekendSurchargePaise int64
	LongTermDiscountPaise int64
	TotalPaise            int64
}
