package request

import (
	"time"

	"geargo/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DateRangeQuery carries the rental window for availability, calendar
// and quote lookups as yyyy-mm-dd query params.
type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func (q DateRangeQuery) Parse() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(dateLayout, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

type CreateHoldRequest struct {
	ItemID        uuid.UUID `json:"item_id" binding:"required"`
	PickupDate    string    `json:"pickup_date" binding:"required"`
	ReturnDate    string    `json:"return_date" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required,email"`
	CustomerPhone string    `json:"customer_phone" binding:"required"`
	// Optional client-side total for a price sanity check.
	ExpectedTotalPaise int64 `json:"expected_total_paise" binding:"omitempty,gt=0"`
}

func (r CreateHoldRequest) ToInput(renterID uuid.UUID) (commands.CreateHoldInput, error) {
	pickup, err := time.Parse(dateLayout, r.PickupDate)
	if err != nil {
		return commands.CreateHoldInput{}, err
	}
	ret, err := time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return commands.CreateHoldInput{}, err
	}

	return commands.CreateHoldInput{
		ItemID:             r.ItemID,
		RenterID:           renterID,
		PickupDate:         pickup,
		ReturnDate:         ret,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
		ExpectedTotalPaise: r.ExpectedTotalPaise,
	}, nil
}

type ConfirmBookingRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (r ConfirmBookingRequest) ToInput(bookingID uuid.UUID) commands.ConfirmInput {
	return commands.ConfirmInput{
		BookingID: bookingID,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed expired"`
}
