package response

import (
	"time"

	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	Ref            string     `json:"ref"`
	ItemID         uuid.UUID  `json:"itemId"`
	ItemName       string     `json:"itemName"`
	ItemKind       string     `json:"itemKind"`
	RenterID       uuid.UUID  `json:"renterId"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	DailyRatePaise int64      `json:"dailyRatePaise"`
	TotalPaise     int64      `json:"totalPaise"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"paymentStatus"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	CustomerPhone  string     `json:"customerPhone"`
	OrderID        string     `json:"orderId"`
	PaymentID      *string    `json:"paymentId,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CancelReason   *string    `json:"cancelReason,omitempty"`
	RefundPaise    int64      `json:"refundPaise"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	Ref        string    `json:"ref"`
	ItemID     uuid.UUID `json:"itemId"`
	ItemName   string    `json:"itemName"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
	TotalPaise int64     `json:"totalPaise"`
	CreatedAt  time.Time `json:"createdAt"`
}

type HoldResponse struct {
	BookingID  uuid.UUID `json:"bookingId"`
	Ref        string    `json:"ref"`
	OrderID    string    `json:"orderId"`
	Currency   string    `json:"currency"`
	TotalPaise int64     `json:"totalPaise"`
	Days       int       `json:"days"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type QuoteResponse struct {
	ItemID                uuid.UUID `json:"itemId"`
	Days                  int       `json:"days"`
	BasePaise             int64     `json:"basePaise"`
	UrgencyFeePaise       int64     `json:"urgencyFeePaise"`
	WeekendSurchargePaise int64     `json:"weekendSurchargePaise"`
	LongTermDiscountPaise int64     `json:"longTermDiscountPaise"`
	TotalPaise            int64     `json:"totalPaise"`
}

type AvailabilityResponse struct {
	ItemID    uuid.UUID `json:"itemId"`
	Available bool      `json:"available"`
}

type BookedRangeResponse struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             rm.ID,
		Ref:            rm.Ref,
		ItemID:         rm.ItemID,
		ItemName:       rm.ItemName,
		ItemKind:       rm.ItemKind,
		RenterID:       rm.RenterID,
		StartDate:      rm.StartDate,
		EndDate:        rm.EndDate,
		DailyRatePaise: rm.DailyRatePaise,
		TotalPaise:     rm.TotalPaise,
		Status:         rm.Status,
		PaymentStatus:  rm.PaymentStatus,
		CustomerName:   rm.CustomerName,
		CustomerEmail:  rm.CustomerEmail,
		CustomerPhone:  rm.CustomerPhone,
		OrderID:        rm.OrderID,
		PaymentID:      rm.PaymentID,
		ExpiresAt:      rm.ExpiresAt,
		CancelReason:   rm.CancelReason,
		RefundPaise:    rm.RefundPaise,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		Ref:        rm.Ref,
		ItemID:     rm.ItemID,
		ItemName:   rm.ItemName,
		StartDate:  rm.StartDate,
		EndDate:    rm.EndDate,
		Status:     rm.Status,
		TotalPaise: rm.TotalPaise,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromHoldResult(hr *commands.HoldResult) *HoldResponse {
	return &HoldResponse{
		BookingID:  hr.BookingID,
		Ref:        hr.Ref,
		OrderID:    hr.OrderID,
		Currency:   hr.Currency,
		TotalPaise: hr.TotalPaise,
		Days:       hr.Days,
		ExpiresAt:  hr.ExpiresAt,
	}
}

func FromQuoteView(rm *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		ItemID:                rm.ItemID,
		Days:                  rm.Days,
		BasePaise:             rm.BasePaise,
		UrgencyFeePaise:       rm.UrgencyFeePaise,
		WeekendSurchargePaise: rm.WeekendSurchargePaise,
		LongTermDiscountPaise: rm.LongTermDiscountPaise,
		TotalPaise:            rm.TotalPaise,
	}
}

func FromBookedRange(rm *queries.BookedRange) *BookedRangeResponse {
	return &BookedRangeResponse{
		Start:  rm.Start,
		End:    rm.End,
		Status: rm.Status,
	}
}
