package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Catalog errors
	ErrItemNotFound    = errors.New("item not found")
	ErrItemUnavailable = errors.New("item is not available")
	ErrItemHasBookings = errors.New("item has active bookings")
	ErrNotItemOwner    = errors.New("actor does not own the item")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingConflict   = errors.New("booking date conflict")
	ErrSelfBooking       = errors.New("cannot book own listing")
	ErrAlreadyProcessed  = errors.New("booking already processed")
	ErrHoldExpired       = errors.New("hold expired")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Validation errors
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrIncompleteContact = errors.New("incomplete customer contact")
	ErrInvalidAmount     = errors.New("invalid booking amount")
	ErrDomainValidation  = errors.New("domain validation error")

	// Payment errors
	ErrPaymentVerification = errors.New("payment verification failed")
	ErrPaymentGateway      = errors.New("payment gateway error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
