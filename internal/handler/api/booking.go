package api

import (
	"errors"
	"net/http"
	"time"

	"geargo/internal/domain/booking"
	reqdto "geargo/internal/handler/dto/request"
	resdto "geargo/internal/handler/dto/response"
	"geargo/internal/handler/httperr"
	"geargo/internal/handler/middleware"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	availability    queries.AvailabilityQueries
	pricing         queries.PricingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	availability queries.AvailabilityQueries,
	pricing queries.PricingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		availability:    availability,
		pricing:         pricing,
	}
}

// @Summary Check availability
// @Description Check whether an item can be booked for [from, to)
// @Tags availability
// @Produce json
// @Param id path string true "Item ID"
// @Param from query string true "Pickup date (yyyy-mm-dd)"
// @Param to query string true "Return date (yyyy-mm-dd)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id}/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	itemID, from, to, ok := h.bindRangeQuery(c)
	if !ok {
		return
	}

	available, err := h.availability.IsAvailable(c.Request.Context(), itemID, from, to)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		ItemID:    itemID,
		Available: available,
	})
}

// @Summary Booking calendar
// @Description List booked date ranges of an item intersecting [from, to)
// @Tags availability
// @Produce json
// @Param id path string true "Item ID"
// @Param from query string true "Window start (yyyy-mm-dd)"
// @Param to query string true "Window end (yyyy-mm-dd)"
// @Success 200 {array} resdto.BookedRangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id}/calendar [get]
func (h *BookingHandler) Calendar(c *gin.Context) {
	itemID, from, to, ok := h.bindRangeQuery(c)
	if !ok {
		return
	}

	ranges, err := h.availability.Calendar(c.Request.Context(), itemID, from, to)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	response := make([]*resdto.BookedRangeResponse, len(ranges))
	for i, r := range ranges {
		response[i] = resdto.FromBookedRange(r)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Price quote
// @Description Compute the price breakdown for renting an item over [from, to)
// @Tags pricing
// @Produce json
// @Param id path string true "Item ID"
// @Param from query string true "Pickup date (yyyy-mm-dd)"
// @Param to query string true "Return date (yyyy-mm-dd)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id}/quote [get]
func (h *BookingHandler) Quote(c *gin.Context) {
	itemID, from, to, ok := h.bindRangeQuery(c)
	if !ok {
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), itemID, from, to)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(quote))
}

// @Summary Create booking hold
// @Description Place a time-boxed hold on an item and open a payment order
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateHold(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	input, err := req.ToInput(renterID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected yyyy-mm-dd", nil)
		return
	}

	result, err := h.bookingCommands.CreateHold(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrItemUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Item is not available for booking", nil)
		case errors.Is(err, errs.ErrSelfBooking):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cannot book your own listing", nil)
		case errors.Is(err, errs.ErrBookingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Item is already booked for these dates", nil)
		case errors.Is(err, errs.ErrInvalidDateRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Return date must be after pickup date", nil)
		case errors.Is(err, errs.ErrIncompleteContact):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Customer name, email and phone are required", nil)
		case errors.Is(err, errs.ErrInvalidAmount), errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking validation failed", nil)
		case errors.Is(err, errs.ErrPaymentGateway):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider is unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldResult(result))
}

// @Summary Confirm booking
// @Description Verify the payment signature and confirm the hold
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmBookingRequest true "Payment proof"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.Confirm(c.Request.Context(), req.ToInput(id))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPaymentVerification):
			httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment signature verification failed", nil)
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrHoldExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Hold has expired", nil)
		case errors.Is(err, errs.ErrAlreadyProcessed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking has already been processed", nil)
		case errors.Is(err, errs.ErrBookingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Item was booked by someone else", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a pending or confirmed booking; paid bookings are refunded
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.Cancel(c.Request.Context(), id, req.Reason, actor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrAlreadyProcessed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking cannot be cancelled in its current state", nil)
		case errors.Is(err, errs.ErrPaymentGateway):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Refund could not be initiated", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Change booking status
// @Description Owner or admin applies a lifecycle transition
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.ChangeStatus(c.Request.Context(), id, booking.Status(req.Status), actor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrNotItemOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the item owner can change booking status", nil)
		case errors.Is(err, errs.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List bookings placed by the caller
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	items, err := h.bookingQueries.ListByRenter(c.Request.Context(), renterID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	h.writeBookingList(c, items)
}

// @Summary List bookings on my listings
// @Description List bookings placed against the caller's listings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings/owned [get]
func (h *BookingHandler) ListOwnedBookings(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	items, err := h.bookingQueries.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	h.writeBookingList(c, items)
}

func (h *BookingHandler) writeBookingList(c *gin.Context, items []*queries.BookingListItem) {
	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) bindRangeQuery(c *gin.Context) (uuid.UUID, time.Time, time.Time, bool) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID format", nil)
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	var q reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Query params from and to are required", nil)
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	from, to, err := q.Parse()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected yyyy-mm-dd", nil)
		return uuid.Nil, time.Time{}, time.Time{}, false
	}

	return itemID, from, to, true
}

func (h *BookingHandler) writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
	case errors.Is(err, errs.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Return date must be after pickup date", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
