package api

import (
	"errors"
	"net/http"

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

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary Create listing
// @Description Create a new rental listing owned by the caller
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Listing"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	item, err := h.catalogCommands.CreateItem(c.Request.Context(), req.ToInput(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Listing validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItemView(item))
}

// @Summary Get listing
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID format", nil)
		return
	}

	item, err := h.catalogQueries.GetItem(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(item))
}

// @Summary List listings
// @Description List rental listings, optionally filtered by kind, category and location
// @Tags items
// @Produce json
// @Param kind query string false "car or gear"
// @Param category query string false "Category substring"
// @Param location query string false "Location substring"
// @Success 200 {array} resdto.ItemResponse
// @Router /items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var q reqdto.ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	items, err := h.catalogQueries.ListItems(c.Request.Context(), q.ToFilter())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ItemResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromItemView(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Toggle listing availability
// @Description Flip the owner-controlled availability flag
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id}/availability [patch]
func (h *CatalogHandler) ToggleAvailability(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID format", nil)
		return
	}

	item, err := h.catalogCommands.ToggleAvailability(c.Request.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrNotItemOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner can manage this listing", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(item))
}

// @Summary Delete listing
// @Description Remove a listing that has no active bookings
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("auth context missing"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item ID format", nil)
		return
	}

	err = h.catalogCommands.DeleteItem(c.Request.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrNotItemOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner can manage this listing", nil)
		case errors.Is(err, errs.ErrItemHasBookings):
			httperr.AbortWithError(c, http.StatusConflict, err, "Item has bookings and cannot be deleted", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
