//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"geargo/internal/domain/user"
	"geargo/internal/handler/api"
	"geargo/internal/handler/middleware"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubCatalogCommands struct {
	createItem func(ctx context.Context, in commands.CreateItemInput) (*queries.ItemView, error)
	toggle     func(ctx context.Context, itemID uuid.UUID, actor queries.Actor) (*queries.ItemView, error)
	deleteItem func(ctx context.Context, itemID uuid.UUID, actor queries.Actor) error
}

func (s *stubCatalogCommands) CreateItem(ctx context.Context, in commands.CreateItemInput) (*queries.ItemView, error) {
	return s.createItem(ctx, in)
}

func (s *stubCatalogCommands) ToggleAvailability(ctx context.Context, itemID uuid.UUID, actor queries.Actor) (*queries.ItemView, error) {
	return s.toggle(ctx, itemID, actor)
}

func (s *stubCatalogCommands) DeleteItem(ctx context.Context, itemID uuid.UUID, actor queries.Actor) error {
	return s.deleteItem(ctx, itemID, actor)
}

type stubCatalogQueries struct {
	getItem   func(ctx context.Context, id uuid.UUID) (*queries.ItemView, error)
	listItems func(ctx context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error)
}

func (s *stubCatalogQueries) GetItem(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	return s.getItem(ctx, id)
}

func (s *stubCatalogQueries) ListItems(ctx context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error) {
	return s.listItems(ctx, filter)
}

type CatalogHandlerSuite struct {
	suite.Suite
	commands *stubCatalogCommands
	queries  *stubCatalogQueries
	engine   *gin.Engine
	userID   uuid.UUID
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerSuite))
}

func (s *CatalogHandlerSuite) SetupTest() {
	s.commands = &stubCatalogCommands{}
	s.queries = &stubCatalogQueries{}
	s.userID = uuid.New()

	handler := api.NewCatalogHandler(s.commands, s.queries)

	s.engine = gin.New()
	s.engine.GET("/api/items", handler.ListItems)
	s.engine.GET("/api/items/:id", handler.GetItem)

	roleGuard := middleware.NewAuthMiddleware(nil).RequireRole(user.RoleOwner)
	authed := s.engine.Group("/api/items", authAs(s.userID, user.RoleOwner), roleGuard)
	authed.POST("", handler.CreateItem)
	authed.PATCH("/:id/availability", handler.ToggleAvailability)
	authed.DELETE("/:id", handler.DeleteItem)
}

func (s *CatalogHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *CatalogHandlerSuite) TestCreateItem() {
	validBody := map[string]any{
		"kind":             "car",
		"name":             "Swift Dzire",
		"category":         "sedan",
		"features":         []string{"ac", "gps"},
		"location":         "Bengaluru",
		"daily_rate_paise": 100000,
	}

	s.Run("creates the listing for the caller", func() {
		s.commands.createItem = func(_ context.Context, in commands.CreateItemInput) (*queries.ItemView, error) {
			s.Equal(s.userID, in.OwnerID)
			s.Equal("car", in.Kind)
			return &queries.ItemView{ID: uuid.New(), OwnerID: in.OwnerID, Kind: in.Kind, Name: in.Name, Available: true}, nil
		}

		w := s.do(http.MethodPost, "/api/items", validBody)

		s.Equal(http.StatusCreated, w.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("Swift Dzire", body["name"])
		s.Equal(true, body["available"])
	})

	s.Run("renter role cannot manage listings", func() {
		engine := gin.New()
		handler := api.NewCatalogHandler(s.commands, s.queries)
		roleGuard := middleware.NewAuthMiddleware(nil).RequireRole(user.RoleOwner)
		engine.POST("/api/items", authAs(uuid.New(), user.RoleRenter), roleGuard, handler.CreateItem)

		var buf bytes.Buffer
		s.Require().NoError(json.NewEncoder(&buf).Encode(validBody))
		req := httptest.NewRequest(http.MethodPost, "/api/items", &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("rejects an unknown kind at binding", func() {
		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["kind"] = "boat"

		w := s.do(http.MethodPost, "/api/items", body)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects a zero rate at binding", func() {
		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["daily_rate_paise"] = 0

		w := s.do(http.MethodPost, "/api/items", body)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("maps domain validation to 422", func() {
		s.commands.createItem = func(_ context.Context, _ commands.CreateItemInput) (*queries.ItemView, error) {
			return nil, errs.ErrDomainValidation
		}

		w := s.do(http.MethodPost, "/api/items", validBody)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *CatalogHandlerSuite) TestGetItem() {
	itemID := uuid.New()

	s.Run("returns the listing", func() {
		s.queries.getItem = func(_ context.Context, id uuid.UUID) (*queries.ItemView, error) {
			return &queries.ItemView{ID: id, Name: "Swift Dzire"}, nil
		}

		w := s.do(http.MethodGet, "/api/items/"+itemID.String(), nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("maps unknown item to 404", func() {
		s.queries.getItem = func(_ context.Context, _ uuid.UUID) (*queries.ItemView, error) {
			return nil, errs.ErrItemNotFound
		}

		w := s.do(http.MethodGet, "/api/items/"+itemID.String(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("rejects a malformed id", func() {
		w := s.do(http.MethodGet, "/api/items/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *CatalogHandlerSuite) TestListItems() {
	s.Run("passes filters through", func() {
		var gotFilter queries.ItemFilter
		s.queries.listItems = func(_ context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error) {
			gotFilter = filter
			return []*queries.ItemView{{ID: uuid.New(), Name: "Trek Tent"}}, nil
		}

		w := s.do(http.MethodGet, "/api/items?kind=gear&location=Manali", nil)

		s.Equal(http.StatusOK, w.Code)
		s.Require().NotNil(gotFilter.Kind)
		s.Equal("gear", *gotFilter.Kind)
		s.Require().NotNil(gotFilter.Location)
		s.Equal("Manali", *gotFilter.Location)
		s.Nil(gotFilter.Category)
	})

	s.Run("rejects an invalid kind filter", func() {
		w := s.do(http.MethodGet, "/api/items?kind=boat", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *CatalogHandlerSuite) TestToggleAvailability() {
	itemID := uuid.New()

	s.Run("flips the flag", func() {
		s.commands.toggle = func(_ context.Context, id uuid.UUID, actor queries.Actor) (*queries.ItemView, error) {
			s.Equal(itemID, id)
			s.Equal(s.userID, actor.ID)
			return &queries.ItemView{ID: id, Available: false}, nil
		}

		w := s.do(http.MethodPatch, "/api/items/"+itemID.String()+"/availability", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("maps non-owner to 403", func() {
		s.commands.toggle = func(_ context.Context, _ uuid.UUID, _ queries.Actor) (*queries.ItemView, error) {
			return nil, errs.ErrNotItemOwner
		}

		w := s.do(http.MethodPatch, "/api/items/"+itemID.String()+"/availability", nil)
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *CatalogHandlerSuite) TestDeleteItem() {
	itemID := uuid.New()

	s.Run("deletes and returns no content", func() {
		s.commands.deleteItem = func(_ context.Context, id uuid.UUID, _ queries.Actor) error {
			s.Equal(itemID, id)
			return nil
		}

		w := s.do(http.MethodDelete, "/api/items/"+itemID.String(), nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("maps live bookings to 409", func() {
		s.commands.deleteItem = func(_ context.Context, _ uuid.UUID, _ queries.Actor) error {
			return errs.ErrItemHasBookings
		}

		w := s.do(http.MethodDelete, "/api/items/"+itemID.String(), nil)
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("maps unknown item to 404", func() {
		s.commands.deleteItem = func(_ context.Context, _ uuid.UUID, _ queries.Actor) error {
			return errs.ErrItemNotFound
		}

		w := s.do(http.MethodDelete, "/api/items/"+itemID.String(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}
