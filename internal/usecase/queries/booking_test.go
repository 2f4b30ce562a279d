//go:build unit

package queries_test

import (
	"context"
	"testing"

	"geargo/internal/domain/user"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	renterID := uuid.New()
	ownerID := uuid.New()
	view := &queries.BookingView{
		ID:          uuid.New(),
		RenterID:    renterID,
		ItemOwnerID: ownerID,
		Status:      "confirmed",
	}
	q := queries.NewBookingQueries(&fakeBookingReadStore{views: map[uuid.UUID]*queries.BookingView{view.ID: view}})

	t.Run("renter sees their booking", func(t *testing.T) {
		got, err := q.GetByID(ctx, view.ID, queries.Actor{ID: renterID, Role: user.RoleRenter})
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("item owner sees the booking", func(t *testing.T) {
		_, err := q.GetByID(ctx, view.ID, queries.Actor{ID: ownerID, Role: user.RoleOwner})
		assert.NoError(t, err)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		_, err := q.GetByID(ctx, view.ID, queries.Actor{ID: uuid.New(), Role: user.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("existence is hidden from unrelated users", func(t *testing.T) {
		_, err := q.GetByID(ctx, view.ID, queries.Actor{ID: uuid.New(), Role: user.RoleRenter})
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("missing booking reports not found", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New(), queries.Actor{ID: renterID, Role: user.RoleRenter})
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
