package commands

import (
	"context"

	"geargo/internal/domain/catalog"
	"geargo/internal/infra"
	"geargo/internal/pkg/clock"
	"geargo/internal/pkg/errs"
	"geargo/internal/usecase/queries"
	"geargo/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogCommands interface {
	CreateItem(ctx context.Context, in CreateItemInput) (*queries.ItemView, error)
	// ToggleAvailability flips the owner-controlled listing flag. Existing
	// bookings are untouched; the flag only gates new holds.
	ToggleAvailability(ctx context.Context, itemID uuid.UUID, actor queries.Actor) (*queries.ItemView, error)
	// DeleteItem removes a listing with no occupying bookings.
	DeleteItem(ctx context.Context, itemID uuid.UUID, actor queries.Actor) error
}

type catalogCommandsImpl struct {
	uow     shared.UnitOfWork
	catalog queries.CatalogQueries
	clock   clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, catalogQueries queries.CatalogQueries, clock clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{
		uow:     uow,
		catalog: catalogQueries,
		clock:   clock,
	}
}

func (c *catalogCommandsImpl) CreateItem(ctx context.Context, in CreateItemInput) (*queries.ItemView, error) {
	kind := catalog.Kind(in.Kind)
	now := c.clock.Now()

	item, err := catalog.NewItem(in.OwnerID, kind, in.Name, in.Category, in.Features, in.Location, in.DailyRatePaise, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Items().Create(ctx, item)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.catalog.GetItem(ctx, item.ID())
}

func (c *catalogCommandsImpl) ToggleAvailability(ctx context.Context, itemID uuid.UUID, actor queries.Actor) (*queries.ItemView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Items().Get(ctx, itemID)
		if err != nil {
			return mapItemRepoErr(err)
		}
		if !item.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return errs.ErrNotItemOwner
		}

		now := c.clock.Now()
		item.ToggleAvailability(now)
		return tx.Items().SetAvailability(ctx, itemID, item.IsAvailable(), now)
	})
	if err != nil {
		return nil, err
	}

	return c.catalog.GetItem(ctx, itemID)
}

func (c *catalogCommandsImpl) DeleteItem(ctx context.Context, itemID uuid.UUID, actor queries.Actor) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Items().Get(ctx, itemID)
		if err != nil {
			return mapItemRepoErr(err)
		}
		if !item.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return errs.ErrNotItemOwner
		}

		now := c.clock.Now()
		occupying, err := tx.Bookings().CountOccupying(ctx, itemID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if occupying > 0 {
			return errs.ErrItemHasBookings
		}

		if err := tx.Items().Delete(ctx, itemID); err != nil {
			// Finished or cancelled bookings still reference the listing.
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.ErrItemHasBookings
			}
			return mapItemRepoErr(err)
		}
		return nil
	})
}
