package queries

import (
	"context"

	"geargo/internal/infra"
	"geargo/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
}

type CatalogQueries interface {
	GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
}

type catalogQueriesImpl struct {
	items ItemReadStore
}

func NewCatalogQueries(items ItemReadStore) CatalogQueries {
	return &catalogQueriesImpl{items: items}
}

func (q *catalogQueriesImpl) GetItem(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	item, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}
	return item, nil
}

func (q *catalogQueriesImpl) ListItems(ctx context.Context, filter ItemFilter) ([]*ItemView, error) {
	items, err := q.items.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	return items, nil
}
