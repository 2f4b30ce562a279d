package readstore

import (
	"context"
	"fmt"
	"strings"

	"geargo/internal/infra"
	"geargo/internal/infra/db"
	"geargo/internal/pkg/pgconv"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(db db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

const itemColumns = `
	id, owner_id, kind, name, category, features, location,
	daily_rate_paise, available, created_at, updated_at`

func (s *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	query := `SELECT` + itemColumns + ` FROM items WHERE id = $1`

	view, err := scanItemView(s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return view, nil
}

// List filters on exact kind and case-insensitive category/location
// substring, newest listings first.
func (s *ItemReadStore) List(ctx context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, "%"+*filter.Category+"%")
		conds = append(conds, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, "%"+*filter.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}

	query := `SELECT` + itemColumns + ` FROM items`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	var views []*queries.ItemView
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate items", err)
	}
	return views, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var (
		id        pgtype.UUID
		ownerID   pgtype.UUID
		kind      string
		name      string
		category  string
		features  []string
		location  string
		dailyRate int64
		available bool
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &ownerID, &kind, &name, &category, &features, &location,
		&dailyRate, &available, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &queries.ItemView{
		ID:             uuid.UUID(id.Bytes),
		OwnerID:        uuid.UUID(ownerID.Bytes),
		Kind:           kind,
		Name:           name,
		Category:       category,
		Features:       features,
		Location:       location,
		DailyRatePaise: dailyRate,
		Available:      available,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
