package repository

import (
	"context"
	"errors"
	"time"

	"geargo/internal/domain/catalog"
	"geargo/internal/infra"
	"geargo/internal/infra/db"
	"geargo/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(db db.DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	const query = `
		INSERT INTO items (
			id, owner_id, kind, name, category, features, location,
			daily_rate_paise, available, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(item.ID()),
		pgconv.UUIDToPgtype(item.OwnerID()),
		item.Kind().String(),
		item.Name(),
		item.Category(),
		item.Features(),
		item.Location(),
		item.DailyRatePaise(),
		item.IsAvailable(),
		pgconv.TimeToPgtype(item.CreatedAt()),
		pgconv.TimeToPgtype(item.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create item", err, classifyPgError(err))
	}
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	const query = `
		SELECT id, owner_id, kind, name, category, features, location,
		       daily_rate_paise, available, created_at, updated_at
		FROM items WHERE id = $1`

	var (
		itemID    pgtype.UUID
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

	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&itemID, &ownerID, &kind, &name, &category, &features, &location,
		&dailyRate, &available, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get item", err)
	}

	return catalog.ReconstructItem(
		uuid.UUID(itemID.Bytes),
		uuid.UUID(ownerID.Bytes),
		catalog.Kind(kind),
		name,
		category,
		features,
		location,
		dailyRate,
		available,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ItemRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool, now time.Time) error {
	const query = `UPDATE items SET available = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, pgconv.UUIDToPgtype(id), available, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to update item availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM items WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err, classifyPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func classifyPgError(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		return infra.KindDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return infra.KindForeignKeyViolated
	default:
		return infra.KindDBFailure
	}
}
