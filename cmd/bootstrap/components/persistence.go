package components

import (
	"geargo/internal/handler/api"
	"geargo/internal/infra/db"
	"geargo/internal/infra/payment"
	"geargo/internal/infra/readstore"
	"geargo/internal/infra/uow"
	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"
	"geargo/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			payment.NewClient,
			fx.As(new(commands.PaymentGateway)),
			fx.As(new(api.WebhookVerifier)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
