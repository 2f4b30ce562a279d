package jobs

import (
	"context"
	"log/slog"
	"time"

	"geargo/internal/infra/db"
	"geargo/internal/pkg/clock"
	"geargo/internal/usecase/shared"
)

// JobRunner coordinates the background sweeps. The read-side occupying
// filter already hides lapsed holds, so the sweeps only reconcile stored
// state with what readers have been treating as true.
type JobRunner struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewJobRunner(uow shared.UnitOfWork, clock clock.Clock) *JobRunner {
	return &JobRunner{uow: uow, clock: clock}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	slog.Info("starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		slog.Error("job failed", "job", jobName, "error", err.Error())
		return
	}
	slog.Info("job completed", "job", jobName)
}

// ExpireStaleHolds marks pending holds whose deadline has passed as expired.
func (jr *JobRunner) ExpireStaleHolds() {
	jr.runWithRecovery("ExpireStaleHolds", func(ctx context.Context) error {
		return jr.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			const query = `
				UPDATE bookings
				SET status = 'expired', expires_at = NULL, updated_at = $1
				WHERE status = 'pending' AND expires_at <= $1`

			tag, err := dbtx.Exec(ctx, query, jr.clock.Now())
			if err != nil {
				return err
			}
			if n := tag.RowsAffected(); n > 0 {
				slog.Info("expired stale holds", "count", n)
			}
			return nil
		})
	})
}

// CompleteFinishedBookings closes out confirmed bookings whose rental
// period has ended.
func (jr *JobRunner) CompleteFinishedBookings() {
	jr.runWithRecovery("CompleteFinishedBookings", func(ctx context.Context) error {
		return jr.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			const query = `
				UPDATE bookings
				SET status = 'completed', updated_at = $1
				WHERE status = 'confirmed' AND end_date <= $1::date`

			tag, err := dbtx.Exec(ctx, query, jr.clock.Now())
			if err != nil {
				return err
			}
			if n := tag.RowsAffected(); n > 0 {
				slog.Info("completed finished bookings", "count", n)
			}
			return nil
		})
	})
}
