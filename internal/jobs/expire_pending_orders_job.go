package jobs

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirePendingOrdersJob sweeps orders stuck in the pending state past their
// payment window and cancels them. Runs once a minute; the window itself is
// configured, not hardcoded here.
type ExpirePendingOrdersJob struct {
	handler commands.ExpirePendingOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpirePendingOrdersJob creates the expiry sweep job with the given
// payment window.
func NewExpirePendingOrdersJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *ExpirePendingOrdersJob {
	return &ExpirePendingOrdersJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With("component", "expire_pending_orders_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *ExpirePendingOrdersJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpirePendingOrdersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expire pending orders job started (running every minute)", "ttl", j.ttl.String())
	return nil
}

// Stop stops the expiry sweep job.
func (j *ExpirePendingOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expire pending orders job stopped")
}
