// Package scheduler periodically sweeps the retry store for due payment
// retries and hands them to a processor.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/subhub/subhub/internal/domain"
	"github.com/subhub/subhub/internal/retries"
)

const (
	defaultBatch = 100
	tickTimeout  = 30 * time.Second
)

// Processor handles a single due retry.
type Processor interface {
	ProcessRetry(ctx context.Context, rec *domain.RetryRecord) error
}

type Runner struct {
	cron   *cron.Cron
	store  retries.Store
	proc   Processor
	logger *zap.Logger
	batch  int
}

func NewRunner(store retries.Store, proc Processor, logger *zap.Logger) *Runner {
	return &Runner{
		cron:   cron.New(),
		store:  store,
		proc:   proc,
		logger: logger,
		batch:  defaultBatch,
	}
}

// Start registers the sweep on the given cron spec and launches the scheduler.
func (r *Runner) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("retry scheduler started", zap.String("cron", spec))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("retry scheduler stopped")
}

func (r *Runner) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()
	r.sweep(ctx, time.Now())
}

// sweep dispatches every due record once. A failing record is logged and left
// pending, so the next sweep picks it up again.
func (r *Runner) sweep(ctx context.Context, now time.Time) {
	recs, err := r.store.DueBefore(ctx, now, r.batch)
	if err != nil {
		r.logger.Error("due retry scan failed", zap.Error(err))
		return
	}
	if len(recs) == 0 {
		return
	}

	r.logger.Info("dispatching due retries", zap.Int("count", len(recs)))
	for _, rec := range recs {
		if err := r.proc.ProcessRetry(ctx, rec); err != nil {
			r.logger.Error("retry processing failed",
				zap.String("retry_id", rec.ID),
				zap.String("order_uid", rec.OrderID),
				zap.Error(err),
			)
		}
	}
}
