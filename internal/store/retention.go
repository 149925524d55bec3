package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRetention keeps visitor records for twelve months.
const DefaultRetention = 365 * 24 * time.Hour

// Retention purges old visitor records on a cron schedule.
type Retention struct {
	store  *Store
	keep   time.Duration
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRetention schedules a sweep on spec, e.g. "@daily".
func NewRetention(s *Store, keep time.Duration, spec string, logger *slog.Logger) (*Retention, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Retention{store: s, keep: keep, cron: cron.New(), logger: logger}
	if _, err := r.cron.AddFunc(spec, func() {
		if _, err := r.Sweep(context.Background()); err != nil {
			r.logger.Error("visitor retention sweep failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("retention schedule %q: %w", spec, err)
	}
	return r, nil
}

func (r *Retention) Start() { r.cron.Start() }

// Stop waits for a running sweep to finish or ctx to end.
func (r *Retention) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Sweep removes visitor records older than the retention window.
func (r *Retention) Sweep(ctx context.Context) (int64, error) {
	n, err := r.store.PurgeVisitorsBefore(ctx, r.store.now().Add(-r.keep))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("privacy cleanup removed visitor records", "removed", n, "older_than", r.keep)
	}
	return n, nil
}
