package worker

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper evicts expired entries and reports how many it removed
type Sweeper interface {
	Sweep() int
}

// SweepWorker periodically evicts expired entries from an in-process cache
type SweepWorker struct {
	name     string
	target   Sweeper
	logger   *slog.Logger
	interval time.Duration
}

// NewSweepWorker creates a new sweep worker
func NewSweepWorker(name string, target Sweeper, logger *slog.Logger, interval time.Duration) *SweepWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SweepWorker{
		name:     name,
		target:   target,
		logger:   logger.With(slog.String("worker", name)),
		interval: interval,
	}
}

// Start runs the sweep loop until ctx is done. A non-positive interval
// disables the worker.
func (w *SweepWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("sweep worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("sweep worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweep worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SweepWorker) sweep() {
	if n := w.target.Sweep(); n > 0 {
		w.logger.Debug("expired entries evicted", slog.Int("evicted", n))
	}
}
