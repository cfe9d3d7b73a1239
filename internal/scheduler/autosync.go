package scheduler

import (
	"context"
	"time"

	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// AutoSyncer pushes the catalog to the sync repository in the
// background: periodically on a ticker, and immediately after a store
// save through the trigger channel. Every firing is gated on the
// user-controlled enabled flag, and outcomes are recorded in the
// shared status record by the push itself. Failures are never
// retried before the next firing.
type AutoSyncer struct {
	syncer   *gitsync.Syncer
	status   *gitsync.Status
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	trigger  <-chan struct{}
}

// NewAutoSyncer creates the background sync worker. trigger is the
// channel store saves notify on; it may be nil when save-triggered
// sync is not wanted.
func NewAutoSyncer(
	syncer *gitsync.Syncer,
	status *gitsync.Status,
	log logger.Logger,
	interval time.Duration,
	trigger <-chan struct{},
) *AutoSyncer {
	return &AutoSyncer{
		syncer:   syncer,
		status:   status,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		trigger:  trigger,
	}
}

// Start launches the worker goroutine. It never fails: sync outcomes
// are observable through the status record, not through Start.
func (as *AutoSyncer) Start(ctx context.Context) {
	ticker := time.NewTicker(as.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				as.sync(ctx, "interval")
			case <-as.trigger:
				as.sync(ctx, "save")
			case <-as.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the worker.
func (as *AutoSyncer) Stop() {
	close(as.stopCh)
}

func (as *AutoSyncer) sync(ctx context.Context, reason string) {
	if !as.status.Enabled() {
		return
	}
	as.logger.Debug("auto-sync triggered", logger.String("reason", reason))
	as.syncer.Push(ctx)
}
