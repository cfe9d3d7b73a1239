package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
)

// countingRunner is an always-succeeding git stub safe for use from
// the worker goroutine.
type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRunner) Run(_ context.Context, _ ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return "", nil
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newAutoSyncer(t *testing.T, interval time.Duration, trigger <-chan struct{}) (*AutoSyncer, *gitsync.Status, *countingRunner) {
	t.Helper()
	dir := t.TempDir()
	log := logger.New("error", false)
	catalog := store.NewCatalog(dir, log, nil)
	comments := store.NewComments(dir, log, nil)
	links := store.NewLinks(dir, log, nil)
	status := gitsync.NewStatus()
	runner := &countingRunner{}
	syncer := gitsync.NewSyncer(runner, dir,
		exchange.NewExporter(catalog, comments, links),
		exchange.NewImporter(catalog, comments, links, log),
		status, log)
	return NewAutoSyncer(syncer, status, log, interval, trigger), status, runner
}

func waitForState(t *testing.T, status *gitsync.Status, want gitsync.State) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if status.Snapshot().State == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("status never reached %q, last snapshot %+v", want, status.Snapshot())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAutoSyncerSaveTrigger(t *testing.T) {
	trigger := make(chan struct{}, 1)
	syncer, status, runner := newAutoSyncer(t, time.Hour, trigger)
	status.SetEnabled(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncer.Start(ctx)
	defer syncer.Stop()

	trigger <- struct{}{}

	waitForState(t, status, gitsync.StateSuccess)
	if runner.count() == 0 {
		t.Error("no git command ran after a save trigger")
	}
}

func TestAutoSyncerInterval(t *testing.T) {
	syncer, status, _ := newAutoSyncer(t, 20*time.Millisecond, nil)
	status.SetEnabled(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncer.Start(ctx)
	defer syncer.Stop()

	waitForState(t, status, gitsync.StateSuccess)
}

func TestAutoSyncerDisabled(t *testing.T) {
	trigger := make(chan struct{}, 1)
	syncer, status, runner := newAutoSyncer(t, time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncer.Start(ctx)
	defer syncer.Stop()

	trigger <- struct{}{}
	time.Sleep(50 * time.Millisecond)

	if got := runner.count(); got != 0 {
		t.Errorf("%d git commands ran while auto-sync is disabled, want 0", got)
	}
	if snap := status.Snapshot(); snap.State != gitsync.StateIdle {
		t.Errorf("status = %+v, want untouched idle record", snap)
	}
}

func TestAutoSyncerStop(t *testing.T) {
	trigger := make(chan struct{}, 1)
	syncer, status, runner := newAutoSyncer(t, time.Hour, trigger)
	status.SetEnabled(true)

	syncer.Start(context.Background())
	syncer.Stop()
	time.Sleep(50 * time.Millisecond)

	trigger <- struct{}{}
	time.Sleep(50 * time.Millisecond)

	if got := runner.count(); got != 0 {
		t.Errorf("%d git commands ran after Stop, want 0", got)
	}
}
