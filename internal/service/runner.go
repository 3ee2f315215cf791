package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twickenham/events/internal/enrichment"
	"github.com/twickenham/events/internal/errlog"
	"github.com/twickenham/events/internal/metrics"
	"github.com/twickenham/events/internal/status"
	"github.com/twickenham/events/internal/summary"
)

// ErrBusy is returned when a cycle is requested while another is running.
// Requests are rejected, never queued.
var ErrBusy = errors.New("a processing cycle is already running")

// Cycle trigger labels, carried into snapshots and metrics.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerCommand  = "command"
)

// Deps bundles the collaborators a Runner needs.
type Deps struct {
	Fetcher    Fetcher
	Publisher  Publisher
	Summarizer *summary.Summarizer
	Gateway    *enrichment.Gateway
	Errors     *errlog.Aggregator
	Composer   *status.Composer
	Rules      summary.Rules
	Collector  *metrics.CycleCollector
	Logger     *slog.Logger
	Interval   time.Duration
}

// Runner executes processing cycles, one at a time. Ticker ticks and manual
// commands both funnel through RunCycle; whichever arrives while a cycle is
// in flight is dropped with ErrBusy.
type Runner struct {
	deps    Deps
	running sync.Mutex
	now     func() time.Time
}

// NewRunner wires a runner from its collaborators.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Runner{deps: deps, now: time.Now}
}

// SetNowFunc overrides the clock, for tests.
func (r *Runner) SetNowFunc(now func() time.Time) { r.now = now }

// Start runs one startup cycle and then loops on the configured interval
// until the context is cancelled. Ticks that land during a manual cycle are
// skipped.
func (r *Runner) Start(ctx context.Context) {
	log := r.deps.Logger
	log.Info("starting service loop", "interval", r.deps.Interval)

	if err := r.RunCycle(ctx, TriggerStartup); err != nil {
		log.Error("startup cycle failed", "error", err)
	}

	ticker := time.NewTicker(r.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.RunCycle(ctx, TriggerInterval); errors.Is(err, ErrBusy) {
				log.Debug("tick skipped, cycle already running")
			}
		case <-ctx.Done():
			log.Info("service loop stopping due to context cancellation")
			return
		}
	}
}

// RunCycle executes one full cycle for the given trigger. It returns ErrBusy
// without doing any work when another cycle holds the lock.
func (r *Runner) RunCycle(ctx context.Context, trigger string) error {
	if !r.running.TryLock() {
		if r.deps.Collector != nil {
			r.deps.Collector.ObserveCycle(trigger, "busy", 0)
		}
		return ErrBusy
	}
	defer r.running.Unlock()

	log := r.deps.Logger
	start := r.now()

	raw, stats, err := r.deps.Fetcher.Fetch(ctx)
	if err != nil {
		r.deps.Errors.Record(fmt.Sprintf("fetch failed: %v", err))
		log.Error("fetch failed", "error", err)
	}

	days := r.deps.Summarizer.Summarize(raw)
	for _, enrichErr := range r.deps.Gateway.EnrichAll(ctx, days) {
		r.deps.Errors.Record(enrichErr.Error())
	}

	if next, nextDay := summary.FindNext(days, r.now(), r.deps.Rules); next != nil {
		log.Info("next event resolved",
			"fixture", next.DisplayName(),
			"date", nextDay.Date,
			"start_time", startOrUnknown(next.StartTime))
	} else {
		log.Info("no upcoming event")
	}

	snapshot := r.deps.Composer.Compose(status.Input{
		Days:    days,
		Errors:  r.deps.Errors.Entries(),
		Stats:   stats,
		Trigger: trigger,
	})

	outcome := "success"
	if err := r.deps.Publisher.Publish(ctx, days, snapshot); err != nil {
		outcome = "publish_error"
		log.Error("publish failed", "error", err)
	}

	duration := r.now().Sub(start)
	if r.deps.Collector != nil {
		r.deps.Collector.ObserveCycle(trigger, outcome, duration)
		r.deps.Collector.SetCounts(snapshot.EventCount, snapshot.ErrorCount)
	}

	log.Info("cycle complete",
		"trigger", trigger,
		"status", snapshot.Status,
		"events", snapshot.EventCount,
		"errors", snapshot.ErrorCount,
		"data_source", stats.DataSource,
		"duration", duration)
	return nil
}

func startOrUnknown(start *string) string {
	if start == nil {
		return "unknown"
	}
	return *start
}
