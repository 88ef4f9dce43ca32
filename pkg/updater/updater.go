package updater

import (
	"context"
	"fmt"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/models"
	"github.com/relayops/mailwatch/pkg/monitor"
	"github.com/relayops/mailwatch/pkg/server/api/middleware"
)

// ErrNoMatchingRanges indicates the feed parsed fine but contained no
// email egress entries. The whitelist is left untouched when this happens:
// an empty whitelist would block all relay clients.
var ErrNoMatchingRanges = errors.New("no email egress IP ranges in feed")

// tickInterval is the coarse resolution at which the two timers are
// evaluated.
const tickInterval = 30 * time.Second

const (
	metricIPCount       = "mailwatch.whitelist.ip_count"
	metricReloadSuccess = "mailwatch.postfix.reload_success"
)

// Reloader tells the MTA to pick up a rewritten whitelist.
type Reloader interface {
	Reload(ctx context.Context) bool
}

// Updater runs the reconciliation cycle: fetch the feed, diff it against
// the last seen content hash, rewrite the whitelist, reload postfix,
// persist state and notify the monitoring backend.
type Updater struct {
	logger       log.Logger
	sentryClient *raven.Client
	feed         FeedSource
	whitelist    Whitelist
	state        StateStore
	reloader     Reloader
	notifier     monitor.Notifier

	// reloadHealthy tracks the outcome of the most recent reload so the
	// metric loop has a value to report between reconciliations. It is not
	// persisted; a restarted updater assumes health until proven otherwise.
	reloadHealthy bool
}

func New(
	logger log.Logger,
	sentryClient *raven.Client,
	feed FeedSource,
	whitelist Whitelist,
	state StateStore,
	reloader Reloader,
	notifier monitor.Notifier,
) *Updater {
	return &Updater{
		logger:        logger,
		sentryClient:  sentryClient,
		feed:          feed,
		whitelist:     whitelist,
		state:         state,
		reloader:      reloader,
		notifier:      notifier,
		reloadHealthy: true,
	}
}

// Start runs the updater loop until the context is cancelled. Errors
// inside a cycle are logged and reported, never fatal; a failed cycle
// simply waits for the next scheduled tick.
func (u *Updater) Start(ctx context.Context, updateInterval time.Duration, metricInterval time.Duration) error {
	// We need to add a logger to the context, as the exec package depends on one
	// being present in order to log
	ctx = context.WithValue(ctx, middleware.LoggerKey, &u.logger)

	u.logger.
		With("update_interval", updateInterval.String()).
		With("metric_interval", metricInterval.String()).
		Info("Starting whitelist updater")

	u.notify("Whitelist updater started", "info")

	// First-time reconcile, so a fresh deployment converges immediately
	u.runReconcile(ctx)
	lastUpdate := time.Now()
	lastMetric := time.Now()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			// The update check takes priority; at most one trigger fires per tick.
			if now.Sub(lastUpdate) >= updateInterval {
				lastUpdate = now
				lastMetric = now
				u.runReconcile(ctx)
			} else if now.Sub(lastMetric) >= metricInterval {
				lastMetric = now
				u.EmitMetrics()
			}
		}
	}
}

func (u *Updater) runReconcile(ctx context.Context) {
	start := time.Now()
	u.logger.Info("Starting whitelist reconciliation")

	reloaded, err := u.ReconcileOnce(ctx)
	if err != nil {
		err = errors.Wrap(err, "failed to reconcile whitelist")
		// The worst case of a failed cycle is a stale whitelist until the next
		// interval, so record the error in logs and sentry rather than
		// bubbling up.
		u.logger.Error(err.Error())
		u.sentryClient.CaptureError(err, map[string]string{})
		return
	}

	u.logger.
		With("duration", time.Since(start).Seconds()).
		With("reloaded", reloaded).
		Info("Finished whitelist reconciliation")
}

// ReconcileOnce performs a single fetch → diff → write → reload → persist
// pass. The returned boolean reflects the reload outcome; the whitelist and
// state are updated even when the reload fails, since the file itself was
// successfully rewritten.
func (u *Updater) ReconcileOnce(ctx context.Context) (bool, error) {
	state, err := u.state.Load()
	if err != nil {
		// Change detection degrades to "always changed", which is safe.
		u.logger.With("error", err.Error()).Error("Could not load state, proceeding without change detection")
		state = models.State{}
	}

	doc, err := u.feed.FetchChanged(ctx, state.ContentHash)
	if err != nil {
		return false, err
	}
	if doc == nil {
		u.logger.Info("No changes detected")
		u.emitMetrics(state)
		return true, nil
	}

	ranges := ExtractEmailRanges(doc)
	if len(ranges) == 0 {
		u.notify("No email egress IP ranges found in feed", "error")
		return false, ErrNoMatchingRanges
	}

	now := time.Now()
	if err := u.whitelist.Write(ranges, now); err != nil {
		u.notify("Failed to update whitelist file", "error")
		return false, err
	}
	u.logger.With("ip_count", len(ranges)).Info("Updated whitelist file")

	reloaded := u.reloader.Reload(ctx)
	u.reloadHealthy = reloaded

	state = models.State{
		ContentHash: doc.ContentHash,
		LastUpdate:  now,
		IPCount:     len(ranges),
	}
	if err := u.state.Save(state); err != nil {
		u.logger.With("error", err.Error()).Error("Could not save state")
	}

	if reloaded {
		u.notify(fmt.Sprintf("Updated email whitelist with %d IP ranges and reloaded postfix", len(ranges)), "success")
	} else {
		u.notify(fmt.Sprintf("Updated email whitelist with %d IP ranges but failed to reload postfix", len(ranges)), "warning")
	}
	u.emitMetrics(state)

	return reloaded, nil
}

// EmitMetrics reports the persisted state on the metric interval, so
// dashboards have continuous data points between reconciliations.
func (u *Updater) EmitMetrics() {
	state, err := u.state.Load()
	if err != nil {
		u.logger.With("error", err.Error()).Error("Could not load state for metrics")
		return
	}
	u.emitMetrics(state)
}

func (u *Updater) emitMetrics(state models.State) {
	now := time.Now().Unix()

	reloadValue := 0.0
	if u.reloadHealthy {
		reloadValue = 1.0
	}

	u.gauge(monitor.Metric{Name: metricIPCount, Value: float64(state.IPCount), Timestamp: now})
	u.gauge(monitor.Metric{Name: metricReloadSuccess, Value: reloadValue, Timestamp: now})
}

// notify sends an event to the monitoring backend. A failed notification
// never affects the reconciliation outcome.
func (u *Updater) notify(text string, severity string) {
	event := monitor.Event{
		Title:    "Postfix whitelist update",
		Text:     text,
		Severity: severity,
		Tags:     []string{"service:mailwatch"},
	}
	if err := u.notifier.SendEvent(event); err != nil {
		u.logger.With("error", err.Error()).With("severity", severity).Error("Could not send notification")
	}
}

func (u *Updater) gauge(metric monitor.Metric) {
	metric.Tags = []string{"service:mailwatch"}
	if err := u.notifier.SendMetric(metric); err != nil {
		u.logger.With("error", err.Error()).With("metric", metric.Name).Error("Could not send metric")
	}
}
