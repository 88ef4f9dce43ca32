package updater

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	raven "github.com/getsentry/raven-go"
	rungroup "github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/exec"
	"github.com/relayops/mailwatch/pkg/monitor"
	"github.com/relayops/mailwatch/pkg/postfix"
)

// Run starts the whitelist updater daemon
// Any error returned is fatal
func Run(logger log.Logger) error {
	cfg, err := LoadConfig()
	if err != nil {
		return errors.Wrap(err, "Could not load configuration")
	}
	logger.Info("Configuration successfully loaded")

	logger = logger.
		With("feed_url", cfg.FeedURL).
		With("whitelist", cfg.WhitelistPath)

	// If the SentryDsn is not set then a no-op client will be returned
	sentryClient, err := raven.New(cfg.SentryDsn)
	if err != nil {
		return errors.Wrap(err, "Could not initialise sentry-raven client")
	}

	var notifier monitor.Notifier = monitor.NopNotifier{}
	if cfg.MonitorURL != "" {
		notifier = monitor.NewClient(cfg.MonitorURL, cfg.MonitorAPIKey)
	}

	executor := exec.OSExecutor{Timeout: time.Duration(cfg.CommandTimeout) * time.Second}

	u := New(
		logger,
		sentryClient,
		NewFeedClient(cfg.FeedURL, time.Duration(cfg.FetchTimeout)*time.Second),
		FileWhitelist{Path: cfg.WhitelistPath, SourceURL: cfg.FeedURL},
		FileStateStore{Path: cfg.StatePath},
		postfix.Reloader{Executor: executor},
		notifier,
	)

	var g rungroup.Group

	ctx, cancel := context.WithCancel(context.Background())
	g.Add(
		func() error {
			return u.Start(
				ctx,
				time.Duration(cfg.UpdateInterval)*time.Second,
				time.Duration(cfg.MetricInterval)*time.Second,
			)
		},
		func(error) { cancel() },
	)

	{
		cancelInterrupt := make(chan struct{})
		g.Add(
			func() error {
				c := make(chan os.Signal, 1)
				signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-c:
					logger.With("signal", sig.String()).Info("Shutting down")
					return nil
				case <-cancelInterrupt:
					return nil
				}
			},
			func(error) { close(cancelInterrupt) },
		)
	}

	if err := g.Run(); err != nil {
		return errors.Wrap(err, "updater terminated")
	}
	return nil
}
