package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	rungroup "github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/exec"
	"github.com/relayops/mailwatch/pkg/postfix"
	"github.com/relayops/mailwatch/pkg/server/api/chain"
	"github.com/relayops/mailwatch/pkg/server/api/middleware"
	"github.com/relayops/mailwatch/pkg/server/api/routes"
	"github.com/relayops/mailwatch/pkg/server/config"
)

// Run starts the health reporter server
// Any error returned is fatal
func Run(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "Could not load configuration")
	}
	logger.Info("Configuration successfully loaded")

	logger = log.With("environment", cfg.Environment)

	// If the SentryDsn is not set then a no-op client will be returned
	// This will report all errors raised while serving requests to Sentry
	sentryClient, err := raven.New(cfg.SentryDsn)
	if err != nil {
		return errors.Wrap(err, "Could not initialise sentry-raven client")
	}

	executor := exec.OSExecutor{Timeout: time.Duration(cfg.CommandTimeout) * time.Second}
	checker := postfix.HealthChecker{Executor: executor, ConfigDir: cfg.PostfixConfigDir}

	routeSet := routes.Health{Checker: checker, Port: cfg.HealthPort}

	router := mux.NewRouter()

	// Every request will be logged, and any error raised in serving the request
	// will also be logged and reported.
	defaultChain := chain.
		New(middleware.NewErrorHandler(logger)).
		Add(middleware.NewRequestLogger(logger)).
		Add(middleware.NewSentryReporter(sentryClient)).
		Add(middleware.DefaultErrorRenderer).
		Add(middleware.WithVersion).
		Add(middleware.AsJSON)

	router.Methods("GET").Path("/").HandlerFunc(
		defaultChain.Resolve(routeSet.Root),
	)

	router.Methods("GET").Path("/postfix").HandlerFunc(
		defaultChain.Resolve(routeSet.Check),
	)

	router.Methods("GET").Path("/status").HandlerFunc(
		defaultChain.Resolve(routeSet.Status),
	)

	router.NotFoundHandler = defaultChain.Resolve(routes.NotFound)

	var g rungroup.Group

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HealthPort),
		Handler: router,
	}

	g.Add(
		func() error {
			logger.With("port", cfg.HealthPort).Info("Starting health check server")
			return server.ListenAndServe()
		},
		func(error) { server.Shutdown(context.Background()) },
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
		return errors.Wrap(err, "could not start HTTP server")
	}
	return nil
}
