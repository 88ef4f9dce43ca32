package exec

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/server/api/middleware"
)

// Executor wraps the postfix control CLIs. Every invocation is bounded by
// the executor's timeout, so a hung MTA cannot block a caller indefinitely.
type Executor interface {
	PostfixStatus(ctx context.Context) (Result, error)
	PostfixStart(ctx context.Context) (Result, error)
	PostfixReload(ctx context.Context) (Result, error)
	PostfixCheck(ctx context.Context) (Result, error)
	ListQueue(ctx context.Context) (Result, error)
}

// Result is the outcome of a completed CLI invocation. A non-zero exit
// code is a valid result (e.g. `postfix status` when the MTA is down), not
// an error; errors are reserved for invocations that could not complete.
type Result struct {
	Output   string
	ExitCode int
}

// Success reports whether the command exited 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

type OSExecutor struct {
	Timeout time.Duration
}

func GetLogger(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(middleware.LoggerKey).(*log.Logger)
	if !ok {
		// Only a programming bug should cause this scenario, so exit the program
		// if it occurs.
		log.Fatal("Unable to retrieve logger from context")
	}
	return *logger
}

func (e OSExecutor) run(ctx context.Context, message string, name string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	logger := GetLogger(ctx).With("command", name+" "+strings.Join(args, " "))

	outputBytes, err := exec.CommandContext(ctx, name, args...).Output()
	result := Result{Output: string(outputBytes)}
	logger = logger.With("stdout", result.Output)

	if err != nil {
		if ctx.Err() != nil {
			logger.With("error", ctx.Err().Error()).Error(message)
			return result, errors.Wrapf(ctx.Err(), "%s %s timed out", name, strings.Join(args, " "))
		}
		if ee, ok := err.(*exec.ExitError); ok {
			// A non-zero exit is an answer, not a failure to ask the question.
			result.ExitCode = ee.ProcessState.ExitCode()
			logger.With("stderr", string(ee.Stderr)).With("exit_code", result.ExitCode).Info(message)
			return result, nil
		}
		logger.With("error", err.Error()).Error(message)
		return result, errors.Wrapf(err, "failed to run %s", name)
	}

	logger.With("exit_code", 0).Info(message)
	return result, nil
}

func (e OSExecutor) PostfixStatus(ctx context.Context) (Result, error) {
	return e.run(ctx, "Checked postfix status", "postfix", "status")
}

func (e OSExecutor) PostfixStart(ctx context.Context) (Result, error) {
	return e.run(ctx, "Started postfix", "postfix", "start")
}

func (e OSExecutor) PostfixReload(ctx context.Context) (Result, error) {
	return e.run(ctx, "Reloaded postfix", "postfix", "reload")
}

func (e OSExecutor) PostfixCheck(ctx context.Context) (Result, error) {
	return e.run(ctx, "Checked postfix configuration", "postfix", "check")
}

func (e OSExecutor) ListQueue(ctx context.Context) (Result, error) {
	return e.run(ctx, "Listed mail queue", "postqueue", "-p")
}
