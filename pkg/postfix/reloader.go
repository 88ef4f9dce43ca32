package postfix

import (
	"context"

	"github.com/relayops/mailwatch/pkg/exec"
)

// Reloader tells postfix to pick up a rewritten whitelist. It never raises:
// the caller gets a boolean and decides how loudly to complain.
type Reloader struct {
	Executor exec.Executor
}

// Reload checks whether postfix is running, starts it if not, then issues a
// reload. Returns true only if the reload itself exited 0.
func (r Reloader) Reload(ctx context.Context) bool {
	logger := exec.GetLogger(ctx)

	status, err := r.Executor.PostfixStatus(ctx)
	if err != nil {
		logger.With("error", err.Error()).Error("Could not determine postfix status")
		return false
	}

	if !status.Success() {
		logger.Info("Postfix is not running, starting it")
		start, err := r.Executor.PostfixStart(ctx)
		if err != nil {
			logger.With("error", err.Error()).Error("Could not start postfix")
			return false
		}
		if !start.Success() {
			logger.With("exit_code", start.ExitCode).Error("Failed to start postfix")
		}
	}

	reload, err := r.Executor.PostfixReload(ctx)
	if err != nil {
		logger.With("error", err.Error()).Error("Could not reload postfix")
		return false
	}

	return reload.Success()
}
