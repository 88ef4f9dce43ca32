package postfix

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/relayops/mailwatch/pkg/exec"
	"github.com/relayops/mailwatch/pkg/models"
)

// configFiles are the postfix files whose presence the /status route
// reports on.
var configFiles = []string{"main.cf", "master.cf", "clients.cidr", "sasl_passwd.lmdb"}

// statFiles are the subset of files whose size and mtime are included in
// the verbose metrics.
var statFiles = []string{"main.cf", "master.cf", "clients.cidr"}

// Checker answers health and status questions about the local postfix
// installation.
type Checker interface {
	Health(ctx context.Context) models.HealthStatus
	Metrics(ctx context.Context) models.Metrics
	Files() map[string]bool
}

type HealthChecker struct {
	Executor  exec.Executor
	ConfigDir string
}

// Health runs the three CLI checks and aggregates them. A CLI invocation
// that cannot complete fails that check only; the snapshot is always
// returned.
func (c HealthChecker) Health(ctx context.Context) models.HealthStatus {
	var status models.HealthStatus

	if result, err := c.Executor.PostfixStatus(ctx); err == nil {
		status.PostfixRunning = result.Success()
	}

	if result, err := c.Executor.ListQueue(ctx); err == nil && result.Success() {
		status.QueueHealthy = QueueHealthy(result.Output)
	}

	if result, err := c.Executor.PostfixCheck(ctx); err == nil {
		status.ConfigValid = result.Success()
	}

	status.Healthy = status.PostfixRunning && status.QueueHealthy && status.ConfigValid
	return status
}

// Metrics gathers the verbose postfix information for the /status route:
// queue statistics, raw process state and configuration file metadata.
func (c HealthChecker) Metrics(ctx context.Context) models.Metrics {
	var metrics models.Metrics

	if result, err := c.Executor.ListQueue(ctx); err == nil && result.Success() {
		metrics.QueueStats = ParseQueue(result.Output)
	} else {
		metrics.QueueStats = models.QueueStats{Status: "error"}
	}

	if result, err := c.Executor.PostfixStatus(ctx); err == nil {
		metrics.ProcessInfo = models.ProcessInfo{
			StatusCommandResult: result.ExitCode,
			StatusOutput:        result.Output,
			Running:             result.Success(),
		}
	} else {
		metrics.ProcessInfo = models.ProcessInfo{StatusCommandResult: -1}
	}

	metrics.ConfigInfo = make(map[string]models.FileInfo, len(statFiles))
	for _, name := range statFiles {
		info, err := os.Stat(filepath.Join(c.ConfigDir, name))
		if err != nil {
			metrics.ConfigInfo[name] = models.FileInfo{Exists: false}
			continue
		}
		metrics.ConfigInfo[name] = models.FileInfo{
			Exists:   true,
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.RFC3339),
		}
	}

	return metrics
}

// Files reports which of the expected postfix files exist on disk.
func (c HealthChecker) Files() map[string]bool {
	files := make(map[string]bool, len(configFiles))
	for _, name := range configFiles {
		_, err := os.Stat(filepath.Join(c.ConfigDir, name))
		files[name] = err == nil
	}
	return files
}
