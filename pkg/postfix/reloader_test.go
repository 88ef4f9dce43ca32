package postfix

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/relayops/mailwatch/pkg/exec"
)

func TestReloadWhenRunning(t *testing.T) {
	started := false
	executor := exec.FakeExecutor{
		MockPostfixStatus: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{}, nil
		},
		MockPostfixStart: func(ctx context.Context) (exec.Result, error) {
			started = true
			return exec.Result{}, nil
		},
		MockPostfixReload: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{}, nil
		},
	}

	ok := Reloader{Executor: executor}.Reload(loggerContext(t))

	assert.True(t, ok)
	assert.False(t, started, "should not start postfix when it is already running")
}

func TestReloadStartsStoppedPostfix(t *testing.T) {
	started := false
	executor := exec.FakeExecutor{
		MockPostfixStatus: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{ExitCode: 1}, nil
		},
		MockPostfixStart: func(ctx context.Context) (exec.Result, error) {
			started = true
			return exec.Result{}, nil
		},
		MockPostfixReload: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{}, nil
		},
	}

	ok := Reloader{Executor: executor}.Reload(loggerContext(t))

	assert.True(t, ok)
	assert.True(t, started)
}

func TestReloadReturnsFalseOnReloadFailure(t *testing.T) {
	executor := exec.FakeExecutor{
		MockPostfixStatus: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{}, nil
		},
		MockPostfixReload: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{ExitCode: 1, Output: "postfix/postfix-script: fatal"}, nil
		},
	}

	ok := Reloader{Executor: executor}.Reload(loggerContext(t))

	assert.False(t, ok)
}

func TestReloadReturnsFalseWhenStatusCannotRun(t *testing.T) {
	executor := exec.FakeExecutor{
		MockPostfixStatus: func(ctx context.Context) (exec.Result, error) {
			return exec.Result{}, errors.New("executable file not found in $PATH")
		},
	}

	ok := Reloader{Executor: executor}.Reload(loggerContext(t))

	assert.False(t, ok)
}
