package postfix

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/server/api/middleware"
)

func newFakeLogger() (log.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	writer := io.MultiWriter(&buffer, os.Stdout)
	return log.NewLogger(writer), &buffer
}

// loggerContext builds a context carrying a logger, as the exec package
// expects one to be present.
func loggerContext(t *testing.T) context.Context {
	logger, _ := newFakeLogger()
	return context.WithValue(context.Background(), middleware.LoggerKey, &logger)
}
