package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/common/log"

	"github.com/relayops/mailwatch/pkg/models"
	"github.com/relayops/mailwatch/pkg/server/api/middleware"
)

func NewFakeLogger() (log.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	writer := io.MultiWriter(&buffer, os.Stdout)
	return log.NewLogger(writer), &buffer
}

// FakeChecker implements postfix.Checker with injectable behaviour.
type FakeChecker struct {
	MockHealth  func(ctx context.Context) models.HealthStatus
	MockMetrics func(ctx context.Context) models.Metrics
	MockFiles   func() map[string]bool
}

func (c FakeChecker) Health(ctx context.Context) models.HealthStatus {
	return c.MockHealth(ctx)
}

func (c FakeChecker) Metrics(ctx context.Context) models.Metrics {
	return c.MockMetrics(ctx)
}

func (c FakeChecker) Files() map[string]bool {
	return c.MockFiles()
}

// createRequest builds a request and recorder with a logger injected into
// the request context, as the request logger middleware would do.
func createRequest(t *testing.T, method string, path string) (*http.Request, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, nil)
	if err != nil {
		t.Fatal(err)
	}

	logger, _ := NewFakeLogger()
	req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, &logger))

	return req, recorder
}
