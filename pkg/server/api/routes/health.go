package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/relayops/mailwatch/pkg/models"
	"github.com/relayops/mailwatch/pkg/postfix"
	"github.com/relayops/mailwatch/pkg/server/api"
	"github.com/relayops/mailwatch/pkg/version"
)

// Health serves the three monitoring routes. Every request computes a
// fresh snapshot by shelling out to the postfix CLIs; nothing is cached or
// shared between requests.
type Health struct {
	Checker postfix.Checker
	Port    int
}

type RootResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
	Timestamp string   `json:"timestamp"`
}

type CheckResponse struct {
	Status    string `json:"status"`
	Healthy   bool   `json:"healthy"`
	Timestamp string `json:"timestamp"`
	Checks    Checks `json:"checks"`
}

type Checks struct {
	PostfixRunning      bool `json:"postfix_running"`
	PostfixQueueHealthy bool `json:"postfix_queue_healthy"`
	ConfigValid         bool `json:"config_valid"`
}

type StatusResponse struct {
	Service       string              `json:"service"`
	Version       string              `json:"version"`
	Timestamp     string              `json:"timestamp"`
	Health        models.HealthStatus `json:"health"`
	Postfix       models.Metrics      `json:"postfix"`
	Files         map[string]bool     `json:"files"`
	Configuration Configuration       `json:"configuration"`
}

type Configuration struct {
	HealthPort int `json:"health_port"`
}

// Root is the service descriptor.
func (h Health) Root(w http.ResponseWriter, r *http.Request) error {
	response := RootResponse{
		Service:   "postfix-health-check",
		Endpoints: []string{"/postfix", "/status"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return errors.Wrap(json.NewEncoder(w).Encode(response), "failed to encode root response")
}

// Check is the binary health route for external probes: 200 when all three
// checks pass, 503 otherwise.
func (h Health) Check(w http.ResponseWriter, r *http.Request) error {
	health := h.Checker.Health(r.Context())

	status := "OK"
	code := http.StatusOK
	if !health.Healthy {
		status = "Service Unavailable"
		code = http.StatusServiceUnavailable
	}

	response := CheckResponse{
		Status:    status,
		Healthy:   health.Healthy,
		Timestamp: time.Now().Format(time.RFC3339),
		Checks: Checks{
			PostfixRunning:      health.PostfixRunning,
			PostfixQueueHealthy: health.QueueHealthy,
			ConfigValid:         health.ConfigValid,
		},
	}

	w.WriteHeader(code)
	return errors.Wrap(json.NewEncoder(w).Encode(response), "failed to encode health response")
}

// Status is the verbose route for debugging: always 200, includes raw
// sub-command outputs and file metadata.
func (h Health) Status(w http.ResponseWriter, r *http.Request) error {
	response := StatusResponse{
		Service:       "postfix-mail-server",
		Version:       version.Version,
		Timestamp:     time.Now().Format(time.RFC3339),
		Health:        h.Checker.Health(r.Context()),
		Postfix:       h.Checker.Metrics(r.Context()),
		Files:         h.Checker.Files(),
		Configuration: Configuration{HealthPort: h.Port},
	}

	return errors.Wrap(json.NewEncoder(w).Encode(response), "failed to encode status response")
}

// NotFound renders the JSON 404 body for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) error {
	api.NotFoundError.Render(w, http.StatusNotFound)
	return nil
}
