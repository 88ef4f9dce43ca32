package monitor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Event is a notification posted to the monitoring backend.
type Event struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Severity  string   `json:"severity"`
	Tags      []string `json:"tags,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Metric is a single gauge data point.
type Metric struct {
	Name      string
	Value     float64
	Timestamp int64
	Tags      []string
}

// Notifier defines the outbound monitoring API the updater depends on.
// Implementations must be safe to call from a single goroutine; callers
// treat every failure as non-fatal.
type Notifier interface {
	SendEvent(event Event) error
	SendMetric(metric Metric) error
}

// Client posts events and gauge metrics to a Datadog-compatible intake API.
type Client struct {
	// The base URL of the monitoring backend
	// e.g. "https://api.datadoghq.com"
	URL    string
	APIKey string

	client *http.Client
}

func NewClient(url string, apiKey string) Client {
	return Client{
		URL:    url,
		APIKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c Client) SendEvent(event Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	return c.post("/api/v1/events", event)
}

func (c Client) SendMetric(metric Metric) error {
	payload := seriesPayload{
		Series: []series{
			{
				Metric: metric.Name,
				Points: [][2]float64{{float64(metric.Timestamp), metric.Value}},
				Type:   "gauge",
				Tags:   metric.Tags,
			},
		},
	}
	return c.post("/api/v1/series", payload)
}

type series struct {
	Metric string       `json:"metric"`
	Points [][2]float64 `json:"points"`
	Type   string       `json:"type"`
	Tags   []string     `json:"tags,omitempty"`
}

type seriesPayload struct {
	Series []series `json:"series"`
}

func (c Client) post(path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "could not serialise payload")
	}

	req, err := http.NewRequest(http.MethodPost, c.URL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DD-API-KEY", c.APIKey)

	response, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "could not POST to %s", path)
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return errors.Errorf("monitoring backend returned %d for %s", response.StatusCode, path)
	}
	return nil
}

// NopNotifier is used when no monitoring backend is configured.
type NopNotifier struct{}

func (NopNotifier) SendEvent(event Event) error    { return nil }
func (NopNotifier) SendMetric(metric Metric) error { return nil }
