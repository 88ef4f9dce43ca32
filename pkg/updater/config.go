package updater

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds the updater's configuration, read from the environment once
// at startup. Intervals are in seconds.
type Config struct {
	FeedURL        string `envconfig:"FEED_URL" default:"https://ip-ranges.atlassian.com/"`
	WhitelistPath  string `envconfig:"WHITELIST_PATH" default:"/etc/postfix/clients.cidr"`
	StatePath      string `envconfig:"STATE_PATH" default:"/var/lib/mailwatch/state.json"`
	UpdateInterval int    `envconfig:"UPDATE_INTERVAL" default:"3600"`
	MetricInterval int    `envconfig:"METRIC_INTERVAL" default:"300"`
	MonitorURL     string `envconfig:"MONITOR_URL"`
	MonitorAPIKey  string `envconfig:"MONITOR_API_KEY"`
	SentryDsn      string `envconfig:"SENTRY_DSN"`
	FetchTimeout   int    `envconfig:"FETCH_TIMEOUT" default:"30"`
	CommandTimeout int    `envconfig:"COMMAND_TIMEOUT" default:"10"`
}

// LoadConfig reads the updater configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return config, errors.Wrap(err, "could not process environment configuration")
	}
	return config, nil
}
