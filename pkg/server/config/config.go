package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds the health reporter's configuration, read from the
// environment once at startup and passed down explicitly.
type Config struct {
	HealthPort       int    `envconfig:"HEALTH_PORT" default:"8080"`
	PostfixConfigDir string `envconfig:"POSTFIX_CONFIG_DIR" default:"/etc/postfix"`
	CommandTimeout   int    `envconfig:"COMMAND_TIMEOUT" default:"10"`
	SentryDsn        string `envconfig:"SENTRY_DSN"`
	Environment      string `envconfig:"ENVIRONMENT"`
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return config, errors.Wrap(err, "could not process environment configuration")
	}
	return config, nil
}
