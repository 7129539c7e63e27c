package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the tallybook server, read from
// environment variables.
type Config struct {
	Addr         string        `envconfig:"TALLYBOOK_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"TALLYBOOK_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"TALLYBOOK_WRITE_TIMEOUT" default:"15s"`

	LogFormat string `envconfig:"TALLYBOOK_LOG_FORMAT" default:"text"`

	// RateLimit is the per-client request budget per minute on the REST
	// surface. Zero disables limiting.
	RateLimit int `envconfig:"TALLYBOOK_RATE_LIMIT" default:"300"`

	// ChartPath optionally points at a YAML chart-of-accounts file used
	// to seed the registry instead of the built-in chart.
	ChartPath string `envconfig:"TALLYBOOK_CHART" default:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
