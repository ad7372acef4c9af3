package dashboard

import (
	"fmt"
	"time"

	lconfig "github.com/trackboard/trackboard/pkg/config"
)

type Config struct {
	// AggregateConcurrency bounds the per-run fan-out when collecting data
	// across selected runs.
	AggregateConcurrency int `env:"DASHBOARD_AGGREGATE_CONCURRENCY" envDefault:"4"`

	// MaxPoints caps how many points one plot line carries.
	MaxPoints int `env:"DASHBOARD_MAX_POINTS" envDefault:"1000"`

	AutoRefreshInterval time.Duration `env:"DASHBOARD_AUTO_REFRESH_INTERVAL" envDefault:"10s"`
}

var ErrInvalidAggregateConcurrency = fmt.Errorf("invalid aggregate concurrency")
var ErrInvalidMaxPoints = fmt.Errorf("invalid max points")
var ErrInvalidAutoRefreshInterval = fmt.Errorf("invalid auto refresh interval")

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	err = validateConfig(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(config *Config) error {
	if config.AggregateConcurrency < 1 {
		return ErrInvalidAggregateConcurrency
	}
	if config.MaxPoints < 1 {
		return ErrInvalidMaxPoints
	}
	if config.AutoRefreshInterval < time.Second {
		return ErrInvalidAutoRefreshInterval
	}
	return nil
}
