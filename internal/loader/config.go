package loader

import (
	"fmt"
	"time"

	lconfig "github.com/trackboard/trackboard/pkg/config"
)

type Config struct {
	// MaxWorkers bounds how many storage calls run at once.
	MaxWorkers int `env:"LOADER_MAX_WORKERS" envDefault:"4"`
	QueueSize  int `env:"LOADER_QUEUE_SIZE" envDefault:"64"`

	// CacheTTL bounds how stale served structural metadata may be.
	CacheTTL time.Duration `env:"LOADER_CACHE_TTL" envDefault:"30s"`
}

var ErrInvalidMaxWorkers = fmt.Errorf("invalid max workers")
var ErrInvalidQueueSize = fmt.Errorf("invalid queue size")
var ErrInvalidCacheTTL = fmt.Errorf("invalid cache ttl")

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
	if config.MaxWorkers < 1 {
		return ErrInvalidMaxWorkers
	}
	if config.QueueSize < 1 {
		return ErrInvalidQueueSize
	}
	if config.CacheTTL < time.Second {
		return ErrInvalidCacheTTL
	}
	return nil
}
