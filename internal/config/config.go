package config

import (
	log "github.com/sirupsen/logrus"

	lconfig "github.com/trackboard/trackboard/pkg/config"
)

// Config holds the process-level settings. Package settings live next to
// the package they configure.
type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AutoRefresh bool   `env:"AUTO_REFRESH" envDefault:"true"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyLogLevel sets the global logrus level, keeping the default on an
// unparseable value.
func (c *Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("unknown log level %q, keeping %s", c.LogLevel, log.GetLevel())
		return
	}
	log.SetLevel(level)
}
