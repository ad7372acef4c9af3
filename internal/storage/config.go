package storage

import (
	"os"
	"path/filepath"
	"time"

	lconfig "github.com/trackboard/trackboard/pkg/config"
)

type Config struct {
	// DataDir holds one <project>.db SQLite file per project.
	DataDir string `env:"TRACKIO_DIR"`

	// Transient busy errors from a concurrent writer are retried this many
	// times with RetryDelay between attempts.
	RetryAttempts uint          `env:"STORAGE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"STORAGE_RETRY_DELAY" envDefault:"50ms"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, herr
		}
		cfg.DataDir = filepath.Join(home, ".cache", "huggingface", "trackio")
	}
	return &cfg, nil
}
