package colors

import (
	"github.com/spf13/afero"

	lconfig "github.com/trackboard/trackboard/pkg/config"
)

type Config struct {
	// PaletteFile optionally points at a YAML list of color names replacing
	// the default palette.
	PaletteFile string `env:"PALETTE_FILE"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewAssignerFromConfig builds an Assigner with the configured palette, or
// the default one when no palette file is set.
func NewAssignerFromConfig(cfg *Config) (*Assigner, error) {
	if cfg.PaletteFile == "" {
		return NewAssigner(nil), nil
	}

	var palette []string
	if err := lconfig.LoadStaticYamlConfig(cfg.PaletteFile, afero.NewOsFs(), &palette); err != nil {
		return nil, err
	}
	return NewAssigner(palette), nil
}
