package lconfig

import (
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
)

// LoadStaticYamlConfig unmarshals a YAML file into target. Used for optional
// side-channel configuration that does not fit a single environment variable,
// such as a custom color palette.
func LoadStaticYamlConfig(filename string, filesystem afero.Fs, target interface{}) error {
	file, err := filesystem.OpenFile(filename, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(content, target)
}
