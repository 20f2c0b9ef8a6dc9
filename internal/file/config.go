package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/divVerent/midimontage/internal/processor"
)

// ReadConfig reads the global configuration. Fields not set keep their defaults.
func ReadConfig(fsys fs.FS, configFile string) (*processor.Config, error) {
	fsys, name := resolve(fsys, configFile)
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open: %w", err)
	}
	defer f.Close()
	var config processor.Config
	err = yaml.NewDecoder(f).Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	merged := processor.Merge(*processor.DefaultConfig(), config)
	return &merged, nil
}
