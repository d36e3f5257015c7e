package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/lcgenomics/vprio/pkg/prio"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	fileMode       = 0600

	topVariantsDefault = 10
	formatDefault      = "json"
)

// Config holds the user-tunable CLI defaults. Scoring thresholds and
// vocabularies are fixed and deliberately not configurable; only the column
// mapping varies between annotation pipeline versions.
type Config struct {
	Columns     prio.Columns `yaml:"columns"`
	TopVariants int          `yaml:"topVariants"`
	Format      string       `yaml:"format"`
}

func getDefaultConfig() *Config {
	return &Config{
		Columns:     prio.DefaultColumns(),
		TopVariants: topVariantsDefault,
		Format:      formatDefault,
	}
}

// Save writes the config into the given directory.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads the config from a directory, writing the defaults
// first when no config file exists yet.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	j, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer j.Close()

	b, err := io.ReadAll(j)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	// Backfill anything an older or hand-edited config leaves out.
	if c.Columns.Classification == "" {
		c.Columns = prio.DefaultColumns()
	}
	if c.TopVariants < 1 {
		c.TopVariants = topVariantsDefault
	}
	if c.Format == "" {
		c.Format = formatDefault
	}

	return &c, nil
}
