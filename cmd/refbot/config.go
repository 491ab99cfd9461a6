package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/refbot"
)

// Config holds the program configuration, loaded from a YAML file with
// defaults for anything unset.
type Config struct {
	// Storage selects the corpus backend: "fs" or "sqlite".
	Storage string `yaml:"storage"`

	// DataDir is the corpus directory for the fs backend.
	DataDir string `yaml:"data_dir"`

	// DBPath is the database path for the sqlite backend.
	DBPath string `yaml:"db_path"`

	// PageSize is the rune budget per card page.
	PageSize int `yaml:"page_size"`

	// Expiry is how long card navigation stays active.
	Expiry Duration `yaml:"expiry"`

	// Controls selects the navigation style: "prev-next" or "per-page".
	Controls string `yaml:"controls"`

	// RequestsPerSecond is the per-domain scrape rate limit.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Concurrency is the scrape worker limit.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Storage:           "fs",
		DataDir:           defaultDataDir(),
		DBPath:            filepath.Join(defaultDataDir(), "refbot.db"),
		PageSize:          refbot.DefaultPageSize,
		Expiry:            Duration(refbot.DefaultCardExpiry),
		Controls:          "prev-next",
		RequestsPerSecond: 1.0,
		Concurrency:       4,
	}
}

// LoadConfig reads the configuration file at path. A missing file yields
// the defaults; a present file overrides only the fields it sets.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if dbPath := os.Getenv("REFBOT_DB"); dbPath != "" {
		config.DBPath = dbPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, config.validate()
}

func (c *Config) validate() error {
	switch c.Storage {
	case "fs", "sqlite":
	default:
		return refbot.Errorf(refbot.EINVALID, "storage must be \"fs\" or \"sqlite\", got %q", c.Storage)
	}
	switch c.Controls {
	case "prev-next", "per-page":
	default:
		return refbot.Errorf(refbot.EINVALID, "controls must be \"prev-next\" or \"per-page\", got %q", c.Controls)
	}
	if c.PageSize <= 0 {
		return refbot.Errorf(refbot.EINVALID, "page_size must be positive")
	}
	return nil
}

// Duration is a time.Duration that unmarshals from Go duration strings
// like "90s" or "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return refbot.Errorf(refbot.EINVALID, "invalid duration %q", value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// ControlMode maps the configured controls name to the domain constant.
func (c *Config) ControlMode() refbot.ControlMode {
	if c.Controls == "per-page" {
		return refbot.ControlPerPage
	}
	return refbot.ControlPrevNext
}

func defaultConfigPath() string {
	if path := os.Getenv("REFBOT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "refbot.yaml"
	}
	return filepath.Join(home, ".refbot", "config.yaml")
}

func defaultDataDir() string {
	if dir := os.Getenv("REFBOT_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "refbot-data"
	}
	dir := filepath.Join(home, ".refbot", "corpora")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
