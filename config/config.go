package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	AppName       = "scrollgraph"
	FileName      = "config.yaml"
	DefaultOutput = "tetris_github.gif"
)

// Data sources understood by the CLI.
const (
	SourceJogruber = "jogruber"
	SourceGitHub   = "github"
	SourceGCal     = "gcal"
)

var Sources = []string{SourceJogruber, SourceGitHub, SourceGCal}

var logLevels = []string{"", "debug", "info", "warn", "error"}

// Config holds defaults for the command line. Flags win over file values.
type Config struct {
	Username    string   `yaml:"username"`
	Theme       string   `yaml:"theme"`
	Output      string   `yaml:"output"`
	Source      string   `yaml:"source"`
	APIBaseURL  string   `yaml:"api_base_url,omitempty"` // jogruber or GraphQL endpoint override
	CalendarIDs []string `yaml:"calendar_ids,omitempty"` // gcal only
	Workers     int      `yaml:"workers"`                // concurrent frame renders, 0 = sequential
	LogLevel    string   `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Theme:    "light",
		Output:   DefaultOutput,
		Source:   SourceJogruber,
		LogLevel: "info",
	}
}

// Dir is ~/.config/scrollgraph, created on first use.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads a YAML config on top of Default. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if !slices.Contains(Sources, cfg.Source) {
		return fmt.Errorf("unknown source %q (want one of %v)", cfg.Source, Sources)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Output == "" {
		return errors.New("output must not be empty")
	}
	return nil
}
