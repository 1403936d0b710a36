package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	defaultHistoryName = ".simple_shell_history"
	defaultMaxJobs     = 64
	defaultMaxArgs     = 32
)

type Config struct {
	HistoryFile string `yaml:"history_file"`
	HomeDir     string `yaml:"home_dir"`
	MaxJobs     int    `yaml:"max_jobs"`
	MaxArgs     int    `yaml:"max_args"`
}

// Load reads file and fills in defaults for anything it leaves unset.
// A missing file is not an error; it yields the default configuration.
func Load(file string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.HomeDir == "" {
		cfg.HomeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, defaultHistoryName)
	}

	if cfg.MaxJobs <= 0 {
		cfg.MaxJobs = defaultMaxJobs
	}

	if cfg.MaxArgs <= 0 {
		cfg.MaxArgs = defaultMaxArgs
	}

	return cfg, nil
}
