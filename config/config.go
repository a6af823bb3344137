// Package config loads the settings of the todoist command line tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ziyixi/todoist/todoist"
	"github.com/ziyixi/todoist/utils"
)

// Config holds the command line settings.
type Config struct {
	Token    string        `yaml:"token"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:  todoist.DefaultBaseURL,
		Timeout:  utils.DefaultTimeout,
		LogLevel: utils.DefaultLogLevel,
	}
}

// Load builds the configuration in three layers: the env file is loaded into
// the process environment (a missing file is ignored), the YAML file at
// configPath overrides the defaults when it exists, and TODOIST_* environment
// variables override both.
func Load(envFile, configPath string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(utils.EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(utils.EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(utils.EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(utils.EnvTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", utils.EnvTimeout, err)
		}
		c.Timeout = timeout
	}
	return nil
}

// Validate checks that the configuration can build a working client.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("todoist token is missing (%s)", utils.EnvToken)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
