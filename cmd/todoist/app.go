package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/ziyixi/todoist/config"
	"github.com/ziyixi/todoist/todoist"
	"github.com/ziyixi/todoist/utils"
)

// app carries the global flags and the client shared by every subcommand.
type app struct {
	log *logrus.Logger
	out io.Writer

	configPath string
	logLevel   string
	token      string
	baseURL    string

	cfg    *config.Config
	client *todoist.Client
}

// defaultConfigPath returns $XDG_CONFIG_HOME/todoist/config.yaml.
func defaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "todoist", "config.yaml")
}

func newApp(out io.Writer, log *logrus.Logger) *cli.Command {
	a := &app{log: log, out: out}

	return &cli.Command{
		Name:      "todoist",
		Usage:     "Manage Todoist tasks from the command line",
		UsageText: "todoist [global options] command [command options]",
		Version:   GitCommit,
		Writer:    out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Value:       defaultConfigPath(),
				Destination: &a.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Destination: &a.logLevel,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "API token, overrides " + utils.EnvToken,
				Destination: &a.token,
			},
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "API domain, overrides " + utils.EnvBaseURL,
				Destination: &a.baseURL,
			},
		},
		Before:   a.setup,
		Commands: a.commands(),
	}
}

// setup loads the configuration and applies the global flags on top of it.
func (a *app) setup(ctx context.Context, _ *cli.Command) (context.Context, error) {
	cfg, err := config.Load(utils.DefaultEnvFile, a.configPath)
	if err != nil {
		return ctx, fmt.Errorf("load config: %w", err)
	}
	if a.token != "" {
		cfg.Token = a.token
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.log.SetLevel(cfg.Level())
	return ctx, nil
}

// todoist returns the API client, creating it on first use.
func (a *app) todoist() (*todoist.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a.client = todoist.NewClient(a.cfg.Token,
		todoist.WithBaseURL(a.cfg.BaseURL),
		todoist.WithTimeout(a.cfg.Timeout),
		todoist.WithLogger(a.log),
	)
	return a.client, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
