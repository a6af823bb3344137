package utils

import "time"

// Environment variables read by the command line tool
const (
	EnvToken    = "TODOIST_TOKEN"
	EnvBaseURL  = "TODOIST_BASE_URL"
	EnvTimeout  = "TODOIST_TIMEOUT"
	EnvLogLevel = "TODOIST_LOG_LEVEL"
)

const (
	// DefaultEnvFile is loaded before the config file when present
	DefaultEnvFile = ".env"
	// DefaultTimeout bounds a single HTTP attempt
	DefaultTimeout = 10 * time.Second
	// DefaultLogLevel is used when no level is configured
	DefaultLogLevel = "info"
)
