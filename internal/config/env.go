package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("FOCUSLOG_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Tracker configuration
	if pollInterval := os.Getenv("FOCUSLOG_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	if idleThreshold := os.Getenv("FOCUSLOG_IDLE_THRESHOLD"); idleThreshold != "" {
		if seconds, err := strconv.Atoi(idleThreshold); err == nil && seconds > 0 {
			cfg.Tracker.IdleThreshold = time.Duration(seconds) * time.Second
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("FOCUSLOG_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Export configuration
	if exportDir := os.Getenv("FOCUSLOG_EXPORT_DIR"); exportDir != "" {
		cfg.Export.Dir = exportDir
	}

	if exportEnabled := os.Getenv("FOCUSLOG_EXPORT_ENABLED"); exportEnabled != "" {
		if val, err := strconv.ParseBool(exportEnabled); err == nil {
			cfg.Export.Enabled = val
		}
	}

	// Report configuration
	if excludeIdle := os.Getenv("FOCUSLOG_EXCLUDE_IDLE"); excludeIdle != "" {
		if val, err := strconv.ParseBool(excludeIdle); err == nil {
			cfg.Report.ExcludeIdle = val
		}
	}

	if timeZone := os.Getenv("FOCUSLOG_TIMEZONE"); timeZone != "" {
		cfg.Report.TimeZone = timeZone
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
