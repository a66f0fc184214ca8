package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Export configuration
	Export ExportConfig

	// Report configuration
	Report ReportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	PollInterval    time.Duration // How often to sample the focused window
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
	IdleThreshold   time.Duration // Inactivity before the user counts as idle
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// ExportConfig holds CSV export configuration
type ExportConfig struct {
	Dir     string // Directory for day-partitioned CSV files
	Enabled bool   // Whether the tracker writes CSV live
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	ExcludeIdle bool // Whether to exclude idle time from reports
	TimeZone    string
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/focuslog/focuslog.db
		},
		Tracker: TrackerConfig{
			PollInterval:    1 * time.Second,   // Sample every second
			MinPollInterval: 1 * time.Second,   // Minimum 1 second
			MaxPollInterval: 300 * time.Second, // Maximum allowed poll interval
			IdleThreshold:   300 * time.Second, // 5 minutes idle threshold
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/focuslog-%d.pid", os.Getuid()),
		},
		Export: ExportConfig{
			Dir:     "", // Empty means current working directory
			Enabled: true,
		},
		Report: ReportConfig{
			ExcludeIdle: true, // Exclude idle time by default
			TimeZone:    "Local",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Tracker.IdleThreshold < 0 {
		return fmt.Errorf("idle threshold cannot be negative")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// GetPollIntervalSeconds returns the poll interval in seconds
func (c *Config) GetPollIntervalSeconds() int64 {
	return int64(c.Tracker.PollInterval.Seconds())
}

// GetIdleThresholdSeconds returns the idle threshold in seconds
func (c *Config) GetIdleThresholdSeconds() int64 {
	return int64(c.Tracker.IdleThreshold.Seconds())
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Tracker:
    Poll Interval: %v
    Min Interval: %v
    Max Interval: %v
    Idle Threshold: %v
  Daemon:
    PID File: %s
  Export:
    Dir: %s
    Enabled: %v
  Report:
    Exclude Idle: %v
    Time Zone: %s`,
		c.Database.Path,
		c.Tracker.PollInterval,
		c.Tracker.MinPollInterval,
		c.Tracker.MaxPollInterval,
		c.Tracker.IdleThreshold,
		c.Daemon.PIDFile,
		c.Export.Dir,
		c.Export.Enabled,
		c.Report.ExcludeIdle,
		c.Report.TimeZone,
	)
}
