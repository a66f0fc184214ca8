package window

import "time"

// Snapshot is one sample of the focused window identity. A nil *Snapshot
// means the foreground window could not be resolved for that tick.
type Snapshot struct {
	Application string
	Title       string
	Time        time.Time
}

// IdleInfo represents system idle/lock state
type IdleInfo struct {
	IsIdle   bool
	IsLocked bool
	IdleTime int64 // Idle time in seconds
}

// Detector is the interface that all window detection implementations must satisfy
type Detector interface {
	// GetFocusedWindow returns the currently focused window identity
	GetFocusedWindow() (*Snapshot, error)

	// GetIdleInfo returns information about system idle/lock state
	GetIdleInfo() (*IdleInfo, error)

	// IsAvailable checks if this detector can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the display server type (e.g. "x11")
	GetDisplayServer() string

	// Close cleans up any resources used by the detector
	Close() error
}
