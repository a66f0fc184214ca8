// Package idle maintains the shared idle flag: written by a monitor
// goroutine watching input inactivity, read synchronously by the poll
// loop each tick. Staleness of at most one tick is tolerable, so a
// single atomic bool is all the synchronization needed.
package idle

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/focuslog/focuslog/pkg/window"
)

// Flag is the idle state cell shared between the monitor and the poll loop.
type Flag struct {
	idle atomic.Bool
}

// Set records the current idle state.
func (f *Flag) Set(v bool) {
	f.idle.Store(v)
}

// IsIdle reports the last recorded idle state.
func (f *Flag) IsIdle() bool {
	return f.idle.Load()
}

// Monitor periodically samples the detector's idle information and
// updates the flag. A locked screen counts as idle.
type Monitor struct {
	detector  window.Detector
	flag      *Flag
	threshold time.Duration
	interval  time.Duration
}

func NewMonitor(detector window.Detector, flag *Flag, threshold, interval time.Duration) *Monitor {
	return &Monitor{
		detector:  detector,
		flag:      flag,
		threshold: threshold,
		interval:  interval,
	}
}

// Run samples until the context is cancelled. Query failures leave the
// flag untouched; the previous state stays valid for the next tick.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sample()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *Monitor) sample() {
	info, err := m.detector.GetIdleInfo()
	if err != nil {
		log.Printf("Idle monitor: %v", err)
		return
	}

	idle := info.IsLocked || info.IdleTime > int64(m.threshold.Seconds())
	m.flag.Set(idle)
}
