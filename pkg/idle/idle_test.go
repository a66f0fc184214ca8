package idle

import (
	"sync"
	"testing"
	"time"

	"github.com/focuslog/focuslog/pkg/window"
)

type stubDetector struct {
	info *window.IdleInfo
	err  error
}

func (d *stubDetector) GetFocusedWindow() (*window.Snapshot, error) { return nil, nil }
func (d *stubDetector) GetIdleInfo() (*window.IdleInfo, error)      { return d.info, d.err }
func (d *stubDetector) IsAvailable() bool                           { return true }
func (d *stubDetector) GetDisplayServer() string                    { return "x11" }
func (d *stubDetector) Close() error                                { return nil }

func TestFlag(t *testing.T) {
	var flag Flag

	if flag.IsIdle() {
		t.Error("new flag should not be idle")
	}

	flag.Set(true)
	if !flag.IsIdle() {
		t.Error("IsIdle() = false after Set(true)")
	}

	flag.Set(false)
	if flag.IsIdle() {
		t.Error("IsIdle() = true after Set(false)")
	}
}

func TestFlagConcurrentAccess(t *testing.T) {
	var flag Flag
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			flag.Set(i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = flag.IsIdle()
		}
	}()
	wg.Wait()
}

func TestMonitorSample(t *testing.T) {
	tests := []struct {
		name     string
		info     *window.IdleInfo
		wantIdle bool
	}{
		{
			name:     "active",
			info:     &window.IdleInfo{IsIdle: false, IdleTime: 10},
			wantIdle: false,
		},
		{
			name:     "idle past threshold",
			info:     &window.IdleInfo{IsIdle: true, IdleTime: 600},
			wantIdle: true,
		},
		{
			name:     "locked counts as idle",
			info:     &window.IdleInfo{IsLocked: true, IdleTime: 0},
			wantIdle: true,
		},
		{
			name:     "exactly at threshold stays active",
			info:     &window.IdleInfo{IdleTime: 300},
			wantIdle: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag Flag
			m := NewMonitor(&stubDetector{info: tt.info}, &flag, 300*time.Second, time.Second)
			m.sample()
			if flag.IsIdle() != tt.wantIdle {
				t.Errorf("IsIdle() = %v, want %v", flag.IsIdle(), tt.wantIdle)
			}
		})
	}
}

func TestMonitorSampleErrorKeepsState(t *testing.T) {
	var flag Flag
	flag.Set(true)

	m := NewMonitor(&stubDetector{err: errFake}, &flag, 300*time.Second, time.Second)
	m.sample()

	if !flag.IsIdle() {
		t.Error("query failure should not reset the flag")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "detector unavailable" }
