package window

import (
	"testing"
	"time"
)

type MockDetector struct {
	snapshot      *Snapshot
	idleInfo      *IdleInfo
	isAvailable   bool
	displayServer string
	closeError    error
}

func (m *MockDetector) GetFocusedWindow() (*Snapshot, error) {
	return m.snapshot, nil
}

func (m *MockDetector) GetIdleInfo() (*IdleInfo, error) {
	return m.idleInfo, nil
}

func (m *MockDetector) IsAvailable() bool {
	return m.isAvailable
}

func (m *MockDetector) GetDisplayServer() string {
	return m.displayServer
}

func (m *MockDetector) Close() error {
	return m.closeError
}

func TestMockDetector(t *testing.T) {
	var _ Detector = (*MockDetector)(nil)

	mock := &MockDetector{
		snapshot: &Snapshot{
			Application: "TestApp",
			Title:       "Test Window",
			Time:        time.Now(),
		},
		idleInfo: &IdleInfo{
			IsIdle:   false,
			IsLocked: false,
			IdleTime: 0,
		},
		isAvailable:   true,
		displayServer: "x11",
	}

	snapshot, err := mock.GetFocusedWindow()
	if err != nil {
		t.Errorf("GetFocusedWindow() error: %v", err)
	}
	if snapshot.Application != "TestApp" {
		t.Errorf("Application = %s, want TestApp", snapshot.Application)
	}

	idleInfo, err := mock.GetIdleInfo()
	if err != nil {
		t.Errorf("GetIdleInfo() error: %v", err)
	}
	if idleInfo.IsIdle {
		t.Error("IsIdle = true, want false")
	}

	if !mock.IsAvailable() {
		t.Error("IsAvailable() = false, want true")
	}

	if mock.GetDisplayServer() != "x11" {
		t.Errorf("GetDisplayServer() = %s, want x11", mock.GetDisplayServer())
	}

	if err := mock.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestIdleInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     IdleInfo
		wantIdle bool
	}{
		{
			name: "Not idle",
			info: IdleInfo{
				IsIdle:   false,
				IsLocked: false,
				IdleTime: 30,
			},
			wantIdle: false,
		},
		{
			name: "Idle",
			info: IdleInfo{
				IsIdle:   true,
				IsLocked: false,
				IdleTime: 600,
			},
			wantIdle: true,
		},
		{
			name: "Locked",
			info: IdleInfo{
				IsIdle:   false,
				IsLocked: true,
				IdleTime: 0,
			},
			wantIdle: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.info.IsIdle != tt.wantIdle {
				t.Errorf("IsIdle = %v, want %v", tt.info.IsIdle, tt.wantIdle)
			}

			if tt.info.IdleTime < 0 {
				t.Errorf("IdleTime is negative: %d", tt.info.IdleTime)
			}
		})
	}
}
