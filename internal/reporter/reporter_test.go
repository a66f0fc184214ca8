package reporter

import (
	"testing"
	"time"
)

func TestPeriod(t *testing.T) {
	// A Wednesday
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		periodType string
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			periodType: "day",
			wantStart:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			periodType: "week",
			wantStart:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // Monday
			wantEnd:    time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			periodType: "month",
			wantStart:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.periodType, func(t *testing.T) {
			period, err := Period(tt.periodType, now)
			if err != nil {
				t.Fatalf("Period(%s) error: %v", tt.periodType, err)
			}
			if !period.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", period.Start, tt.wantStart)
			}
			if !period.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", period.End, tt.wantEnd)
			}
		})
	}
}

func TestPeriodSundayBelongsToCurrentWeek(t *testing.T) {
	sunday := time.Date(2026, 3, 22, 10, 0, 0, 0, time.UTC)

	period, err := Period("week", sunday)
	if err != nil {
		t.Fatalf("Period(week) error: %v", err)
	}

	wantStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !period.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v (Monday of the same week)", period.Start, wantStart)
	}
}

func TestPeriodInvalidType(t *testing.T) {
	if _, err := Period("year", time.Now()); err == nil {
		t.Error("Period(year) should fail")
	}
}
