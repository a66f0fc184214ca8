package models

import (
	"time"

	"gorm.io/gorm"
)

// IdleApplication is the application/title recorded for idle intervals.
const IdleApplication = "Idle"

// UsageRecord is one contiguous interval during which a single
// application (or "Idle") held focus. Records are immutable once
// appended; consecutive records share a boundary (end == next start).
type UsageRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Application string         `gorm:"not null;index" json:"application"`
	Title       string         `gorm:"not null" json:"title"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time      `gorm:"not null" json:"end_time"`
	Duration    int64          `gorm:"not null;default:0" json:"duration"` // Duration in seconds
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsIdle reports whether this record covers an idle interval.
func (r *UsageRecord) IsIdle() bool {
	return r.Application == IdleApplication
}

type AppSummary struct {
	Application  string  `json:"application"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	RecordCount  int     `json:"record_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period       ReportPeriod `json:"period"`
	Apps         []AppSummary `json:"apps"`
	TotalSeconds int64        `json:"total_seconds"`
	TotalMinutes float64      `json:"total_minutes"`
	TotalHours   float64      `json:"total_hours"`
	GeneratedAt  time.Time    `json:"generated_at"`
}
