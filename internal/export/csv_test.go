package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/focuslog/focuslog/internal/models"
)

func record(app, title string, start time.Time, seconds int64) *models.UsageRecord {
	return &models.UsageRecord{
		Application: app,
		Title:       title,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(seconds) * time.Second),
		Duration:    seconds,
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestAppendWritesHeaderAndRow(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)
	defer w.Close()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if err := w.Append(record("firefox", "Docs", start, 3725)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	rows := readRows(t, filepath.Join(dir, "application_usage_20260314.csv"))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "Application" || rows[0][5] != "Readable Total Time" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	want := []string{"firefox", "Docs", "2026-03-14 09:00:00", "2026-03-14 10:02:05", "01:02:05", "1 hour, 2 minutes, 5 seconds"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row[%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestAppendRotatesAtDayRollover(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)
	defer w.Close()

	day1 := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 0, 0, 30, 0, time.UTC)

	if err := w.Append(record("firefox", "Late", day1, 90)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := w.Append(record("code", "Early", day2, 60)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	first := readRows(t, filepath.Join(dir, "application_usage_20260314.csv"))
	second := readRows(t, filepath.Join(dir, "application_usage_20260315.csv"))

	if len(first) != 2 || first[1][0] != "firefox" {
		t.Errorf("day 1 partition wrong: %v", first)
	}
	if len(second) != 2 || second[1][0] != "code" {
		t.Errorf("day 2 partition wrong: %v", second)
	}
}

func TestAppendToExistingFileSkipsHeader(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	w := NewCSVWriter(dir)
	if err := w.Append(record("firefox", "First", start, 10)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// A new writer appending to the same day must not duplicate the header.
	w = NewCSVWriter(dir)
	defer w.Close()
	if err := w.Append(record("code", "Second", start.Add(10*time.Second), 20)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	rows := readRows(t, filepath.Join(dir, "application_usage_20260314.csv"))
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "firefox" || rows[2][0] != "code" {
		t.Errorf("rows out of order: %v", rows)
	}
}

func TestAppendRejectsNegativeDuration(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)
	defer w.Close()

	bad := record("firefox", "Bad", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 10)
	bad.Duration = -1

	if err := w.Append(bad); err == nil {
		t.Error("Append() with negative duration should fail")
	}
}
