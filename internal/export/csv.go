// Package export writes usage records to day-partitioned CSV files,
// one file per calendar day keyed by the record's start time.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/pkg/timefmt"

	"github.com/pkg/errors"
)

const (
	filePattern = "application_usage_%s.csv"
	dayLayout   = "20060102"
	timeLayout  = "2006-01-02 15:04:05"
)

var header = []string{
	"Application", "Title", "Start Time", "End Time", "Total Time", "Readable Total Time",
}

// CSVWriter appends usage records to per-day CSV files. It is driven by
// a single goroutine (the poll loop or the export command) and rotates
// to a new file when the day of a record's start time changes.
type CSVWriter struct {
	dir    string
	day    string
	file   *os.File
	writer *csv.Writer
}

func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Filename returns the partition file name for a given day.
func Filename(day string) string {
	return fmt.Sprintf(filePattern, day)
}

// Append writes one record to the partition for its start day, creating
// the file (with header) or rotating as needed.
func (w *CSVWriter) Append(record *models.UsageRecord) error {
	day := record.StartTime.Format(dayLayout)
	if w.file == nil || day != w.day {
		if err := w.rotate(day); err != nil {
			return err
		}
	}

	totalTime, err := timefmt.Clock(record.Duration)
	if err != nil {
		return errors.Wrap(err, "failed to format total time")
	}
	readable, err := timefmt.Readable(record.Duration)
	if err != nil {
		return errors.Wrap(err, "failed to format readable total time")
	}

	row := []string{
		record.Application,
		record.Title,
		record.StartTime.Format(timeLayout),
		record.EndTime.Format(timeLayout),
		totalTime,
		readable,
	}
	if err := w.writer.Write(row); err != nil {
		return errors.Wrap(err, "failed to write csv row")
	}

	w.writer.Flush()
	return errors.Wrap(w.writer.Error(), "failed to flush csv row")
}

func (w *CSVWriter) rotate(day string) error {
	if err := w.Close(); err != nil {
		return err
	}

	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create export directory")
		}
	}

	path := filepath.Join(w.dir, Filename(day))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open export file")
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return errors.Wrap(err, "failed to stat export file")
	}

	w.file = file
	w.writer = csv.NewWriter(file)
	w.day = day

	if info.Size() == 0 {
		if err := w.writer.Write(header); err != nil {
			return errors.Wrap(err, "failed to write csv header")
		}
		w.writer.Flush()
		return errors.Wrap(w.writer.Error(), "failed to flush csv header")
	}

	return nil
}

// Close flushes and closes the current partition file, if any.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	w.writer.Flush()
	flushErr := w.writer.Error()
	closeErr := w.file.Close()
	w.file = nil
	w.writer = nil
	w.day = ""

	if flushErr != nil {
		return errors.Wrap(flushErr, "failed to flush export file")
	}
	return errors.Wrap(closeErr, "failed to close export file")
}
