package database

import (
	"strings"
	"time"

	"github.com/focuslog/focuslog/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for usage records
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a closed usage record, normalizing the application name
// to lowercase. The caller's record is not touched; other sinks may still
// be holding it.
func (r *Repository) Append(record *models.UsageRecord) error {
	stored := *record
	stored.Application = strings.ToLower(stored.Application)
	result := r.db.Create(&stored)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert usage record")
	}
	return nil
}

// GetRecordsSince retrieves all usage records starting at or after a given time
func (r *Repository) GetRecordsSince(since time.Time) ([]*models.UsageRecord, error) {
	var records []*models.UsageRecord
	result := r.db.Where("start_time >= ?", since).Order("start_time ASC").Find(&records)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query usage records")
	}

	return records, nil
}

// GetRecordsBetween retrieves records whose start falls within [start, end)
func (r *Repository) GetRecordsBetween(start, end time.Time) ([]*models.UsageRecord, error) {
	var records []*models.UsageRecord
	result := r.db.Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").Find(&records)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query usage records")
	}

	return records, nil
}

// GetAppSummarySince returns aggregated per-application usage since a given
// time. SQL does the SUM; the reporter derives percentages at runtime.
func (r *Repository) GetAppSummarySince(since time.Time, excludeIdle bool) ([]models.AppSummary, error) {
	var summaries []models.AppSummary

	query := r.db.Model(&models.UsageRecord{}).
		Select("application, SUM(duration) as total_seconds, COUNT(*) as record_count").
		Where("start_time >= ?", since)

	if excludeIdle {
		query = query.Where("application != ?", strings.ToLower(models.IdleApplication))
	}

	result := query.Group("application").Order("total_seconds DESC").Scan(&summaries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query app summary")
	}

	return summaries, nil
}

// DeleteOldRecords deletes records older than a specified date (soft delete)
func (r *Repository) DeleteOldRecords(before time.Time) (int64, error) {
	result := r.db.Where("start_time < ?", before).Delete(&models.UsageRecord{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old records")
	}
	return result.RowsAffected, nil
}

// GetLatest retrieves the most recently started usage record
func (r *Repository) GetLatest() (*models.UsageRecord, error) {
	var record models.UsageRecord
	result := r.db.Order("start_time DESC").First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest record")
	}
	return &record, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all usage records from the database
func (r *Repository) Clear() error {
	result := r.db.Exec("DELETE FROM usage_records")
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear usage records")
	}
	return nil
}
