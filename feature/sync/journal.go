package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunRecord is one journal row describing a completed sync run.
// The journal is observational only: sync decisions never read it.
type RunRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Errors     int       `json:"errors"`
	Outcome    string    `gorm:"size:16" json:"outcome"`
	Detail     string    `gorm:"size:512" json:"detail"`
}

// TableName sets the journal table name.
func (RunRecord) TableName() string {
	return "sync_runs"
}

// Journal persists run records to the optional database.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewJournal creates a journal backed by the given connection.
func NewJournal(db *gorm.DB, logger *zap.Logger) *Journal {
	return &Journal{db: db, logger: logger}
}

// Prepare creates the journal table if needed.
func (j *Journal) Prepare() error {
	return j.db.AutoMigrate(&RunRecord{})
}

// Record writes one run record. Journal failures are logged and swallowed;
// losing the audit trail must not fail a completed run.
func (j *Journal) Record(ctx context.Context, rec *RunRecord) {
	if err := j.db.WithContext(ctx).Create(rec).Error; err != nil {
		j.logger.Warn("Failed to journal sync run", zap.String("run_id", rec.ID), zap.Error(err))
	}
}
