package sync_test

import (
	"context"
	"testing"
	"time"

	"hood-sync/core/database"
	"hood-sync/feature/sync"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newTestJournal(t *testing.T) (*sync.Journal, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	journal := sync.NewJournal(db, zap.NewNop())
	require.NoError(t, journal.Prepare())
	return journal, db
}

func TestJournal_RecordRoundTrip(t *testing.T) {
	journal, db := newTestJournal(t)

	started := time.Now().Add(-2 * time.Second).Truncate(time.Second)
	finished := time.Now().Truncate(time.Second)

	journal.Record(context.Background(), &sync.RunRecord{
		ID:         "run-abc",
		StartedAt:  started,
		FinishedAt: finished,
		DurationMS: 2000,
		Inserted:   3,
		Updated:    1,
		Skipped:    2,
		Errors:     1,
		Outcome:    "partial",
	})

	var got sync.RunRecord
	require.NoError(t, db.First(&got, "id = ?", "run-abc").Error)
	assert.Equal(t, 3, got.Inserted)
	assert.Equal(t, 1, got.Updated)
	assert.Equal(t, 2, got.Skipped)
	assert.Equal(t, 1, got.Errors)
	assert.Equal(t, "partial", got.Outcome)
}

func TestJournal_RecordWritesToRunTable(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	journal := sync.NewJournal(gormDB, zap.NewNop())
	journal.Record(context.Background(), &sync.RunRecord{
		ID:        "run-abc",
		StartedAt: time.Now(),
		Outcome:   "ok",
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_RecordSwallowsWriteFailures(t *testing.T) {
	journal, db := newTestJournal(t)

	rec := &sync.RunRecord{ID: "run-dup", StartedAt: time.Now(), FinishedAt: time.Now()}
	journal.Record(context.Background(), rec)

	// A duplicate primary key fails the insert; Record logs and returns.
	journal.Record(context.Background(), rec)

	var count int64
	require.NoError(t, db.Model(&sync.RunRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
