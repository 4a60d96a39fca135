package sync

import (
	"context"
	"sync"
	"time"

	"hood-sync/feature/feed"
	"hood-sync/feature/hood"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service wires feed ingestion, the marketplace client, and the optional
// journal and audit archive into runnable sync jobs. Journal and archive may
// be nil; the core loop works without either.
type Service struct {
	feedCfg feed.Config
	client  hood.Client
	logger  *zap.Logger
	journal *Journal
	archive *Archive

	// runs serializes RunSync. Overlapping runs would race on the remote
	// upsert decisions and interleave the audit archive, so a second trigger
	// waits for the current run to finish.
	runs sync.Mutex
}

// NewService creates a sync service. journal and archive are optional.
func NewService(feedCfg feed.Config, client hood.Client, logger *zap.Logger, journal *Journal, archive *Archive) *Service {
	return &Service{
		feedCfg: feedCfg,
		client:  client,
		logger:  logger,
		journal: journal,
		archive: archive,
	}
}

// RunSync fetches the feed and upserts every usable row. The returned error
// covers run-level failures only (an unreachable feed); per-row failures are
// reported through Stats.
func (s *Service) RunSync(ctx context.Context, dryRun bool) (Stats, error) {
	s.runs.Lock()
	defer s.runs.Unlock()

	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID))
	started := time.Now()

	if s.archive != nil && !dryRun {
		s.archive.Begin(runID)
	}

	l.Info("Starting sync run", zap.String("feed_url", s.feedCfg.URL), zap.Bool("dry_run", dryRun))

	rows, err := feed.Fetch(ctx, s.feedCfg)
	if err != nil {
		l.Error("Feed fetch failed", zap.Error(err))
		s.record(ctx, runID, started, Stats{}, "failed", err.Error(), dryRun)
		return Stats{}, err
	}
	defer rows.Close()

	stats := NewRunner(s.client, l, dryRun).Run(ctx, rows)

	l.Info("Sync run finished",
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors),
		zap.Duration("duration", time.Since(started)))

	s.record(ctx, runID, started, stats, outcomeFor(stats), "", dryRun)
	return stats, nil
}

func outcomeFor(stats Stats) string {
	if stats.Errors > 0 {
		return "partial"
	}
	return "ok"
}

func (s *Service) record(ctx context.Context, runID string, started time.Time, stats Stats, outcome, detail string, dryRun bool) {
	if s.journal == nil || dryRun {
		return
	}

	finished := time.Now()
	s.journal.Record(ctx, &RunRecord{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: finished,
		DurationMS: finished.Sub(started).Milliseconds(),
		Inserted:   stats.Inserted,
		Updated:    stats.Updated,
		Skipped:    stats.Skipped,
		Errors:     stats.Errors,
		Outcome:    outcome,
		Detail:     detail,
	})
}
