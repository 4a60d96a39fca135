package sync

import (
	"context"
	"errors"
	"io"

	"hood-sync/feature/feed"
	"hood-sync/feature/hood"

	"go.uber.org/zap"
)

// maxErrorSamples bounds the error excerpts carried in the aggregate report.
const maxErrorSamples = 5

// Stats is the aggregate outcome of one sync run. Counters start at zero for
// every invocation; idempotence comes from the marketplace's existing-item
// state, not from local memory.
type Stats struct {
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	Errors       int      `json:"errors"`
	ErrorSamples []string `json:"error_samples,omitempty"`
}

// Runner drives the per-row upsert loop against the marketplace.
//
// Each row moves through Fetched, Mapped, then one of Skipped,
// ExistenceChecked (Updated or Inserted), or Errored. Rows are fully
// independent: a failure on one article never aborts the run.
type Runner struct {
	client hood.Client
	logger *zap.Logger
	dryRun bool
}

// NewRunner creates a runner. With dryRun set, rows are mapped and counted
// but no marketplace call is ever issued.
func NewRunner(client hood.Client, logger *zap.Logger, dryRun bool) *Runner {
	return &Runner{client: client, logger: logger, dryRun: dryRun}
}

// Run consumes the row cursor to exhaustion and returns the run statistics.
// Processing order equals feed order; network calls are strictly sequential,
// at most two per row (existence check, then insert or update).
func (r *Runner) Run(ctx context.Context, rows *feed.Rows) Stats {
	var stats Stats

	for {
		row, err := rows.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// The reader tolerates ragged records, so a read error here
				// means the stream itself broke mid-feed.
				r.fail(&stats, "", err)
			}
			break
		}

		product, reason := feed.MapRow(row)
		if product == nil {
			stats.Skipped++
			r.logger.Debug("Skipping row", zap.String("reason", string(reason)))
			continue
		}

		if r.dryRun {
			r.logger.Info("Dry-run, would sync article",
				zap.String("article_id", product.ArticleID),
				zap.String("price", product.Price.StringFixed(2)),
				zap.Int("stock", product.Stock))
			continue
		}

		existence := r.client.ItemExists(ctx, product.ArticleID)
		if existence == hood.CheckFailed {
			// Fail open toward insert: an extra insert attempt is recoverable,
			// a wrongly assumed "exists" silently drops a new listing.
			r.logger.Warn("Existence check failed, treating article as absent",
				zap.String("article_id", product.ArticleID))
			existence = hood.NotFound
		}

		if existence == hood.Found {
			if err := r.client.Update(ctx, product); err != nil {
				r.fail(&stats, product.ArticleID, err)
				continue
			}
			stats.Updated++
		} else {
			if err := r.client.Insert(ctx, product); err != nil {
				r.fail(&stats, product.ArticleID, err)
				continue
			}
			stats.Inserted++
		}
	}

	return stats
}

func (r *Runner) fail(stats *Stats, articleID string, err error) {
	stats.Errors++
	if len(stats.ErrorSamples) < maxErrorSamples {
		stats.ErrorSamples = append(stats.ErrorSamples, err.Error())
	}
	r.logger.Error("Row sync failed", zap.String("article_id", articleID), zap.Error(err))
}
