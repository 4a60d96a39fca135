package sync

import (
	"bytes"
	"context"
	"fmt"

	"hood-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archive stores every marketplace request and response body in object
// storage so operators can audit exactly what was sent and received.
// Bodies contain account credentials; the bucket must be treated as
// sensitive.
type Archive struct {
	client storage.Client
	bucket string
	logger *zap.Logger

	// Per-run scope. The service never overlaps runs, so the sequence
	// counter needs no locking of its own.
	runID string
	seq   int
}

// NewArchive creates an archive writing into the given bucket.
func NewArchive(client storage.Client, bucket string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, logger: logger}
}

// Prepare ensures the audit bucket exists.
func (a *Archive) Prepare(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check audit bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create audit bucket: %w", err)
	}
	return nil
}

// Begin opens a new run scope for subsequent Record calls.
func (a *Archive) Begin(runID string) {
	a.runID = runID
	a.seq = 0
}

// Record implements hood.AuditSink. Archiving failures are logged and
// swallowed; the audit trail must never fail a row.
func (a *Archive) Record(ctx context.Context, operation, articleID string, request, response []byte) {
	a.seq++
	base := fmt.Sprintf("audit/%s/%04d-%s-%s", a.runID, a.seq, operation, articleID)
	a.put(ctx, base+"-request.xml", request)
	a.put(ctx, base+"-response.xml", response)
}

func (a *Archive) put(ctx context.Context, name string, body []byte) {
	_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/xml",
	})
	if err != nil {
		a.logger.Warn("Failed to archive marketplace exchange",
			zap.String("object", name), zap.Error(err))
	}
}
