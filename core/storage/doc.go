// Package storage provides the object storage layer for the audit archive.
//
// It wraps the MinIO Go client behind a small interface so that the archive
// can target both AWS S3 and self-hosted MinIO, and so tests can substitute
// the mock in core/storage/mocks.
//
// The sync service stores every marketplace request and response body per run
// under audit/<run-id>/; see feature/sync for the archive itself. The archive
// is optional and disabled by default.
package storage
