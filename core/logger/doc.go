// Package logger provides structured logging based on Zap.
//
// A single factory function builds a logger configured for either development
// (console encoding, colored levels) or production (JSON encoding). Sync jobs
// log their per-run progress and the aggregate statistics through this logger;
// marketplace request and response bodies are only emitted at debug level
// because they contain account credentials.
//
// # RayID Correlation
//
// When the sync service runs in server mode, every HTTP request carries a
// RayID. The WithRayID helper copies that ID from the Fiber context onto the
// logger so all entries produced by a triggered run can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync finished", zap.Int("inserted", stats.Inserted))
package logger
