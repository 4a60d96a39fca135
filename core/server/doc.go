// Package server holds the HTTP server configuration.
//
// The server is the scheduler-facing entry point of the sync service: an
// external cron or scheduled function POSTs to /sync and receives either the
// run statistics (200) or a structured failure reason (500).
package server
