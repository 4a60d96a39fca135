// Package database manages the connection to the optional run journal store.
//
// It wraps GORM with MySQL for deployments and SQLite for tests. The journal
// records one row per completed sync run (see feature/sync). It is purely
// observational: upsert decisions are driven by the marketplace's own state,
// never by local history, so a missing database only costs the audit trail.
package database
