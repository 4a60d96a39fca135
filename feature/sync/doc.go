// Package sync orchestrates full synchronization runs: it pulls the supplier
// feed, maps each row to a product, and upserts every product into the
// marketplace through the hood client. Run outcomes can optionally be
// journaled to the database and the raw API exchanges archived to object
// storage.
package sync
