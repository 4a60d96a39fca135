// Package feed implements ingestion of the merchant's product catalog export.
//
// It has two halves:
//  1. Reader: fetches the delimited text feed over HTTP (or from an injected
//     in-memory source in tests) and exposes a lazy, forward-only row cursor.
//  2. Mapper: normalizes one raw row into a canonical Product, applying field
//     aliasing, quote trimming, locale-aware numeric coercion, and image-list
//     collection.
//
// Ill-formed rows are never a feed-level failure. The reader tolerates ragged
// records as empty-field reads and the mapper turns anything unusable into a
// SkipReason, so a single bad row can never abort a run.
package feed
