// Package search pushes the materialized future-availability snapshot into
// the external search index's per-person record. The index itself only
// filters on scalar ranges; everything recurrence-aware happens before the
// data gets here.
package search

import "context"

// Client is the write-through boundary to the index. UpsertAvailability
// replaces the person's whole snapshot; the engine re-derives it from scratch
// on every availability or booking change, so partial updates are never
// needed.
type Client interface {
	UpsertAvailability(ctx context.Context, userID string, startTimes []int64) error
	DeleteAvailability(ctx context.Context, userID string) error
}
