// Package cache holds the staleness policy for view-state refetching.
// The refetch decision is a pure predicate; wiring it to visibility or
// selection-change events is the caller's concern.
package cache

import "time"

// DefaultTTL is the staleness window after which cached period/entry
// data should be refetched.
const DefaultTTL = 5 * time.Minute

// Entry pairs fetched data with its fetch time.
type Entry[T any] struct {
	Data      T
	FetchedAt time.Time
}

// NewEntry records data fetched at now.
func NewEntry[T any](data T, now time.Time) Entry[T] {
	return Entry[T]{Data: data, FetchedAt: now}
}

// IsStale reports whether data fetched at fetchedAt has outlived ttl.
// A zero fetch time is always stale.
func IsStale(fetchedAt, now time.Time, ttl time.Duration) bool {
	if fetchedAt.IsZero() {
		return true
	}
	return now.Sub(fetchedAt) >= ttl
}

// Stale is IsStale applied to the entry with DefaultTTL unless overridden.
func (e Entry[T]) Stale(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return IsStale(e.FetchedAt, now, ttl)
}
