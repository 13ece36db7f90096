package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// OfferCacheKey builds the cache key for a single cached offer. Commands that
// change an offer delete this key; the offer query repopulates it.
func OfferCacheKey(id kernel.UUID) string {
	return "offer:" + id.String()
}

// AccountCacheKey builds the cache key for a cached account profile. Commands
// that touch the account's statistics delete this key; the account query
// repopulates it.
func AccountCacheKey(id kernel.UUID) string {
	return "account:" + id.String()
}

// Cache is a TTL key-value store for query results.
// A failed cache never fails a request: callers treat errors as misses on reads
// and log-and-continue on writes.
type Cache interface {
	// Get looks up a key. The second return value reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under the key with the given time to live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
