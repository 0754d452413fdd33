package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis cache
// backends. Airport lookups and used report tokens go through it.
type CacheInterface interface {
	// Set stores a value under the key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes the key
	Delete(key string)

	// GetOrSet retrieves a value, or loads and stores it on a miss
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
