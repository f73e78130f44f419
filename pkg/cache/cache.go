// Package cache provides a small key-value cache abstraction used to cache
// suggestion responses between lookups.
package cache

// Repository is the cache contract. Get returns the cached value and whether
// it was present.
type Repository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
