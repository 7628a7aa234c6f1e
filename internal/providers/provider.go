package providers

import (
	"fmt"
	"time"
)

// CacheProvider is the slice of the cache service that provider clients
// consume. Defined here so providers never import the services package.
type CacheProvider interface {
	GetSimple(key string, dest interface{}) error
	SetSimple(key string, value interface{}, expiration time.Duration) error
}

// StatusError reports a non-2xx upstream response. Requests fail fast so
// callers can decide whether a miss is fatal; there is no retry here.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d for %s", e.StatusCode, e.URL)
}

// nopCache satisfies CacheProvider when no cache backend is configured.
type nopCache struct{}

func (nopCache) GetSimple(key string, dest interface{}) error { return fmt.Errorf("cache disabled") }
func (nopCache) SetSimple(key string, value interface{}, expiration time.Duration) error {
	return nil
}
