package cache

import (
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/rows"
)

// Entry represents a cached DataSource page.
type Entry struct {
	// Rows is the page as returned by the DataSource
	Rows rows.Page `json:"rows"`

	// Expires is when the entry becomes stale
	Expires time.Time `json:"expires"`

	// CachedAt is when we cached this page
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
