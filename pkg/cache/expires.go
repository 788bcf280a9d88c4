package cache

import (
	"net/http"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/rows"
)

const (
	// DefaultTTL is the fallback TTL when no expires header is present
	DefaultTTL = 30 * time.Second
)

// NewEntry builds a cache entry for a page using the response headers for expiry.
func NewEntry(page rows.Page, headers http.Header) *Entry {
	return &Entry{
		Rows:     page,
		Expires:  ParseExpires(headers),
		CachedAt: time.Now(),
	}
}

// ParseExpires parses the Expires header.
// Returns now + DefaultTTL when the header is missing or unparseable, and now
// when it lies in the past.
func ParseExpires(headers http.Header) time.Time {
	expiresStr := headers.Get("Expires")
	if expiresStr == "" {
		return time.Now().Add(DefaultTTL)
	}

	expires, err := http.ParseTime(expiresStr)
	if err != nil {
		return time.Now().Add(DefaultTTL)
	}

	if expires.Before(time.Now()) {
		return time.Now()
	}

	return expires
}
