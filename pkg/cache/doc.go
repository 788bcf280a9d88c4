// Package cache provides an optional Redis-backed cache for DataSource pages.
//
// Pages are cached under a deterministic key derived from the DataSource URL
// and the full request payload (row index plus filters), so a reset with new
// filters never reads a page cached for the old ones.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.PageKey{
//		URL:     "http://localhost:3000/fetchrows",
//		Payload: rows.NewPayload(5, filters),
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the DataSource
//	}
//
// # Expiry
//
// The entry TTL follows the DataSource Expires response header. Without one,
// DefaultTTL applies. Expired entries are deleted on read.
//
// # Metrics
//
//   - infinite_scroll_cache_hits_total - Cache hits
//   - infinite_scroll_cache_misses_total - Cache misses
//   - infinite_scroll_cache_errors_total{operation} - Cache operation errors
package cache
