package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sternrassler/infinite-scroll/pkg/rows"
)

// PageKey identifies a cached DataSource page.
type PageKey struct {
	// URL is the DataSource endpoint
	URL string

	// Payload is the request body (row index plus filters)
	Payload rows.Payload
}

// String generates a deterministic cache key string.
// Format: rows:"url":{canonical JSON payload}
//
// The URL is quoted and the payload is JSON with sorted keys, so values that
// contain separators or differ only in type map to different keys.
//
// Example:
//
//	rows:"http://localhost:3000/fetchrows":{"rowIndex":5,"searchText":"bil"}
func (k PageKey) String() string {
	url := strings.TrimRight(k.URL, "/")
	return "rows:" + strconv.Quote(url) + ":" + k.payloadJSON()
}

func (k PageKey) payloadJSON() string {
	if len(k.Payload) == 0 {
		return "{}"
	}

	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(map[string]any(k.Payload))
	if err != nil {
		// Unencodable payloads are never sent; keep them apart from real bodies.
		return "!" + fmt.Sprintf("%#v", map[string]any(k.Payload))
	}
	return string(data)
}
