// Package rows holds the data model shared by the pagination controller,
// the DataSource client and the reference row server.
package rows

import (
	"encoding/json"
	"fmt"
)

// RowIndexKey is the payload field carrying the zero-based index of the next row to fetch.
const RowIndexKey = "rowIndex"

// Filter is a single caller-supplied filter.
type Filter struct {
	Key   string
	Value any
}

// FilterSet is an ordered collection of filters as returned by the caller at fetch time.
type FilterSet []Filter

// Map converts the filter set into a key/value mapping.
// Duplicate keys resolve to the last value supplied.
func (fs FilterSet) Map() map[string]any {
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	return m
}

// Page is one batch of opaque row records returned by a DataSource.
// An empty page means there are no more rows for the current index/filter combination.
type Page []json.RawMessage

// Payload is the JSON object POSTed to a DataSource.
type Payload map[string]any

// NewPayload builds a request payload from a row index and the current filters.
// The row index always wins over a filter that happens to use the same key, so
// the index sent is the rendered row count the fetch was decided on.
func NewPayload(rowIndex int, filters FilterSet) Payload {
	p := Payload(filters.Map())
	p[RowIndexKey] = rowIndex
	return p
}

// RowIndex returns the row index carried by the payload.
func (p Payload) RowIndex() (int, error) {
	v, ok := p[RowIndexKey]
	if !ok {
		return 0, fmt.Errorf("payload has no %s", RowIndexKey)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", RowIndexKey, err)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%s has unexpected type %T", RowIndexKey, v)
	}
}
