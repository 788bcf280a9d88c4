// Package rowsource is a reference DataSource: it serves a static, in-memory
// row set one page at a time, optionally narrowed by a search filter.
package rowsource

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the number of rows returned per request.
const DefaultPageSize = 5

var rowsServedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "infinite_scroll_rows_served_total",
	Help: "Total rows served by the reference DataSource",
})

// Row is one record served by the reference DataSource.
type Row struct {
	Description string `json:"description"`
	Number      int    `json:"number"`
}

// DefaultRows returns the demo dataset.
func DefaultRows() []Row {
	names := []string{
		"bob", "bill", "billy", "barry", "robert", "harry", "jill",
		"betty", "jack", "adam", "nick", "nicky", "nickola",
	}
	out := make([]Row, len(names))
	for i, name := range names {
		out[i] = Row{Description: name, Number: i}
	}
	return out
}

// Config holds the handler configuration.
type Config struct {
	Rows     []Row
	PageSize int
}

// DefaultConfig returns the demo dataset with the default page size.
func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows(),
		PageSize: DefaultPageSize,
	}
}

// Request is the body accepted by the handler.
type Request struct {
	RowIndex   int    `json:"rowIndex"`
	SearchText string `json:"searchText"`
}

// Handler serves pages of rows over HTTP.
type Handler struct {
	config Config
	logger zerolog.Logger
}

// NewHandler creates a handler. A non-positive page size falls back to DefaultPageSize.
func NewHandler(cfg Config) *Handler {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Handler{
		config: cfg,
		logger: log.With().Str("component", "rowsource").Logger(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Bad rows request")
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.RowIndex < 0 {
		http.Error(w, "rowIndex must be >= 0", http.StatusBadRequest)
		return
	}

	page := Page(h.config.Rows, req.RowIndex, h.config.PageSize, req.SearchText)

	h.logger.Debug().
		Int("row_index", req.RowIndex).
		Str("search_text", req.SearchText).
		Int("rows", len(page)).
		Msg("Sending rows")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write rows")
		return
	}
	rowsServedTotal.Add(float64(len(page)))
}

// Page returns the rows matching searchText, starting at rowIndex, at most
// pageSize long. It is never nil so it encodes as a JSON array.
func Page(all []Row, rowIndex, pageSize int, searchText string) []Row {
	filtered := make([]Row, 0, len(all))
	for _, row := range all {
		if searchText == "" || strings.Contains(row.Description, searchText) {
			filtered = append(filtered, row)
		}
	}

	if rowIndex >= len(filtered) {
		return []Row{}
	}
	end := rowIndex + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[rowIndex:end]
}
