// Command rows-server serves the reference DataSource over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/logging"
	"github.com/Sternrassler/infinite-scroll/pkg/metrics"
	"github.com/Sternrassler/infinite-scroll/pkg/rowsource"
	"github.com/rs/zerolog/log"
)

type serverConfig struct {
	Port     string
	PageSize int
}

func main() {
	logging.Setup(logging.ConfigFromEnv())

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Int("page_size", cfg.PageSize).
			Msg("Starting rows server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Rows server stopped")
}

func loadConfig() (serverConfig, error) {
	cfg := serverConfig{
		Port:     getEnv("PORT", "8080"),
		PageSize: rowsource.DefaultPageSize,
	}

	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("parse PAGE_SIZE: %w", err)
		}
		if size <= 0 {
			return cfg, fmt.Errorf("PAGE_SIZE must be > 0 (got %d)", size)
		}
		cfg.PageSize = size
	}

	return cfg, nil
}

func newMux(cfg serverConfig) *http.ServeMux {
	rowsCfg := rowsource.DefaultConfig()
	rowsCfg.PageSize = cfg.PageSize

	mux := http.NewServeMux()
	mux.Handle("/fetchrows", rowsource.NewHandler(rowsCfg))
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
