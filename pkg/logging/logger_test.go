package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// restoreGlobals undoes the global level and logger changes Setup makes.
func restoreGlobals(t *testing.T) {
	t.Helper()
	level := zerolog.GlobalLevel()
	logger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Level = %s, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Pretty should default to false")
	}
	if cfg.Output != os.Stderr {
		t.Error("Output should default to stderr")
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		pretty     string
		wantLevel  LogLevel
		wantPretty bool
	}{
		{name: "unset", wantLevel: LevelInfo},
		{name: "debug json", level: "debug", pretty: "false", wantLevel: LevelDebug},
		{name: "warn pretty", level: "warn", pretty: "true", wantLevel: LevelWarn, wantPretty: true},
		{name: "pretty as 1", pretty: "1", wantLevel: LevelInfo, wantPretty: true},
		{name: "unparseable pretty keeps default", level: "error", pretty: "yes please", wantLevel: LevelError},
		{name: "unknown level passes through", level: "verbose", wantLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_PRETTY", tt.pretty)

			cfg := ConfigFromEnv()
			if cfg.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.wantLevel)
			}
			if cfg.Pretty != tt.wantPretty {
				t.Errorf("Pretty = %v, want %v", cfg.Pretty, tt.wantPretty)
			}
			if cfg.Output != os.Stderr {
				t.Error("Output should stay stderr")
			}
		})
	}
}

func TestConfigFromEnv_UnknownLevelFallsBackToInfo(t *testing.T) {
	restoreGlobals(t)
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("LOG_PRETTY", "")

	cfg := ConfigFromEnv()
	buf := &bytes.Buffer{}
	cfg.Output = buf
	logger := Setup(cfg)

	logger.Debug().Msg("fetch issued")
	logger.Info().Msg("page appended")

	if strings.Contains(buf.String(), "fetch issued") {
		t.Error("debug line should be filtered at the info fallback")
	}
	if !strings.Contains(buf.String(), "page appended") {
		t.Error("info line should be written")
	}
}

func TestSetup_JSON(t *testing.T) {
	restoreGlobals(t)
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelDebug, Output: buf})

	log.Debug().Int("row_index", 5).Msg("Threshold reached, fetching rows")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not a JSON line: %v (%q)", err, buf.String())
	}
	if line["level"] != "debug" {
		t.Errorf("level = %v, want debug", line["level"])
	}
	if line["row_index"] != float64(5) {
		t.Errorf("row_index = %v, want 5", line["row_index"])
	}
	if _, ok := line["time"]; !ok {
		t.Error("expected a timestamp field")
	}
}

func TestSetup_Pretty(t *testing.T) {
	restoreGlobals(t)
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Pretty: true, Output: buf})

	log.Info().Msg("Fetch complete")

	out := buf.String()
	if !strings.Contains(out, "Fetch complete") {
		t.Errorf("expected message in console output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("pretty output should not be JSON, got %q", out)
	}
}

func TestSetup_NilOutput(t *testing.T) {
	restoreGlobals(t)
	logger := Setup(Config{Level: LevelError})
	logger.Debug().Msg("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"DEBUG", zerolog.DebugLevel},
		{LevelError, zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"trace", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	restoreGlobals(t)
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("pagination")
	logger.Warn().Str("error", "connection refused").Msg("Failed to fetch rows")

	out := buf.String()
	for _, want := range []string{`"component":"pagination"`, `"level":"warn"`, "Failed to fetch rows"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	restoreGlobals(t)
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelWarn, Output: buf})

	logger := NewLogger("datasource-client")
	logger.Debug().Msg("Requesting rows")
	logger.Info().Msg("Rows received")
	logger.Warn().Msg("Cache get error")
	logger.Error().Msg("Shutdown failed")

	out := buf.String()
	for _, dropped := range []string{"Requesting rows", "Rows received"} {
		if strings.Contains(out, dropped) {
			t.Errorf("%q should be filtered at warn level", dropped)
		}
	}
	for _, kept := range []string{"Cache get error", "Shutdown failed"} {
		if !strings.Contains(out, kept) {
			t.Errorf("%q should be written at warn level", kept)
		}
	}
}
