package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/roster-sync/internal/platform/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_SERVICE_NAME", "FOOTBALL_API_KEY", "API_FOOTBALL_BASE_URL",
		"API_FOOTBALL_TIMEOUT", "API_FOOTBALL_MAX_RETRIES", "ROSTER_PATH", "TEAM_OVERRIDES_PATH",
		"LOG_LEVEL", "LOG_FORMAT", "UPTRACE_ENABLED", "UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.APIFootballBaseURL != "https://v3.football.api-sports.io" {
		t.Fatalf("unexpected base url: %q", cfg.APIFootballBaseURL)
	}
	if cfg.APIFootballTimeout != 20*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.APIFootballMaxRetries != 0 {
		t.Fatalf("retries must default to zero, got=%d", cfg.APIFootballMaxRetries)
	}
	if cfg.RosterPath != "data/players.json" {
		t.Fatalf("unexpected roster path: %q", cfg.RosterPath)
	}
	if cfg.FootballAPIKey != "" {
		t.Fatalf("expected empty api key")
	}
	if cfg.LogLevel != logging.LevelInfo || cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected log settings: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ServiceName != "roster-sync" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_APIFootballSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOOTBALL_API_KEY", " key-123 ")
	t.Setenv("API_FOOTBALL_TIMEOUT", "5s")
	t.Setenv("API_FOOTBALL_MAX_RETRIES", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballAPIKey != "key-123" {
		t.Fatalf("expected trimmed key")
	}
	if cfg.APIFootballTimeout != 5*time.Second || cfg.APIFootballMaxRetries != 2 {
		t.Fatalf("unexpected client settings: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"API_FOOTBALL_TIMEOUT":     "0s",
		"API_FOOTBALL_MAX_RETRIES": "-1",
		"LOG_FORMAT":               "xml",
		"UPTRACE_ENABLED":          "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadDotEnv_LocalFileWins(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("FOOTBALL_API_KEY=from-local\n"), 0o600); err != nil {
		t.Fatalf("write local: %v", err)
	}
	if err := os.WriteFile(shared, []byte("FOOTBALL_API_KEY=from-shared\nROSTER_PATH=shared/players.json\n"), 0o600); err != nil {
		t.Fatalf("write shared: %v", err)
	}
	os.Unsetenv("FOOTBALL_API_KEY")
	os.Unsetenv("ROSTER_PATH")

	if err := LoadDotEnv(local, shared, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballAPIKey != "from-local" {
		t.Fatalf("expected .env.local to win, got=%q", cfg.FootballAPIKey)
	}
	if cfg.RosterPath != "shared/players.json" {
		t.Fatalf("expected .env to fill the gaps, got=%q", cfg.RosterPath)
	}
}
