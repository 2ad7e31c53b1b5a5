package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
)

// Config stores runtime configuration for the enrichment jobs.
type Config struct {
	AppEnv                string
	ServiceName           string
	ServiceVersion        string
	FootballAPIKey        string
	APIFootballBaseURL    string
	APIFootballTimeout    time.Duration
	APIFootballMaxRetries int
	RosterPath            string
	TeamOverridesPath     string
	LogLevel              logging.Level
	LogFormat             string
	UptraceEnabled        bool
	UptraceDSN            string
}

// DefaultDotEnvFiles are read in order; values already in the environment, or set by an earlier
// file, win.
var DefaultDotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the given dotenv files into the process environment, skipping the ones
// that do not exist.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = DefaultDotEnvFiles
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", file, err)
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	apiTimeout, err := time.ParseDuration(getEnv("API_FOOTBALL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_TIMEOUT: %w", err)
	}
	if apiTimeout <= 0 {
		return Config{}, fmt.Errorf("API_FOOTBALL_TIMEOUT must be > 0")
	}

	apiMaxRetries, err := getEnvAsInt("API_FOOTBALL_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_MAX_RETRIES: %w", err)
	}
	if apiMaxRetries < 0 {
		return Config{}, fmt.Errorf("API_FOOTBALL_MAX_RETRIES must be >= 0")
	}

	logFormat := strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", logging.FormatConsole)))
	if logFormat != logging.FormatConsole && logFormat != logging.FormatJSON {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatConsole, logging.FormatJSON)
	}

	rosterPath := strings.TrimSpace(getEnv("ROSTER_PATH", "data/players.json"))

	return Config{
		AppEnv:                appEnv,
		ServiceName:           strings.TrimSpace(getEnv("APP_SERVICE_NAME", "roster-sync")),
		ServiceVersion:        strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		FootballAPIKey:        strings.TrimSpace(getEnv("FOOTBALL_API_KEY", "")),
		APIFootballBaseURL:    strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballTimeout:    apiTimeout,
		APIFootballMaxRetries: apiMaxRetries,
		RosterPath:            rosterPath,
		TeamOverridesPath:     strings.TrimSpace(getEnv("TEAM_OVERRIDES_PATH", "")),
		LogLevel:              logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:             logFormat,
		UptraceEnabled:        uptraceEnabled,
		UptraceDSN:            uptraceDSN,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
