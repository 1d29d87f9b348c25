package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clubstats/matchboard/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the reconciliation module.
type Config struct {
	AppEnv                  string
	ServiceName             string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	MatchNameThreshold      float64
	SheetsEnabled           bool
	SheetsBaseURL           string
	SheetsAPIKey            string
	SheetsSpreadsheetID     string
	SheetsRange             string
	SheetsTimeout           time.Duration
	SheetsMaxRetries        int
	SheetsCircuitEnabled    bool
	SheetsCircuitFailures   int
	SheetsCircuitOpenFor    time.Duration
	SheetsCircuitHalfOpen   int
	RefreshMaxWorkers       int
	LogLevel                logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheEnabled && cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	threshold, err := getEnvAsFloat("MATCH_NAME_THRESHOLD", 0.7)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_NAME_THRESHOLD: %w", err)
	}
	if threshold <= 0 || threshold > 1 {
		return Config{}, fmt.Errorf("MATCH_NAME_THRESHOLD must be in (0,1]")
	}

	sheetsEnabled, err := strconv.ParseBool(getEnv("SHEETS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_ENABLED: %w", err)
	}
	sheetsAPIKey := strings.TrimSpace(getEnv("SHEETS_API_KEY", ""))
	sheetsSpreadsheetID := strings.TrimSpace(getEnv("SHEETS_SPREADSHEET_ID", ""))
	if sheetsEnabled && sheetsSpreadsheetID == "" {
		return Config{}, fmt.Errorf("SHEETS_SPREADSHEET_ID is required when SHEETS_ENABLED=true")
	}
	sheetsTimeout, err := time.ParseDuration(getEnv("SHEETS_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_TIMEOUT: %w", err)
	}
	sheetsMaxRetries, err := getEnvAsInt("SHEETS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_MAX_RETRIES: %w", err)
	}
	if sheetsMaxRetries < 0 {
		return Config{}, fmt.Errorf("SHEETS_MAX_RETRIES must be >= 0")
	}

	sheetsCircuitEnabled, err := strconv.ParseBool(getEnv("SHEETS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_ENABLED: %w", err)
	}
	sheetsCircuitFailures, err := getEnvAsInt("SHEETS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	sheetsCircuitOpenFor, err := time.ParseDuration(getEnv("SHEETS_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	sheetsCircuitHalfOpen, err := getEnvAsInt("SHEETS_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	refreshMaxWorkers, err := getEnvAsInt("REFRESH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_MAX_WORKERS: %w", err)
	}
	if refreshMaxWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_MAX_WORKERS must be >= 1")
	}

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "matchboard"),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		MatchNameThreshold:      threshold,
		SheetsEnabled:           sheetsEnabled,
		SheetsBaseURL:           strings.TrimSpace(getEnv("SHEETS_BASE_URL", "")),
		SheetsAPIKey:            sheetsAPIKey,
		SheetsSpreadsheetID:     sheetsSpreadsheetID,
		SheetsRange:             getEnv("SHEETS_RANGE", "Matches!A1:Z500"),
		SheetsTimeout:           sheetsTimeout,
		SheetsMaxRetries:        sheetsMaxRetries,
		SheetsCircuitEnabled:    sheetsCircuitEnabled,
		SheetsCircuitFailures:   sheetsCircuitFailures,
		SheetsCircuitOpenFor:    sheetsCircuitOpenFor,
		SheetsCircuitHalfOpen:   sheetsCircuitHalfOpen,
		RefreshMaxWorkers:       refreshMaxWorkers,
		LogLevel:                parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("unknown APP_ENV %q", v)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}
