package config

import (
	"testing"
	"time"

	"github.com/clubstats/matchboard/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/matchboard")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "matchboard" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl %s", cfg.CacheTTL)
	}
	if cfg.MatchNameThreshold != 0.7 {
		t.Fatalf("unexpected threshold %v", cfg.MatchNameThreshold)
	}
	if cfg.SheetsRange != "Matches!A1:Z500" {
		t.Fatalf("unexpected sheets range %q", cfg.SheetsRange)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoad_RequiresSpreadsheetWhenSheetsEnabled(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/matchboard")
	t.Setenv("SHEETS_ENABLED", "true")
	t.Setenv("SHEETS_SPREADSHEET_ID", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without spreadsheet id")
	}

	t.Setenv("SHEETS_ENABLED", "false")
	if _, err := Load(); err != nil {
		t.Fatalf("sheets disabled must not require spreadsheet id: %v", err)
	}
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/matchboard")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("MATCH_NAME_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range threshold")
	}
}

func TestLoad_RejectsUnknownAppEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/matchboard")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("APP_ENV", "qa")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown app env")
	}
}
