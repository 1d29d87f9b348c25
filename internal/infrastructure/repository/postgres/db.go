package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Connect opens an otel-instrumented sqlx handle and verifies it with a
// bounded ping. Span attribution uses the database name from the DSN.
func Connect(ctx context.Context, dsn string, disablePreparedBinary bool) (*sqlx.DB, error) {
	normalized := normalizeDSN(dsn, disablePreparedBinary)

	db, err := otelsqlx.Open("postgres", normalized,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(normalized)),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
