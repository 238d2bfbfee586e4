package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"contacts_api/internal/repository/db/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a *sql.DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "pgx"

	pingTimeout    = 5 * time.Second
	maxConnLife    = time.Hour
	defaultMaxOpen = 10
)

// DialectFor infers the dialect from a connection string: postgres URLs and
// keyword DSNs select Postgres, anything else is treated as a SQLite path.
func DialectFor(dsn string) Dialect {
	d := strings.TrimSpace(dsn)
	if strings.HasPrefix(d, "postgres://") || strings.HasPrefix(d, "postgresql://") ||
		strings.Contains(d, "host=") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to the store named by dsn, applies migrations and pings it.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, Dialect, error) {
	dialect := DialectFor(dsn)

	var (
		conn *sql.DB
		err  error
	)
	switch dialect {
	case DialectPostgres:
		conn, err = openPostgres(dsn, maxOpenConns)
	default:
		conn, err = openSQLite(dsn)
	}
	if err != nil {
		return nil, "", err
	}

	if err := Migrate(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return nil, "", err
	}

	// Fail fast if the DB cannot be reached
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pctx); err != nil {
		_ = conn.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}

	return conn, dialect, nil
}

// openSQLite opens/creates a SQLite DB file with conservative settings.
func openSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}
	return conn, nil
}

func openPostgres(dsn string, maxOpenConns int) (*sql.DB, error) {
	conn, err := sql.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if maxOpenConns <= 0 {
		maxOpenConns = defaultMaxOpen
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxOpenConns / 2)
	conn.SetConnMaxLifetime(maxConnLife)
	return conn, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.FS)

	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect %q: %w", gooseDialect, err)
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
