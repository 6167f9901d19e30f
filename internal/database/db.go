package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// ParseURI maps a DATABASE_URI onto a database/sql driver name and DSN.
// postgres:// and postgresql:// go to pgx; sqlite:// and file: go to the
// embedded sqlite driver.
func ParseURI(uri string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return DriverPostgres, uri, nil
	case strings.HasPrefix(uri, "sqlite://"):
		dsn = strings.TrimPrefix(uri, "sqlite://")
		if dsn == "" {
			return "", "", fmt.Errorf("empty sqlite path in %q", uri)
		}
		return DriverSQLite, dsn, nil
	case strings.HasPrefix(uri, "file:"):
		return DriverSQLite, uri, nil
	default:
		return "", "", fmt.Errorf("unsupported database uri %q", uri)
	}
}

func NewDB(uri string) (*sql.DB, error) {
	driver, dsn, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if driver == DriverSQLite {
		// every new connection to :memory: is a fresh database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return db, nil
}

func CloseDB(db *sql.DB, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close DB", zap.Error(err))
	}
}
