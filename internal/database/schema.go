package database

import (
	"database/sql"
	"fmt"
)

const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS fruit_options (
    fruit_id SERIAL PRIMARY KEY,
    fruit_name TEXT NOT NULL UNIQUE,
    search_on TEXT
);

CREATE TABLE IF NOT EXISTS orders (
    order_uid BIGSERIAL PRIMARY KEY,
    order_filled BOOLEAN NOT NULL DEFAULT FALSE,
    name_on_order TEXT,
    ingredients TEXT NOT NULL,
    order_ts TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_filled ON orders(order_filled);
`

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS fruit_options (
    fruit_id INTEGER PRIMARY KEY AUTOINCREMENT,
    fruit_name TEXT NOT NULL UNIQUE,
    search_on TEXT
);

CREATE TABLE IF NOT EXISTS orders (
    order_uid INTEGER PRIMARY KEY AUTOINCREMENT,
    order_filled BOOLEAN NOT NULL DEFAULT 0,
    name_on_order TEXT,
    ingredients TEXT NOT NULL,
    order_ts TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_orders_filled ON orders(order_filled);
`

func InitSchema(db *sql.DB, uri string) error {
	driver, _, err := ParseURI(uri)
	if err != nil {
		return err
	}

	schema := postgresSchemaSQL
	if driver == DriverSQLite {
		schema = sqliteSchemaSQL
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
