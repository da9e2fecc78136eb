// Package sqlite implementa los repositorios del libro sobre SQLite (modernc, sin cgo) con sqlx.
// Es el almacenamiento por defecto y el que usan las pruebas.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// timeLayout ancho fijo en UTC para que ORDER BY sobre texto respete el orden temporal.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		product_id  TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_price  TEXT NOT NULL DEFAULT '0',
		created_at  TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		manager     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS product_movements (
		movement_id   TEXT PRIMARY KEY,
		timestamp     TEXT NOT NULL,
		from_location TEXT REFERENCES locations (location_id),
		to_location   TEXT REFERENCES locations (location_id),
		product_id    TEXT NOT NULL REFERENCES products (product_id),
		qty           INTEGER NOT NULL CHECK (qty > 0),
		notes         TEXT NOT NULL DEFAULT '',
		CHECK (from_location IS NOT NULL OR to_location IS NOT NULL)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_to ON product_movements (product_id, to_location);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_from ON product_movements (product_id, from_location);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_timestamp ON product_movements (timestamp);`,
}

// Open abre (o crea) la base SQLite en path, activa llaves foráneas y aplica el esquema.
// path ":memory:" crea una base en memoria. Una sola conexión: las transacciones quedan serializadas.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

func dsn(path string) string {
	if path == "" {
		path = ":memory:"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}
