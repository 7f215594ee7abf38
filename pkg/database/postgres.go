package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// Connect establishes a connection to the PostgreSQL database using the provided DSN.
// It returns a *sql.DB instance or an error if the connection fails.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Connected to database successfully")
	return db, nil
}

// ApplySchema executes the embedded schema. All statements are idempotent
// (CREATE TABLE IF NOT EXISTS), so this runs on every startup.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Reset drops every application table and recreates them from the embedded
// schema. This is the factory-reset path: all users, contracts and
// notifications are gone afterwards. There is no undo.
func Reset(ctx context.Context, db *sql.DB) error {
	drop := `DROP TABLE IF EXISTS notifications, contracts, users CASCADE`
	if _, err := db.ExecContext(ctx, drop); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return ApplySchema(ctx, db)
}
