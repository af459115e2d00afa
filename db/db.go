package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection. It stays nil when no database is configured.
var DB *sql.DB

// connString builds the connection string from environment variables.
// An empty result means no database is configured.
func connString() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return ""
	}

	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// InitDB opens the database connection from environment variables.
// Without DATABASE_URL or DB_HOST/DB_USER/DB_NAME the store is left disabled.
func InitDB(ctx context.Context) error {
	connStr := connString()
	if connStr == "" {
		log.Printf("⚠️  Database connection variables not set (DATABASE_URL or DB_HOST, DB_USER, DB_NAME), snapshots and offer records disabled")
		return nil
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return err
	}

	DB = conn
	log.Printf("✓ Database connection established successfully")
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS catalog_snapshots (
	id         BIGSERIAL PRIMARY KEY,
	source     TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS price_offers (
	id         BIGSERIAL PRIMARY KEY,
	snake_id   TEXT NOT NULL,
	name       TEXT NOT NULL,
	contact    TEXT NOT NULL,
	amount     BIGINT NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the tables used by the repositories
func Migrate(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
