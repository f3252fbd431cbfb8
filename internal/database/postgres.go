package database

import (
	"database/sql"
	"fmt"

	"github.com/ViniDeiro/daily-icu/internal/config"

	_ "github.com/lib/pq"
)

// NewPostgresDB opens and pings a Postgres connection.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the connection if open.
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
