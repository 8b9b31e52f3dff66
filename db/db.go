package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reservations (
			booking_id VARCHAR(255) PRIMARY KEY,
			record_locator VARCHAR(255) NOT NULL DEFAULT '',
			supplier_family VARCHAR(16) NOT NULL,
			trace_id VARCHAR(255) NOT NULL,
			offer_id VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}
