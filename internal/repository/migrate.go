package repository

import (
	"context"
	"fmt"

	"adrs/pkg/storage"
)

// Schema is portable across the sqlite and postgres backends. The metadata
// and review columns hold serialized JSON objects; review stays NULL until
// the first verdict.
const receiptsDDL = `
CREATE TABLE IF NOT EXISTS receipts (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	user_input TEXT NOT NULL,
	intent     TEXT NOT NULL,
	ai_output  TEXT NOT NULL,
	reasoning  TEXT NOT NULL,
	confidence REAL NOT NULL,
	status     TEXT NOT NULL,
	metadata   TEXT NOT NULL,
	review     TEXT
)`

// Migrate creates the receipts table if it does not exist yet.
func Migrate(ctx context.Context, db *storage.DB) error {
	if _, err := db.ExecContext(ctx, receiptsDDL); err != nil {
		return fmt.Errorf("failed to create receipts table: %w", err)
	}
	return nil
}
