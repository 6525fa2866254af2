// Package testutil provides helpers for tests: an in-memory database with the
// production schema, fluent builders for seed data, a stub market-data
// provider, and HTTP request helpers.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE portfolios (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			visible_to_guest BOOLEAN DEFAULT TRUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		CREATE TABLE holdings (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			shares FLOAT NOT NULL,
			cost_price FLOAT NOT NULL,
			purchase_date DATE NOT NULL,
			market VARCHAR(2) NOT NULL,
			portfolio_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolios(id) ON DELETE CASCADE
		);

		CREATE INDEX idx_holdings_portfolio ON holdings(portfolio_id);
		CREATE INDEX idx_holdings_symbol ON holdings(symbol);

		CREATE TABLE cash_balance (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) UNIQUE,
			amount_twd FLOAT DEFAULT 0 NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolios(id) ON DELETE CASCADE
		);

		CREATE TABLE transactions (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			type VARCHAR(10) NOT NULL,
			shares FLOAT NOT NULL,
			price FLOAT NOT NULL,
			transaction_date DATE NOT NULL,
			market VARCHAR(2) NOT NULL,
			realized_pnl_twd FLOAT NOT NULL,
			holding_id VARCHAR(36),
			portfolio_id VARCHAR(36),
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		CREATE INDEX idx_transactions_portfolio ON transactions(portfolio_id);
		CREATE INDEX idx_transactions_date ON transactions(transaction_date);

		CREATE TABLE snapshots (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			snapshot_date DATE NOT NULL UNIQUE,
			total_value_twd FLOAT NOT NULL,
			exchange_rate FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
