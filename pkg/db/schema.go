// Package db provides SQLite storage for locally confirmed link history.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Link history table
-- Tracks reconciliation links confirmed through this tool. The backend is
-- the source of truth; this is the local record for offline stats/listing.
CREATE TABLE IF NOT EXISTS link_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_type TEXT NOT NULL,         -- bank/purchase/sales/expense/tax/payroll
    source_ref TEXT NOT NULL,          -- document/record reference
    target_type TEXT NOT NULL,
    target_ref TEXT NOT NULL,
    fecha TEXT NOT NULL,               -- YYYY-MM-DD of the matched document
    amount REAL NOT NULL,
    confirmed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(source_type, source_ref, target_type, target_ref)
);

CREATE INDEX IF NOT EXISTS idx_link_history_source
    ON link_history(source_type, source_ref);

CREATE INDEX IF NOT EXISTS idx_link_history_fecha
    ON link_history(fecha);

-- Tool metadata table
-- Stores key-value metadata (last used filters, schema version, etc).
CREATE TABLE IF NOT EXISTS tool_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
