package token

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tokens (
			chain_id INTEGER NOT NULL,
			address TEXT NOT NULL,
			name TEXT NOT NULL,
			symbol TEXT NOT NULL DEFAULT '',
			standard TEXT NOT NULL,
			PRIMARY KEY (chain_id, address)
		);

		CREATE TABLE IF NOT EXISTS assets (
			chain_id INTEGER NOT NULL,
			address TEXT NOT NULL,
			token_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			amount TEXT NOT NULL DEFAULT '1',
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (chain_id, address, token_id),
			FOREIGN KEY (chain_id, address) REFERENCES tokens(chain_id, address) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chain_id INTEGER NOT NULL,
			address TEXT NOT NULL,
			tx_hash TEXT NOT NULL,
			from_addr TEXT NOT NULL,
			to_addr TEXT NOT NULL,
			token_id TEXT NOT NULL,
			amount TEXT NOT NULL DEFAULT '1',
			timestamp INTEGER NOT NULL,
			UNIQUE (chain_id, address, tx_hash, token_id)
		);

		CREATE INDEX IF NOT EXISTS idx_activity_token ON activity(chain_id, address, timestamp);

		CREATE TABLE IF NOT EXISTS token_functions (
			chain_id INTEGER NOT NULL,
			address TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (chain_id, address, position)
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
