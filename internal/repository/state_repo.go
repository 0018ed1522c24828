package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StateSQLite keeps small client-side values (the persisted session key)
// in the client_state table.
type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

// Ensure implementation of KeyValue interface at compile time.
var _ KeyValue = (*StateSQLite)(nil)

const (
	selectStateValueSQL = `SELECT value FROM client_state WHERE key = ?`
	upsertStateValueSQL = `
		INSERT INTO client_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`
	deleteStateValueSQL = `DELETE FROM client_state WHERE key = ?`
)

// Get returns the stored value. Missing keys yield ("", false, nil).
func (r *StateSQLite) Get(key string) (string, bool, error) {
	var v string
	err := r.db.QueryRow(selectStateValueSQL, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select state %q: %w", key, err)
	}
	return v, true, nil
}

// Set inserts or replaces the value for key.
func (r *StateSQLite) Set(key, value string) error {
	if _, err := r.db.Exec(upsertStateValueSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert state %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (r *StateSQLite) Remove(key string) error {
	if _, err := r.db.Exec(deleteStateValueSQL, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
