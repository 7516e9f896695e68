package repository

import (
	"database/sql"
	"fmt"
)

// BlobRepository guarda estado serializado por chave, sobrevivendo a reinícios.
type BlobRepository struct {
	db *sql.DB
}

func NewBlobRepository(db *sql.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Load returns the stored blob for key, or ok=false when the key was never saved.
func (r *BlobRepository) Load(key string) ([]byte, bool, error) {
	query := `SELECT value FROM blobs WHERE key = ?`

	var value []byte
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Error trying to load blob %s: %w", key, err)
	}

	return value, true, nil
}

func (r *BlobRepository) Save(key string, value []byte) error {
	query := `
	INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("Error trying to save blob %s: %w", key, err)
	}

	return nil
}
