package repository

import (
	"database/sql"
	"fmt"
)

type Settings struct {
	AirtableToken string
	AirtableBase  string
	AirtableTable string
	IsConfigured  bool
}

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get() (Settings, error) {
	query := `SELECT airtable_token, airtable_base, airtable_table, is_configured FROM settings WHERE id = 1`

	var s Settings
	err := r.db.QueryRow(query).Scan(
		&s.AirtableToken,
		&s.AirtableBase,
		&s.AirtableTable,
		&s.IsConfigured,
	)
	if err == sql.ErrNoRows {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("Error trying to get settings: %w", err)
	}

	return s, nil
}

func (r *SettingsRepository) Save(s Settings) error {
	query := `
	INSERT INTO settings (id, airtable_token, airtable_base, airtable_table, is_configured)
	VALUES (1, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		airtable_token = excluded.airtable_token,
		airtable_base = excluded.airtable_base,
		airtable_table = excluded.airtable_table,
		is_configured = excluded.is_configured
	`

	_, err := r.db.Exec(query, s.AirtableToken, s.AirtableBase, s.AirtableTable, s.IsConfigured)
	if err != nil {
		return fmt.Errorf("Error trying to save settings: %w", err)
	}

	return nil
}

func (r *SettingsRepository) Clear() error {
	query := `DELETE FROM settings WHERE id = 1`
	_, err := r.db.Exec(query)
	return err
}
