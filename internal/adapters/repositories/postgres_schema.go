package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
	"sort"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQuotesQuery := `
	CREATE TABLE IF NOT EXISTS quotes (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT,
		shop_name TEXT,
		shop_address TEXT NOT NULL,
		shop_latitude DOUBLE PRECISION NOT NULL,
		shop_longitude DOUBLE PRECISION NOT NULL,
		machine_type TEXT,
		issue_description TEXT NOT NULL,
		preferred_date DATE,
		travel_distance DOUBLE PRECISION,
		estimated_cost DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createGalleryQuery := `
	CREATE TABLE IF NOT EXISTS gallery_images (
		id BIGSERIAL PRIMARY KEY,
		title TEXT,
		description TEXT,
		image_key TEXT NOT NULL UNIQUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS app_settings (
		setting_key TEXT PRIMARY KEY,
		setting_value TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_quotes_created_at
	ON quotes(created_at DESC);
	`

	statements := []string{
		createQuotesQuery,
		createGalleryQuery,
		createSettingsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate app_settings with defaults. Existing values are left untouched.
func SeedSettings(ctx context.Context, db *sql.DB, defaults domain.Settings) error {
	if db == nil {
		return errors.New("seed settings: DB is nil")
	}

	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		if !domain.IsKnownSetting(k) {
			return fmt.Errorf("seed settings: unknown key %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed settings: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO app_settings (
		setting_key,
		setting_value
	)
	VALUES ($1, $2)
	ON CONFLICT (setting_key) DO NOTHING;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed settings: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range keys {
		if _, err := stmt.ExecContext(ctx, k, defaults[k]); err != nil {
			return fmt.Errorf("seed settings: insert key=%s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed settings: commit tx: %w", err)
	}

	return nil
}
