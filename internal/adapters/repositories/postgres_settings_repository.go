package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"sort"
)

// Postgres-backed implementation of the SettingsRepository port.
type PostgresSettingsRepository struct{ DB *sql.DB }

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{DB: db}
}

func (r *PostgresSettingsRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	if r.DB == nil {
		return nil, errors.New("postgres settings repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT setting_key, setting_value FROM app_settings;`)
	if err != nil {
		return nil, fmt.Errorf("load settings: query app_settings table: %w", err)
	}
	defer rows.Close()

	out := make(domain.Settings)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("load settings: scan row: %w", err)
		}
		out[k] = v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: row iteration: %w", err)
	}

	return out, nil
}

// Upsert every key in s within a single transaction.
func (r *PostgresSettingsRepository) SaveSettings(ctx context.Context, s domain.Settings) (err error) {
	defer obs.Time(ctx, "repo.SaveSettings")(&err)

	if r.DB == nil {
		return errors.New("postgres settings repository: DB is nil")
	}

	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save settings: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO app_settings (
		setting_key,
		setting_value,
		updated_at
	)
	VALUES ($1, $2, now())
	ON CONFLICT (setting_key)
	DO UPDATE SET
		setting_value = EXCLUDED.setting_value,
		updated_at = now();
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("save settings: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, k := range keys {
		if _, err := stmt.ExecContext(ctx, k, s[k]); err != nil {
			return fmt.Errorf("save settings: upsert key=%s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save settings: commit tx: %w", err)
	}
	return nil
}
