package ports

import (
	"context"
	"quote-intake-service/internal/domain"
)

// Port: key/value content settings.
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
	// Upsert every key in one transaction.
	SaveSettings(ctx context.Context, s domain.Settings) error
}
