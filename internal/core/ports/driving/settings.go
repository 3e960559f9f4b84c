package driving

import "github.com/custodia-labs/cashbox-cli/internal/core/domain"

// SettingsService manages station settings.
type SettingsService interface {
	// Get retrieves current station settings, falling back to defaults.
	Get() (*domain.StationSettings, error)

	// Save validates and persists station settings.
	Save(settings *domain.StationSettings) error

	// Set updates a single setting by key, e.g. "pricing.max_price".
	Set(key, value string) error

	// Keys lists the setting keys accepted by Set.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.StationSettings
}
