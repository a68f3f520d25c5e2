package driving

import "github.com/custodia-labs/sercha-xapian/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current settings, applying defaults.
	Get() (domain.Settings, error)

	// Set validates and persists a single setting.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string
}
