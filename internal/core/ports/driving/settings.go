package driving

import "github.com/custodia-labs/conimex/internal/core/domain"

// SettingsService manages import settings.
type SettingsService interface {
	// Get retrieves current import settings.
	Get() (*domain.ImportSettings, error)

	// Save persists import settings.
	Save(settings *domain.ImportSettings) error

	// Set updates a single setting from its string form.
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	Set(key, value string) error

	// Keys returns the names of all settings, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ImportSettings
}
