package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLocales       = "import.locales"
	keyClearEvery    = "import.clear_every"
	keyDefaultStatus = "import.default_status"
	keySkipUsers     = "import.skip_users"
	keySchemaDir     = "schema.dir"
	keyDataDir       = "storage.data_dir"
)

// SettingsService manages import settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current import settings.
func (s *SettingsService) Get() (*domain.ImportSettings, error) {
	defaults := domain.DefaultImportSettings()

	settings := &domain.ImportSettings{
		Locales:       s.configStore.GetStringSlice(keyLocales),
		ClearEvery:    s.getInt(keyClearEvery, defaults.ClearEvery),
		DefaultStatus: s.getStatus(defaults.DefaultStatus),
		SkipUsers:     s.configStore.GetBool(keySkipUsers),
		SchemaDir:     s.getString(keySchemaDir, defaults.SchemaDir),
		DataDir:       s.configStore.GetString(keyDataDir), // Empty means the default location
	}

	return settings, nil
}

// Save persists import settings.
func (s *SettingsService) Save(settings *domain.ImportSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	locales := settings.Locales
	if locales == nil {
		locales = []string{}
	}
	if err := s.configStore.Set(keyLocales, locales); err != nil {
		return fmt.Errorf("save locales: %w", err)
	}
	if err := s.configStore.Set(keyClearEvery, settings.ClearEvery); err != nil {
		return fmt.Errorf("save clear_every: %w", err)
	}
	if err := s.configStore.Set(keyDefaultStatus, settings.DefaultStatus); err != nil {
		return fmt.Errorf("save default_status: %w", err)
	}
	if err := s.configStore.Set(keySkipUsers, settings.SkipUsers); err != nil {
		return fmt.Errorf("save skip_users: %w", err)
	}
	if err := s.configStore.Set(keySchemaDir, settings.SchemaDir); err != nil {
		return fmt.Errorf("save schema dir: %w", err)
	}
	if settings.DataDir != "" {
		if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
			return fmt.Errorf("save data dir: %w", err)
		}
	}

	return s.configStore.Save()
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyLocales:
		settings.Locales = splitList(value)
	case keyClearEvery:
		n, err := cast.ToIntE(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		settings.ClearEvery = n
	case keyDefaultStatus:
		if !domain.IsValidStatus(value) {
			return fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, value)
		}
		settings.DefaultStatus = value
	case keySkipUsers:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.SkipUsers = b
	case keySchemaDir:
		settings.SchemaDir = value
	case keyDataDir:
		settings.DataDir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the names of all settings, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{keyLocales, keyClearEvery, keyDefaultStatus, keySkipUsers, keySchemaDir, keyDataDir}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ImportSettings {
	return domain.DefaultImportSettings()
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getStatus(defaultVal string) string {
	if val := s.configStore.GetString(keyDefaultStatus); domain.IsValidStatus(val) {
		return val
	}
	return defaultVal
}

// splitList parses a comma separated list, dropping empty items.
func splitList(value string) []string {
	result := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
