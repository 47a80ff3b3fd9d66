package domain

// Default import settings.
const (
	// DefaultClearEvery is how many records are imported between releases of
	// the unit of work's tracked entities.
	DefaultClearEvery = 3

	// DefaultSchemaDir is where content type and taxonomy declarations live.
	DefaultSchemaDir = "config/bolt"

	// DefaultUserLocale is assigned to imported users without a locale.
	DefaultUserLocale = "en"

	// DefaultBackendTheme is assigned to imported users without a theme.
	DefaultBackendTheme = "default"
)

// ImportSettings controls how an export document is imported.
type ImportSettings struct {
	// Locales are the locales for which localized side-channel data is applied.
	// When empty, each content type's declared locales are used.
	Locales []string

	// ClearEvery releases tracked entities after every Nth record.
	ClearEvery int

	// DefaultStatus is the status of newly created content.
	DefaultStatus string

	// SkipUsers skips the users block.
	SkipUsers bool

	// SchemaDir holds contenttypes.yaml and taxonomy.yaml.
	SchemaDir string

	// DataDir holds the SQLite database. Empty means the default location.
	DataDir string

	// DryRun imports into an in-memory store. Nothing is persisted.
	// It is a per-run option and never stored in the config file.
	DryRun bool
}

// DefaultImportSettings returns settings with sensible defaults.
func DefaultImportSettings() ImportSettings {
	return ImportSettings{
		ClearEvery:    DefaultClearEvery,
		DefaultStatus: StatusPublished,
		SchemaDir:     DefaultSchemaDir,
	}
}

// Validate checks the settings and fills in zero values with defaults.
func (s *ImportSettings) Validate() error {
	if s.ClearEvery < 0 {
		return ErrInvalidInput
	}
	if s.ClearEvery == 0 {
		s.ClearEvery = DefaultClearEvery
	}
	if s.DefaultStatus == "" {
		s.DefaultStatus = StatusPublished
	}
	if !IsValidStatus(s.DefaultStatus) {
		return ErrInvalidInput
	}
	if s.SchemaDir == "" {
		s.SchemaDir = DefaultSchemaDir
	}
	return nil
}

// IsValidStatus returns true if the content status is recognised.
func IsValidStatus(status string) bool {
	switch status {
	case StatusPublished, StatusHeld, StatusDraft, StatusTimed:
		return true
	default:
		return false
	}
}
