package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
)

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.ImportSettings
	getErr   error
	setErr   error
	set      map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultImportSettings(),
		set:      make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.ImportSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.ImportSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"import.clear_every", "import.locales"}
}

func (m *mockSettingsService) GetDefaults() domain.ImportSettings {
	return domain.DefaultImportSettings()
}

// mockImporter implements driving.Importer for testing.
type mockImporter struct {
	result *driving.ImportResult
	err    error

	calls int
	doc   *domain.ExportDocument
	opts  driving.ImportOptions
}

func (m *mockImporter) Import(
	_ context.Context,
	doc *domain.ExportDocument,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	m.calls++
	m.doc = doc
	m.opts = opts
	if m.result == nil {
		return &driving.ImportResult{}, m.err
	}
	return m.result, m.err
}

// mockDecoder implements driven.ExportDecoder for testing.
type mockDecoder struct {
	doc *domain.ExportDocument
	err error
}

func (m *mockDecoder) Decode(r io.Reader) (*domain.ExportDocument, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

type closeCounter struct{ closed int }

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

// testEnv holds the mocks wired by setupCLITest.
type testEnv struct {
	settings *mockSettingsService
	importer *mockImporter
	decoder  *mockDecoder
	closer   *closeCounter
	schema   *domain.Schema

	schemaDirs       []string
	importerSettings domain.ImportSettings
}

func setupCLITest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		settings: newMockSettingsService(),
		importer: &mockImporter{},
		decoder:  &mockDecoder{doc: &domain.ExportDocument{}},
		closer:   &closeCounter{},
		schema: domain.NewSchema([]domain.ContentType{
			{
				Key:          "pages",
				SingularSlug: "page",
				Fields: []domain.FieldDefinition{
					{Key: "title", Type: "text", Localize: true},
					{Key: "body", Type: "html"},
				},
				Taxonomies: []string{"groups", "missing"},
				Locales:    []string{"en", "nl"},
			},
			{
				Key:          "entries",
				SingularSlug: "entry",
				Relations:    []domain.RelationDefinition{{Key: "pages", Multiple: true}},
			},
		}, []domain.Taxonomy{{Key: "groups"}}),
	}

	oldSettings, oldDecoder := settingsService, exportDecoder
	oldLoader, oldFactory, oldReporter := schemaLoader, importerFactory, reporterFactory

	SetServices(Services{
		Settings: env.settings,
		Decoder:  env.decoder,
		LoadSchema: func(dir string) (driven.SchemaRegistry, error) {
			env.schemaDirs = append(env.schemaDirs, dir)
			return env.schema, nil
		},
		NewImporter: func(_ driven.SchemaRegistry, s domain.ImportSettings) (driving.Importer, io.Closer, error) {
			env.importerSettings = s
			return env.importer, env.closer, nil
		},
	})

	t.Cleanup(func() {
		settingsService, exportDecoder = oldSettings, oldDecoder
		schemaLoader, importerFactory, reporterFactory = oldLoader, oldFactory, oldReporter
		resetFlags()
	})
	return env
}

// resetFlags clears flag state that cobra keeps between executions.
func resetFlags() {
	for _, cmd := range []*cobra.Command{importCmd, schemaCmd} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	importSkipUsers, importWatch, importDryRun = false, false, false
	importSchemaDir, importDataDir = "", ""
	importLocales = nil
	schemaDir = ""
	rootCmd.SetArgs(nil)
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
