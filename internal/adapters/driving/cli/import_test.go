package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
)

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pages: []\n"), 0600))
	return path
}

func TestImportCmd_Use(t *testing.T) {
	assert.Equal(t, "import <file>", importCmd.Use)
	assert.Equal(t, "Import an export file", importCmd.Short)
}

func TestImportCmd_RequiresFile(t *testing.T) {
	setupCLITest(t)

	_, err := execute("import")

	assert.Error(t, err)
}

func TestImportCmd_NotConfigured(t *testing.T) {
	setupCLITest(t)
	importerFactory = nil

	_, err := execute("import", writeExport(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import service not configured")
}

func TestImportCmd_PrintsSummary(t *testing.T) {
	env := setupCLITest(t)
	env.importer.result = &driving.ImportResult{
		Blocks: []driving.BlockResult{
			{Key: "pages", Records: 1200, Created: 1000, Updated: 200},
			{Key: "entries", Records: 3, Created: 3, Skipped: 1},
		},
		Users:    driving.UserResult{Created: 2, Skipped: 1},
		Duration: 1500 * time.Millisecond,
	}
	path := writeExport(t)

	out, err := execute("import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Reading "+path)
	assert.Contains(t, out, "Imported 1203 records in 2 blocks (1,003 created, 200 updated, 1 skipped) in 1.5s")
	assert.Contains(t, out, "Users: 2 created, 1 already present, 0 invalid")
	assert.Equal(t, 1, env.importer.calls)
	assert.Same(t, env.decoder.doc, env.importer.doc)
	assert.Equal(t, 1, env.closer.closed)
	assert.Equal(t, []string{domain.DefaultSchemaDir}, env.schemaDirs)
}

func TestImportCmd_FlagsOverrideSettings(t *testing.T) {
	env := setupCLITest(t)
	env.settings.settings.Locales = []string{"de"}

	_, err := execute("import", writeExport(t),
		"--skip-users", "--schema-dir", "site/bolt", "--data-dir", "/tmp/data", "--locale", "en,nl")

	require.NoError(t, err)
	assert.True(t, env.importer.opts.SkipUsers)
	assert.NotNil(t, env.importer.opts.Reporter)
	assert.Equal(t, []string{"site/bolt"}, env.schemaDirs)
	assert.Equal(t, "site/bolt", env.importerSettings.SchemaDir)
	assert.Equal(t, "/tmp/data", env.importerSettings.DataDir)
	assert.Equal(t, []string{"en", "nl"}, env.importerSettings.Locales)
	assert.True(t, env.importerSettings.SkipUsers)
}

func TestImportCmd_StoredSettingsUsed(t *testing.T) {
	env := setupCLITest(t)
	env.settings.settings.Locales = []string{"de"}
	env.settings.settings.ClearEvery = 7

	_, err := execute("import", writeExport(t))

	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, env.importerSettings.Locales)
	assert.Equal(t, 7, env.importerSettings.ClearEvery)
	assert.False(t, env.importer.opts.SkipUsers)
}

func TestImportCmd_AbortedImportFails(t *testing.T) {
	env := setupCLITest(t)
	env.importer.result = &driving.ImportResult{
		Blocks: []driving.BlockResult{{Key: "foo", Records: 2, Created: 2, Aborted: true}},
	}
	env.importer.err = fmt.Errorf("%w: block foo: %w", domain.ErrImportAborted, domain.ErrUnknownContentType)

	out, err := execute("import", writeExport(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrImportAborted)
	assert.ErrorIs(t, err, domain.ErrUnknownContentType)
	assert.Contains(t, out, "Block foo stopped after 2 records")
	assert.Equal(t, 1, env.closer.closed)
}

func TestImportCmd_DecodeError(t *testing.T) {
	env := setupCLITest(t)
	env.decoder.err = domain.ErrInvalidInput

	_, err := execute("import", writeExport(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, env.importer.calls)
}

func TestImportCmd_MissingFile(t *testing.T) {
	setupCLITest(t)

	_, err := execute("import", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportCmd_SettingsError(t *testing.T) {
	env := setupCLITest(t)
	env.settings.getErr = errors.New("broken config")

	_, err := execute("import", writeExport(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken config")
}

func TestImportCmd_InvalidSettings(t *testing.T) {
	env := setupCLITest(t)
	env.settings.settings.DefaultStatus = "bogus"

	_, err := execute("import", writeExport(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, env.importer.calls)
}

func TestImportCmd_DryRun(t *testing.T) {
	env := setupCLITest(t)

	out, err := execute("import", writeExport(t), "--dry-run")

	require.NoError(t, err)
	assert.True(t, env.importerSettings.DryRun)
	assert.Contains(t, out, "Dry run: nothing was written.")
}
