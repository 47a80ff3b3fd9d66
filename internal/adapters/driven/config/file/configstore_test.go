package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestConfigStore(t)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	_, ok := store.Get("import.locales")
	assert.False(t, ok)
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[import\nlocales ="), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestConfigStore(t)

	require.NoError(t, store.Set("import.locales", []string{"en", "nl"}))
	require.NoError(t, store.Set("import.clear_every", 5))
	require.NoError(t, store.Set("import.skip_users", true))
	require.NoError(t, store.Set("schema.dir", "config/bolt"))

	assert.Equal(t, []string{"en", "nl"}, store.GetStringSlice("import.locales"))
	assert.Equal(t, 5, store.GetInt("import.clear_every"))
	assert.True(t, store.GetBool("import.skip_users"))
	assert.Equal(t, "config/bolt", store.GetString("schema.dir"))

	// Wrong types fall back to zero values.
	assert.Empty(t, store.GetString("import.clear_every"))
	assert.Zero(t, store.GetInt("schema.dir"))
	assert.False(t, store.GetBool("schema.dir"))
	assert.Nil(t, store.GetStringSlice("schema.dir"))
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	store, dir := newTestConfigStore(t)

	require.NoError(t, store.Set("import.default_status", "draft"))
	require.NoError(t, store.Set("import.locales", []string{"en"}))
	require.NoError(t, store.Set("storage.data_dir", "/var/lib/conimex"))

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[import]")
	assert.Contains(t, string(data), "[storage]")
	assert.NotContains(t, string(data), `"import.default_status"`)
}

func TestConfigStore_SaveReload(t *testing.T) {
	store, dir := newTestConfigStore(t)

	require.NoError(t, store.Set("import.locales", []string{"en", "de"}))
	require.NoError(t, store.Set("import.clear_every", 10))
	require.NoError(t, store.Set("import.skip_users", true))
	require.NoError(t, store.Set("schema.dir", "/srv/bolt"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "de"}, reloaded.GetStringSlice("import.locales"))
	assert.Equal(t, 10, reloaded.GetInt("import.clear_every"))
	assert.True(t, reloaded.GetBool("import.skip_users"))
	assert.Equal(t, "/srv/bolt", reloaded.GetString("schema.dir"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[import]
locales = ["en", "nl"]
clear_every = 20
default_status = "held"

[schema]
dir = "site/config/bolt"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "nl"}, store.GetStringSlice("import.locales"))
	assert.Equal(t, 20, store.GetInt("import.clear_every"))
	assert.Equal(t, "held", store.GetString("import.default_status"))
	assert.Equal(t, "site/config/bolt", store.GetString("schema.dir"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.GetString("schema.dir"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, _ := newTestConfigStore(t)

	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("import.clear_every", i+1)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("import.clear_every")
		}()
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("import.clear_every"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"import.locales":     []string{"en"},
		"import.clear_every": 3,
		"top":                "level",
	})

	assert.Equal(t, map[string]any{
		"import": map[string]any{
			"locales":     []string{"en"},
			"clear_every": 3,
		},
		"top": "level",
	}, nested)
	assert.Equal(t, map[string]any{
		"import.locales":     []string{"en"},
		"import.clear_every": 3,
		"top":                "level",
	}, flattenMap(nested, ""))
}
