package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".xapctl"), dir)
}

func TestOpenFile_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "xapctl.toml")

	store, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("index.stemmer", "french"))

	assert.FileExists(t, path)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("engine.backend", "embedded"))

	val, ok := store.Get("engine.backend")
	assert.True(t, ok)
	assert.Equal(t, "embedded", val)

	_, ok = store.Get("engine.missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("index.workers", 8))
	require.NoError(t, store.Set("index.path", "/tmp/db"))

	assert.Equal(t, 8, store.GetInt("index.workers"))
	assert.Equal(t, "/tmp/db", store.GetString("index.path"))
	assert.Zero(t, store.GetInt("index.path"))
	assert.Empty(t, store.GetString("index.workers"))
	assert.Empty(t, store.GetString("nothing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("index.stemmer", "german"))
	require.NoError(t, store1.Set("search.limit", 25))

	// A new instance loads from the file, where TOML integers become int64.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "german", store2.GetString("index.stemmer"))
	assert.Equal(t, 25, store2.GetInt("search.limit"))
	val, _ := store2.Get("search.limit")
	assert.IsType(t, int64(0), val)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("engine.backend", "native"))
	require.NoError(t, store.Set("index.path", "/srv/index"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[engine]")
	assert.Contains(t, content, "[index]")
	assert.NotContains(t, content, "engine.backend")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[engine]\nbackend = \"native\"\n\n[index]\nworkers = 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "native", store.GetString("engine.backend"))
	assert.Equal(t, 2, store.GetInt("index.workers"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("index.path", "/a"))
	assert.Error(t, store.Set("index", "flat"))

	// The rejected value is not kept in memory.
	_, ok := store.Get("index")
	assert.False(t, ok)
	assert.Equal(t, "/a", store.GetString("index.path"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "k.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestUnflattenMap(t *testing.T) {
	tree, err := unflattenMap(map[string]any{
		"engine.backend": "embedded",
		"index.path":     "/p",
		"top":            1,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"engine": map[string]any{"backend": "embedded"},
		"index":  map[string]any{"path": "/p"},
		"top":    1,
	}, tree)

	assert.Equal(t, map[string]any{"engine.backend": "embedded", "index.path": "/p", "top": 1},
		flattenMap(tree, ""))
}
