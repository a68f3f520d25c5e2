package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index [paths...]", indexCmd.Use)
}

func TestIndexCmd_HasWatchFlag(t *testing.T) {
	flag := indexCmd.Flags().Lookup("watch")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestIndexCmd_IndexesDirectory(t *testing.T) {
	env := setupTestServices(t)
	env.write(t, "fox.txt", "The quick brown fox jumps")
	env.write(t, "notes/dog.md", "# Lazy Dog\n\nThe dog sleeps")

	out, err := runCmd(t, "index", env.docs)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 files, skipped 0, 2 documents in index")
}

func TestIndexCmd_ReportsSkipped(t *testing.T) {
	env := setupTestServices(t)
	env.write(t, "fox.txt", "The quick brown fox jumps")
	env.write(t, "image.png", "\x89PNG")
	missing := filepath.Join(env.docs, "missing")

	out, err := runCmd(t, "index", env.docs, missing)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 1 files, skipped 2")
	assert.Contains(t, out, "skipped "+filepath.Join(env.docs, "image.png"))
	assert.Contains(t, out, "skipped "+missing)
}

func TestIndexCmd_ReindexReplaces(t *testing.T) {
	env := setupTestServices(t)
	env.write(t, "fox.txt", "The quick brown fox jumps")

	_, err := runCmd(t, "index", env.docs)
	require.NoError(t, err)
	out, err := runCmd(t, "index", env.docs)

	require.NoError(t, err)
	assert.Contains(t, out, "1 documents in index")
}

func TestIndexCmd_WatchRequiresSingleDirectory(t *testing.T) {
	env := setupTestServices(t)

	_, err := runCmd(t, "index", "--watch", env.docs, t.TempDir())

	assert.ErrorContains(t, err, "exactly one directory")
}
