package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/engine/embedded"
	"github.com/custodia-labs/sercha-xapian/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

type testEnv struct {
	binding  *xapian.Binding
	settings domain.Settings
	source   *filesystem.Source
	docs     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	settings := domain.DefaultSettings()
	settings.IndexPath = filepath.Join(t.TempDir(), "index")
	settings.Workers = 2

	source := filesystem.New()
	t.Cleanup(func() { _ = source.Close() })

	return &testEnv{
		binding:  xapian.New(embedded.New()),
		settings: settings,
		source:   source,
		docs:     t.TempDir(),
	}
}

func (e *testEnv) indexer() *IndexService {
	return NewIndexService(e.binding, e.source, normalisers.NewDefaultRegistry(), e.settings)
}

func (e *testEnv) searcher() *SearchService {
	return NewSearchService(e.binding, e.settings)
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.docs, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// seed writes and indexes a small corpus.
func (e *testEnv) seed(t *testing.T) (fox, dog string) {
	t.Helper()
	fox = e.write(t, "fox.txt", "The quick brown fox jumps")
	dog = e.write(t, "dog.md", "# Lazy Dog\n\nThe dog sleeps all day")
	_, err := e.indexer().IndexFiles(t.Context(), []string{e.docs})
	require.NoError(t, err)
	return fox, dog
}
