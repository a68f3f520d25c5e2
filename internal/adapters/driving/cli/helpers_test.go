package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/engine/embedded"
	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-xapian/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-xapian/internal/core/services"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

// testServices wires the real services over the embedded engine with an
// in-memory config rooted in a temp directory.
type testServices struct {
	*Services
	docs string
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	home := t.TempDir()
	store := memory.WithPath(filepath.Join(home, "config.toml"))
	settings := services.LoadSettings(store)
	settings.Workers = 2

	binding := xapian.New(embedded.New())
	source := filesystem.New()

	s := &Services{
		Settings:   services.NewSettingsService(store),
		Index:      services.NewIndexService(binding, source, normalisers.NewDefaultRegistry(), settings),
		Search:     services.NewSearchService(binding, settings),
		Stem:       services.NewStemService(binding),
		Inspect:    services.NewInspectService(binding, settings),
		EngineName: binding.EngineName(),
		Close:      source.Close,
	}
	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		_ = source.Close()
		resetFlags()
	})
	return &testServices{Services: s, docs: t.TempDir()}
}

func (s *testServices) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(s.docs, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// seed writes a small corpus and indexes it through the index command.
func (s *testServices) seed(t *testing.T) {
	t.Helper()
	s.write(t, "fox.txt", "The quick brown fox jumps")
	s.write(t, "dog.md", "# Lazy Dog\n\nThe dog sleeps all day")
	_, err := runCmd(t, "index", s.docs)
	require.NoError(t, err)
}

// runCmd executes the root command with args and returns its output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag variables, which cobra keeps between runs.
func resetFlags() {
	verboseFlag = false
	configFlag = ""
	dbFlag = ""
	backendFlag = ""
	indexWatch = false
	searchOp = "and"
	searchLimit = 0
	searchJSON = false
	stemLanguage = "english"
	inspectJSON = false
}
