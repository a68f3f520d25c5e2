// Command xapctl indexes local files into a Xapian database and searches them.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sercha-xapian/cgo/xapian"
	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/engine/embedded"
	"github.com/custodia-labs/sercha-xapian/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-xapian/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/core/services"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers"
	binding "github.com/custodia-labs/sercha-xapian/xapian"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap is the composition root: it wires adapters into services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	store, err := openConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings := services.LoadSettings(store)
	if opts.IndexPath != "" {
		abs, err := filepath.Abs(opts.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("resolving --db: %w", err)
		}
		settings.IndexPath = abs
	}
	if opts.Backend != "" {
		b := domain.Backend(strings.ToLower(opts.Backend))
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: --backend %q", domain.ErrInvalidInput, opts.Backend)
		}
		settings.Backend = b
	}

	s := &cli.Services{
		Settings: services.NewSettingsService(store),
	}

	engine, err := newEngine(settings.Backend)
	if err != nil {
		s.EngineErr = err
		return s, nil
	}

	b := binding.New(engine)
	source := filesystem.New()

	s.Index = services.NewIndexService(b, source, normalisers.NewDefaultRegistry(), settings)
	s.Search = services.NewSearchService(b, settings)
	s.Stem = services.NewStemService(b)
	s.Inspect = services.NewInspectService(b, settings)
	s.EngineName = b.EngineName()
	s.Close = source.Close
	return s, nil
}

func openConfig(path string) (*file.ConfigStore, error) {
	if path != "" {
		return file.OpenFile(path)
	}
	return file.NewConfigStore("")
}

func newEngine(backend domain.Backend) (driven.Engine, error) {
	if backend == domain.BackendNative {
		// A nil *Engine must not escape as a non-nil driven.Engine.
		e, err := xapian.New()
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return embedded.New(), nil
}
