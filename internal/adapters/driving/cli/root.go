package cli

import (
	"errors"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flag values.
var (
	verboseFlag bool
	configFlag  string
	dbFlag      string
	backendFlag string
)

// Options carries the persistent flags to the composition root.
type Options struct {
	// ConfigPath overrides the configuration file location.
	ConfigPath string

	// IndexPath overrides index.path.
	IndexPath string

	// Backend overrides engine.backend.
	Backend string
}

// Services holds the driving ports used by the commands.
type Services struct {
	Settings driving.SettingsService
	Index    driving.IndexService
	Search   driving.SearchService
	Stem     driving.StemService
	Inspect  driving.InspectService

	// EngineName describes the engine the services run on.
	EngineName string

	// EngineErr is set when the engine could not be created. Settings
	// remain usable so the backend can be switched back.
	EngineErr error

	// Close releases resources held by the services.
	Close func() error
}

// Bootstrap builds services from the resolved options.
type Bootstrap func(opts Options) (*Services, error)

var (
	servicesMu sync.Mutex
	bootstrap  Bootstrap
	installed  *Services
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "xapctl",
	Short: "Index and search local files with Xapian",
	Long: `xapctl indexes local files into a Xapian database and searches them.

It runs on the embedded pure-Go engine by default, or on libxapian when
built with -tags xapian and configured with --backend native.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log pipeline steps to stderr")
	flags.StringVar(&configFlag, "config", "", "config file (default ~/.xapctl/config.toml)")
	flags.StringVar(&dbFlag, "db", "", "index directory (overrides index.path)")
	flags.StringVar(&backendFlag, "backend", "", "engine backend: embedded or native (overrides engine.backend)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	bootstrap = b
	installed = nil
}

// SetServices installs ready-made services, bypassing Bootstrap.
func SetServices(s *Services) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	installed = s
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// getServices returns the installed services, bootstrapping them if needed.
func getServices() (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	if installed != nil {
		return installed, nil
	}
	if bootstrap == nil {
		return nil, errNotConfigured
	}
	s, err := bootstrap(Options{
		ConfigPath: configFlag,
		IndexPath:  dbFlag,
		Backend:    backendFlag,
	})
	if err != nil {
		return nil, err
	}
	installed = s
	return s, nil
}

// engineServices is getServices for commands that need the engine.
func engineServices() (*Services, error) {
	s, err := getServices()
	if err != nil {
		return nil, err
	}
	if s.EngineErr != nil {
		return nil, s.EngineErr
	}
	return s, nil
}

func closeServices() {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	if installed != nil && installed.Close != nil {
		if err := installed.Close(); err != nil {
			logger.Warn("closing services: %v", err)
		}
	}
}
