package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-xapian/internal/core/services"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "xapctl", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"verbose", "config", "db", "backend"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"index", "search", "stem", "inspect", "languages", "config", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestGetServices_NotConfigured(t *testing.T) {
	SetBootstrap(nil)
	t.Cleanup(resetFlags)

	_, err := runCmd(t, "search", "fox")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestGetServices_BootstrapReceivesFlags(t *testing.T) {
	var got Options
	calls := 0
	SetBootstrap(func(opts Options) (*Services, error) {
		calls++
		got = opts
		return &Services{Settings: services.NewSettingsService(memory.NewConfigStore())}, nil
	})
	t.Cleanup(func() {
		SetBootstrap(nil)
		resetFlags()
	})

	_, err := runCmd(t, "--config", "/tmp/x.toml", "--db", "/tmp/idx", "--backend", "native", "config")
	require.NoError(t, err)

	assert.Equal(t, Options{ConfigPath: "/tmp/x.toml", IndexPath: "/tmp/idx", Backend: "native"}, got)

	// Services are built once.
	_, err = runCmd(t, "config")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetServices_BootstrapError(t *testing.T) {
	boom := errors.New("boom")
	SetBootstrap(func(Options) (*Services, error) { return nil, boom })
	t.Cleanup(func() {
		SetBootstrap(nil)
		resetFlags()
	})

	_, err := runCmd(t, "config")

	assert.ErrorIs(t, err, boom)
}

func TestEngineServices_EngineErr(t *testing.T) {
	engineErr := errors.New("libxapian missing")
	SetServices(&Services{
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		EngineErr: engineErr,
	})
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})

	_, err := runCmd(t, "search", "fox")
	assert.ErrorIs(t, err, engineErr)

	// Settings stay reachable so the backend can be switched back.
	out, err := runCmd(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "libxapian missing")
}

func TestCloseServices(t *testing.T) {
	closed := 0
	SetServices(&Services{Close: func() error {
		closed++
		return errors.New("already closed")
	}})
	t.Cleanup(func() { SetServices(nil) })

	closeServices()

	assert.Equal(t, 1, closed)
}
