package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

func TestLoadSettings_Defaults(t *testing.T) {
	store := memory.WithPath("/home/me/.xapctl/config.toml")

	settings := LoadSettings(store)

	assert.Equal(t, domain.BackendEmbedded, settings.Backend)
	assert.Equal(t, "/home/me/.xapctl/index", settings.IndexPath)
	assert.Equal(t, domain.StemmerEnglish, settings.Stemmer)
	assert.Equal(t, domain.DefaultWorkers, settings.Workers)
	assert.Equal(t, domain.DefaultSearchLimit, settings.SearchLimit)
}

func TestLoadSettings_StoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyBackend, "Native")
	_ = store.Set(KeyIndexPath, "/srv/index")
	_ = store.Set(KeyStemmer, "french")
	_ = store.Set(KeyWorkers, int64(8))
	_ = store.Set(KeySearchLimit, 3)

	settings := LoadSettings(store)

	assert.Equal(t, domain.BackendNative, settings.Backend)
	assert.Equal(t, "/srv/index", settings.IndexPath)
	assert.Equal(t, domain.StemmerFrench, settings.Stemmer)
	assert.Equal(t, 8, settings.Workers)
	assert.Equal(t, 3, settings.SearchLimit)
}

func TestLoadSettings_ExplicitNoStemmer(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyStemmer, "none")

	assert.Equal(t, domain.StemmerNone, LoadSettings(store).Stemmer)
}

func TestLoadSettings_InvalidValuesUseDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyBackend, "quantum")
	_ = store.Set(KeyStemmer, "klingon")
	_ = store.Set(KeyWorkers, -2)
	_ = store.Set(KeySearchLimit, "many")

	settings := LoadSettings(store)
	defaults := domain.DefaultSettings()

	assert.Equal(t, defaults.Backend, settings.Backend)
	assert.Equal(t, defaults.Stemmer, settings.Stemmer)
	assert.Equal(t, defaults.Workers, settings.Workers)
	assert.Equal(t, defaults.SearchLimit, settings.SearchLimit)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyBackend, "NATIVE"))
	require.NoError(t, service.Set(KeyStemmer, "Kraaij_Pohlmann"))
	require.NoError(t, service.Set(KeyWorkers, "6"))
	require.NoError(t, service.Set(KeySearchLimit, " 20 "))
	require.NoError(t, service.Set(KeyIndexPath, "/tmp/idx"))

	assert.Equal(t, "native", store.GetString(KeyBackend))
	assert.Equal(t, "kraaij_pohlmann", store.GetString(KeyStemmer))
	assert.Equal(t, 6, store.GetInt(KeyWorkers))
	assert.Equal(t, 20, store.GetInt(KeySearchLimit))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StemmerDutchKraaijPohlmann, settings.Stemmer)
	assert.Equal(t, "/tmp/idx", settings.IndexPath)
}

func TestSettingsService_SetRejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{KeyBackend, "quantum"},
		{KeyIndexPath, ""},
		{KeyWorkers, "0"},
		{KeySearchLimit, "ten"},
		{"index.colour", "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}

	assert.ErrorIs(t, service.Set(KeyStemmer, "klingon"), domain.ErrUnsupportedType)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.ElementsMatch(t, []string{KeyBackend, KeyIndexPath, KeyStemmer, KeyWorkers, KeySearchLimit}, keys)
	assert.IsIncreasing(t, keys)
}
