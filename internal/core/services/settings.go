package services

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackend     = "engine.backend"
	KeyIndexPath   = "index.path"
	KeyStemmer     = "index.stemmer"
	KeyWorkers     = "index.workers"
	KeySearchLimit = "search.limit"
)

// DefaultIndexDir is the index directory created next to the config file.
const DefaultIndexDir = "index"

// LoadSettings resolves typed settings from store. Missing keys take their
// defaults; unparseable values are reported and replaced by the default.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()

	if v := store.GetString(KeyBackend); v != "" {
		if b := domain.Backend(strings.ToLower(v)); b.IsValid() {
			settings.Backend = b
		} else {
			logger.Warn("ignoring %s = %q: unknown backend", KeyBackend, v)
		}
	}

	settings.IndexPath = store.GetString(KeyIndexPath)
	if settings.IndexPath == "" {
		settings.IndexPath = filepath.Join(filepath.Dir(store.Path()), DefaultIndexDir)
	}

	if _, ok := store.Get(KeyStemmer); ok {
		v := store.GetString(KeyStemmer)
		if s, err := domain.ParseStemmer(v); err == nil {
			settings.Stemmer = s
		} else {
			logger.Warn("ignoring %s = %q: %v", KeyStemmer, v, err)
		}
	}

	if n := store.GetInt(KeyWorkers); n > 0 {
		settings.Workers = n
	}
	if n := store.GetInt(KeySearchLimit); n > 0 {
		settings.SearchLimit = n
	}

	return settings
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves the current settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	return LoadSettings(s.configStore), nil
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyBackend, KeyIndexPath, KeyStemmer, KeyWorkers, KeySearchLimit}
	slices.Sort(keys)
	return keys
}

// Set validates value for key, normalises it and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyBackend:
		b := domain.Backend(strings.ToLower(value))
		if !b.IsValid() {
			return fmt.Errorf("%w: backend %q (want %s or %s)",
				domain.ErrInvalidInput, value, domain.BackendEmbedded, domain.BackendNative)
		}
		stored = b.String()
	case KeyIndexPath:
		if value == "" {
			return fmt.Errorf("%w: empty index path", domain.ErrInvalidInput)
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", value, err)
		}
		stored = abs
	case KeyStemmer:
		st, err := domain.ParseStemmer(value)
		if err != nil {
			return err
		}
		stored = st.LanguageID()
	case KeyWorkers, KeySearchLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
