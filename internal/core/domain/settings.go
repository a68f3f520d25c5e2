package domain

const unknownDescription = "Unknown"

// Backend selects which engine implementation serves the binding layer.
type Backend string

// Available backends.
const (
	// BackendEmbedded is the pure-Go engine backed by a SQLite file.
	BackendEmbedded Backend = "embedded"

	// BackendNative is libxapian through cgo.
	BackendNative Backend = "native"
)

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	return b == BackendEmbedded || b == BackendNative
}

// String returns the string representation.
func (b Backend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b Backend) Description() string {
	switch b {
	case BackendEmbedded:
		return "Embedded (pure Go, SQLite storage)"
	case BackendNative:
		return "Native (libxapian via cgo)"
	default:
		return unknownDescription
	}
}

// Settings holds the resolved application configuration.
type Settings struct {
	// Backend selects the engine implementation.
	Backend Backend

	// IndexPath is the database location.
	IndexPath string

	// Stemmer is applied when indexing and searching.
	Stemmer Stemmer

	// Workers bounds concurrent file reads during indexing.
	Workers int

	// SearchLimit is the default number of results.
	SearchLimit int
}

// Default setting values.
const (
	DefaultWorkers     = 4
	DefaultSearchLimit = 10
)

// DefaultSettings returns settings with sensible defaults.
// IndexPath is left empty for the caller to resolve.
func DefaultSettings() Settings {
	return Settings{
		Backend:     BackendEmbedded,
		Stemmer:     StemmerEnglish,
		Workers:     DefaultWorkers,
		SearchLimit: DefaultSearchLimit,
	}
}
