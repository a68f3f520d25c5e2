package driving

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search combines words with op and returns up to limit hits.
	// A limit <= 0 selects the configured default.
	Search(ctx context.Context, words []string, op domain.QueryOp, limit int) (*domain.SearchResults, error)
}

// StemService exposes the engine's stemmers.
type StemService interface {
	// Stem reduces each word with the stemmer for language.
	Stem(language domain.Stemmer, words []string) ([]string, error)
}

// InspectService reads stored documents.
type InspectService interface {
	// Inspect returns the stored terms, values and data of document id.
	Inspect(ctx context.Context, id domain.DocumentID) (*domain.DocumentDetails, error)
}
