package driven

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// Normaliser extracts indexable text from raw file content.
// Each normaliser handles specific MIME types (e.g., Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the title and body text of a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the human-readable title, indexed with the title prefix.
	Title string

	// Content is the plain text body handed to the term generator.
	Content string
}
