package driven

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// IndexStore persists documents for the embedded engine.
// Changes made through a store are visible to the same store immediately
// and become durable on Commit.
type IndexStore interface {
	// UUID returns the identifier assigned when the index was created.
	UUID() string

	// DocCount returns the number of stored documents.
	DocCount(ctx context.Context) (uint32, error)

	// Get loads a document. Unknown IDs return domain.ErrNotFound.
	Get(ctx context.Context, id domain.DocumentID) (*domain.StoredDocument, error)

	// Add stores doc under a new ID.
	Add(ctx context.Context, doc domain.StoredDocument) (domain.DocumentID, error)

	// Replace stores doc in place of the documents indexed by uniqueTerm.
	// The lowest matching ID is reused; without a match doc gets a new ID.
	Replace(ctx context.Context, uniqueTerm string, doc domain.StoredDocument) (domain.DocumentID, error)

	// DeleteByTerm removes the documents indexed by term and returns how many.
	DeleteByTerm(ctx context.Context, term string) (int, error)

	// Terms lists distinct terms starting with prefix in byte order.
	Terms(ctx context.Context, prefix string) ([]string, error)

	// Postings lists the documents indexed by term in ID order.
	Postings(ctx context.Context, term string) ([]domain.PostingEntry, error)

	// Commit makes pending changes durable.
	Commit() error

	// Close commits pending changes and releases the store.
	Close() error
}
