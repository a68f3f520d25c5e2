package driven

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// FileSource enumerates, reads and watches local files for indexing.
type FileSource interface {
	// Files lists the indexable files under root. A root that is a regular
	// file yields itself.
	Files(ctx context.Context, root string) ([]string, error)

	// Read loads a file and detects its MIME type.
	Read(ctx context.Context, path string) (*domain.RawDocument, error)

	// Watch reports changes below root until ctx is cancelled or the
	// source is closed, at which point the channel is closed.
	Watch(ctx context.Context, root string) (<-chan domain.FileChange, error)

	// Close stops all watches. It is safe to call more than once.
	Close() error
}
