package driving

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// WatchHandler receives each change applied by IndexService.Watch, with
// the error that prevented it from being applied, if any.
type WatchHandler func(change domain.FileChange, err error)

// IndexService adds local files to the index.
type IndexService interface {
	// IndexFiles indexes every file under paths, replacing earlier
	// versions of the same files.
	IndexFiles(ctx context.Context, paths []string) (*domain.IndexReport, error)

	// Watch keeps the index in sync with dir until ctx is cancelled.
	Watch(ctx context.Context, dir string, handler WatchHandler) error
}
