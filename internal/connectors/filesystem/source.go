package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// DefaultMaxFileSize bounds the files Read will load.
const DefaultMaxFileSize = 16 << 20

// Source reads files from the local filesystem.
type Source struct {
	maxSize  int64
	mu       sync.Mutex
	watchers []*fsnotify.Watcher
	closed   bool
}

// Option configures a Source.
type Option func(*Source)

// WithMaxFileSize overrides DefaultMaxFileSize. Values <= 0 disable the limit.
func WithMaxFileSize(n int64) Option {
	return func(s *Source) { s.maxSize = n }
}

// New creates a filesystem source.
func New(opts ...Option) *Source {
	s := &Source{maxSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Files walks root in lexical order and returns the regular, non-hidden
// files below it.
func (s *Source) Files(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if info.Mode().IsRegular() {
		return []string{root}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a regular file or directory: %w", root, domain.ErrInvalidInput)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			// Unreadable subtrees are skipped rather than failing the walk.
			logger.Warn("skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && isHidden(relativeTo(root, path)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Read loads path into a RawDocument.
func (s *Source) Read(ctx context.Context, path string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file: %w", path, domain.ErrInvalidInput)
	}
	if s.maxSize > 0 && info.Size() > s.maxSize {
		return nil, fmt.Errorf("%s: %d bytes exceeds limit of %d: %w",
			path, info.Size(), s.maxSize, domain.ErrInvalidInput)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.RawDocument{
		URI:      path,
		MIMEType: detectMIMEType(path),
		Content:  content,
		ModTime:  info.ModTime(),
	}, nil
}

// Watch reports file changes below root. New subdirectories are watched as
// they appear.
func (s *Source) Watch(ctx context.Context, root string) (<-chan domain.FileChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrSourceClosed
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory: %w", root, domain.ErrInvalidInput)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	s.watchers = append(s.watchers, watcher)

	changes := make(chan domain.FileChange)
	go s.watchLoop(ctx, watcher, root, changes)
	return changes, nil
}

func (s *Source) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, root string, changes chan<- domain.FileChange) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(relativeTo(root, event.Name)) {
				if err := addTree(watcher, event.Name); err != nil {
					logger.Warn("watching %s: %v", event.Name, err)
				}
				continue
			}
			change := handleFsEvent(root, event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", root, err)
		}
	}
}

// Close stops every watcher started by this source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	for _, w := range s.watchers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.watchers = nil
	return firstErr
}

// handleFsEvent maps an fsnotify event to a FileChange, or nil when the
// event is irrelevant (directories, hidden paths, chmod).
func handleFsEvent(root string, event fsnotify.Event) *domain.FileChange {
	if isHidden(relativeTo(root, event.Name)) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.FileChange{Type: domain.ChangeDeleted, Path: event.Name}
	case event.Has(fsnotify.Create):
		if !isRegular(event.Name) {
			return nil
		}
		return &domain.FileChange{Type: domain.ChangeCreated, Path: event.Name}
	case event.Has(fsnotify.Write):
		if !isRegular(event.Name) {
			return nil
		}
		return &domain.FileChange{Type: domain.ChangeUpdated, Path: event.Name}
	default:
		return nil
	}
}

// addTree watches dir and its non-hidden subdirectories.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(relativeTo(dir, path)) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// relativeTo returns path relative to root, or path itself if it is not below root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
