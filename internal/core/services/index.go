package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// progressInterval throttles progress messages during large runs.
const progressInterval = 2 * time.Second

// IndexService reads local files and writes them to the index.
type IndexService struct {
	binding  *xapian.Binding
	source   driven.FileSource
	registry driven.NormaliserRegistry
	settings domain.Settings
}

// NewIndexService creates a new index service.
func NewIndexService(
	binding *xapian.Binding,
	source driven.FileSource,
	registry driven.NormaliserRegistry,
	settings domain.Settings,
) *IndexService {
	return &IndexService{
		binding:  binding,
		source:   source,
		registry: registry,
		settings: settings,
	}
}

// prepared is a file read and normalised by a worker, ready to be written.
type prepared struct {
	raw    *domain.RawDocument
	result *driven.NormaliseResult
}

// IndexFiles indexes every file below paths. Files are read and
// normalised concurrently; engine calls stay on the calling goroutine
// because native handles are not safe for concurrent use.
func (s *IndexService) IndexFiles(ctx context.Context, paths []string) (*domain.IndexReport, error) {
	logger.Section("Indexing")

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths to index", domain.ErrInvalidInput)
	}

	report := &domain.IndexReport{Skipped: make(map[string]string)}
	files, err := s.collect(ctx, paths, report)
	if err != nil {
		return nil, err
	}
	logger.Info("Found %d files", len(files))

	db, err := s.binding.OpenWritableDatabase(s.settings.IndexPath, domain.DBCreateOrOpen)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var skippedMu sync.Mutex
	skip := func(path string, err error) {
		logger.Debug("Skipping %s: %v", path, err)
		skippedMu.Lock()
		report.Skipped[path] = err.Error()
		skippedMu.Unlock()
	}

	results := make(chan prepared)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.settings.Workers))
	go func() {
		defer close(results)
		for _, path := range files {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				p, err := s.prepare(gctx, path)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					skip(path, err)
					return nil
				}
				select {
				case results <- p:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
	}()

	progress := logger.NewThrottle(progressInterval)
	var writeErr error
	for p := range results {
		if writeErr != nil {
			continue
		}
		if err := s.write(db, p); err != nil {
			writeErr = err
			cancel()
			continue
		}
		report.Indexed++
		progress.Info("Indexed %d/%d files", report.Indexed, len(files))
	}

	if writeErr != nil {
		return nil, writeErr
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := db.Commit(); err != nil {
		return nil, err
	}

	report.DocCount = db.DocCount()
	logger.Info("Indexed %d files, skipped %d, %d documents in index",
		report.Indexed, len(report.Skipped), report.DocCount)
	return report, nil
}

// collect expands paths into absolute file paths. Missing paths are
// recorded as skipped rather than failing the run.
func (s *IndexService) collect(ctx context.Context, paths []string, report *domain.IndexReport) ([]string, error) {
	var files []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", path, err)
		}
		found, err := s.source.Files(ctx, abs)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			report.Skipped[abs] = err.Error()
			continue
		}
		files = append(files, found...)
	}
	return files, nil
}

func (s *IndexService) prepare(ctx context.Context, path string) (prepared, error) {
	raw, err := s.source.Read(ctx, path)
	if err != nil {
		return prepared{}, err
	}
	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return prepared{}, err
	}
	return prepared{raw: raw, result: result}, nil
}

// write builds the document for p and replaces any earlier version.
func (s *IndexService) write(db *xapian.WritableDatabase, p prepared) error {
	doc := s.binding.NewDocument()
	defer doc.Close()

	path := p.raw.URI
	doc.SetData([]byte(path))
	doc.AddValue(SlotPath, []byte(path))
	if !p.raw.ModTime.IsZero() {
		doc.AddValue(SlotModTime, []byte(p.raw.ModTime.UTC().Format(time.RFC3339)))
	}

	unique := UniqueTerm(path)
	if err := doc.AddTerm(unique); err != nil {
		return err
	}
	if p.result.Title != "" {
		if err := s.binding.IndexTextWithPrefix(doc, s.settings.Stemmer, p.result.Title, TitlePrefix); err != nil {
			return err
		}
	}
	if err := s.binding.IndexText(doc, s.settings.Stemmer, p.result.Content); err != nil {
		return err
	}

	id, err := db.ReplaceDocument(unique, doc)
	if err != nil {
		return err
	}
	logger.Debug("Stored %s as document %d", path, id)
	return nil
}

// Watch applies changes below dir to the index until ctx is cancelled.
// Each change is committed before the handler sees it.
func (s *IndexService) Watch(ctx context.Context, dir string, handler driving.WatchHandler) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", dir, err)
	}

	db, err := s.binding.OpenWritableDatabase(s.settings.IndexPath, domain.DBCreateOrOpen)
	if err != nil {
		return err
	}
	defer db.Close()

	changes, err := s.source.Watch(ctx, abs)
	if err != nil {
		return err
	}
	logger.Info("Watching %s", abs)

	for change := range changes {
		err := s.apply(ctx, db, change)
		if err == nil {
			err = db.Commit()
		}
		if handler != nil {
			handler(change, err)
		}
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *IndexService) apply(ctx context.Context, db *xapian.WritableDatabase, change domain.FileChange) error {
	if change.Type == domain.ChangeDeleted {
		return s.remove(db, change.Path)
	}
	p, err := s.prepare(ctx, change.Path)
	if err != nil {
		return err
	}
	return s.write(db, p)
}

// remove deletes the document for path, or every document below it when
// path was a directory.
func (s *IndexService) remove(db *xapian.WritableDatabase, path string) error {
	if err := db.DeleteDocument(UniqueTerm(path)); err != nil {
		return err
	}
	below := UniquePrefix + path + string(filepath.Separator)
	for _, term := range db.AllTerms(below) {
		if err := db.DeleteDocument(term); err != nil {
			return err
		}
	}
	return nil
}
