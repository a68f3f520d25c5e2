package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/internal/logger"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs ranked queries against the index.
type SearchService struct {
	binding  *xapian.Binding
	settings domain.Settings
}

// NewSearchService creates a new search service.
func NewSearchService(binding *xapian.Binding, settings domain.Settings) *SearchService {
	return &SearchService{binding: binding, settings: settings}
}

// Search stems each word, matches it in the body or the title, and joins
// the words left to right with op.
func (s *SearchService) Search(
	ctx context.Context, words []string, op domain.QueryOp, limit int,
) (*domain.SearchResults, error) {
	logger.Section("Search Execution")

	if !op.IsValid() {
		return nil, fmt.Errorf("%w: query operator %d", domain.ErrInvalidInput, int(op))
	}
	terms := queryWords(words)
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = s.settings.SearchLimit
	}

	if err := s.stem(terms); err != nil {
		return nil, err
	}
	logger.Debug("Terms: %v", terms)

	db, err := s.binding.OpenDatabase(s.settings.IndexPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query, err := s.buildQuery(op, terms)
	if err != nil {
		return nil, err
	}
	defer query.Close()
	logger.Debug("Query: %s", query)

	enquire, err := s.binding.NewEnquire(db)
	if err != nil {
		return nil, err
	}
	defer enquire.Close()
	enquire.SetQuery(query)

	matches, err := enquire.Matches(0, limit)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hit, err := loadHit(db, m)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}

	logger.Debug("Found %d results", len(hits))
	return &domain.SearchResults{Query: query.Describe(), Hits: hits}, nil
}

func (s *SearchService) stem(terms []string) error {
	if s.settings.Stemmer == domain.StemmerNone {
		return nil
	}
	stemmer, err := s.binding.NewStemmer(s.settings.Stemmer)
	if err != nil {
		return err
	}
	defer stemmer.Close()

	for i, term := range terms {
		terms[i] = stemmer.Stem(term)
	}
	return nil
}

// buildQuery joins (term OR S<term>) operands left to right with op.
func (s *SearchService) buildQuery(op domain.QueryOp, terms []string) (*xapian.Query, error) {
	var acc *xapian.Query
	for _, term := range terms {
		operand, err := s.binding.CombineTerms(domain.OpOr, term, TitlePrefix+term)
		if err != nil {
			if acc != nil {
				acc.Close()
			}
			return nil, err
		}
		if acc == nil {
			acc = operand
			continue
		}
		combined, err := s.binding.Combine(op, acc, operand)
		acc.Close()
		operand.Close()
		if err != nil {
			return nil, err
		}
		acc = combined
	}
	return acc, nil
}

func loadHit(db *xapian.Database, m domain.Match) (domain.SearchHit, error) {
	doc, err := db.Document(m.DocID)
	if err != nil {
		return domain.SearchHit{}, err
	}
	defer doc.Close()

	data, err := doc.Data()
	if err != nil {
		return domain.SearchHit{}, err
	}
	values, err := doc.Values()
	if err != nil {
		return domain.SearchHit{}, err
	}

	return domain.SearchHit{
		Match: m,
		Path:  string(values[SlotPath]),
		Data:  string(data),
	}, nil
}
