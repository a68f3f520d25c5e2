package services

import (
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

// Ensure StemService implements the interface.
var _ driving.StemService = (*StemService)(nil)

// StemService exposes the engine's stemmers.
type StemService struct {
	binding *xapian.Binding
}

// NewStemService creates a new stem service.
func NewStemService(binding *xapian.Binding) *StemService {
	return &StemService{binding: binding}
}

// Stem returns the stem of each word. StemmerNone returns the words unchanged.
func (s *StemService) Stem(language domain.Stemmer, words []string) ([]string, error) {
	out := make([]string, len(words))
	if language == domain.StemmerNone {
		copy(out, words)
		return out, nil
	}

	stemmer, err := s.binding.NewStemmer(language)
	if err != nil {
		return nil, err
	}
	defer stemmer.Close()

	for i, w := range words {
		out[i] = stemmer.Stem(w)
	}
	return out, nil
}
