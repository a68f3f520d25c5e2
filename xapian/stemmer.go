package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// Stemmer reduces words to stems for one language.
type Stemmer struct {
	h        *handle.Handle[driven.Stemmer]
	language domain.Stemmer
}

// NewStemmer creates a native stemmer for language.
func (b *Binding) NewStemmer(language domain.Stemmer) (*Stemmer, error) {
	if !language.IsValid() {
		return nil, fmt.Errorf("xapian: %w: stemmer %d", domain.ErrInvalidInput, int(language))
	}
	s, err := b.engine.NewStemmer(domain.LanguageID(language))
	if err != nil {
		return nil, fmt.Errorf("xapian: create %s stemmer: %w", language, err)
	}
	return &Stemmer{h: handle.New(s, driven.Stemmer.Close), language: language}, nil
}

// Stem returns the stemmed form of word.
func (s *Stemmer) Stem(word string) string {
	return s.h.Get().Stem(word)
}

// Language returns the stemmer's language.
func (s *Stemmer) Language() domain.Stemmer {
	return s.language
}

// Describe returns the engine's description of the stemmer.
func (s *Stemmer) Describe() string {
	return s.h.Get().Describe()
}

// Close releases the native stemmer.
func (s *Stemmer) Close() {
	s.h.Release()
}
