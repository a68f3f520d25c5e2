package embedded

import (
	"fmt"
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/danish"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/finnish"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/porter"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/romanian"
	"github.com/blevesearch/snowballstem/turkish"
	"github.com/kljensen/snowball"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Ensure stemmer implements the interface.
var _ driven.Stemmer = (*stemmer)(nil)

// stemFunc reduces a lower-cased word.
type stemFunc func(word string) string

// kljensenStem uses the algorithms bundled with the snowball package.
func kljensenStem(language string) stemFunc {
	return func(word string) string {
		stemmed, err := snowball.Stem(word, language, true)
		if err != nil {
			return word
		}
		return stemmed
	}
}

// blevesearchStem adapts a generated snowballstem algorithm.
func blevesearchStem(stem func(*snowballstem.Env) bool) stemFunc {
	return func(word string) string {
		env := snowballstem.NewEnv(word)
		stem(env)
		return env.Current()
	}
}

// german2Replacer folds ae, oe and ue to umlauts before the german
// algorithm runs. ue after q is left alone.
var german2Replacer = strings.NewReplacer("que", "que", "ae", "ä", "oe", "ö", "ue", "ü")

func german2Stem(word string) string {
	return blevesearchStem(german.Stem)(german2Replacer.Replace(word))
}

// algorithms maps native identifiers to stemming algorithms.
// lovins and kraaij_pohlmann have no Go implementation.
var algorithms = map[string]stemFunc{
	"danish":     blevesearchStem(danish.Stem),
	"dutch":      blevesearchStem(dutch.Stem),
	"english":    kljensenStem("english"),
	"porter":     blevesearchStem(porter.Stem),
	"finnish":    blevesearchStem(finnish.Stem),
	"french":     kljensenStem("french"),
	"german":     blevesearchStem(german.Stem),
	"german2":    german2Stem,
	"hungarian":  kljensenStem("hungarian"),
	"italian":    blevesearchStem(italian.Stem),
	"norwegian":  kljensenStem("norwegian"),
	"portuguese": blevesearchStem(portuguese.Stem),
	"romanian":   blevesearchStem(romanian.Stem),
	"russian":    kljensenStem("russian"),
	"spanish":    kljensenStem("spanish"),
	"swedish":    kljensenStem("swedish"),
	"turkish":    blevesearchStem(turkish.Stem),
}

type stemmer struct {
	language string
	stem     stemFunc
	closed   bool
}

func newStemmer(language string) (*stemmer, error) {
	if language == "none" || language == "" {
		return &stemmer{language: "none"}, nil
	}
	if stem, ok := algorithms[language]; ok {
		return &stemmer{language: language, stem: stem}, nil
	}
	if _, err := domain.ParseStemmer(language); err == nil {
		return nil, fmt.Errorf("embedded: no stemming algorithm for %q: %w", language, domain.ErrNotImplemented)
	}
	return nil, &domain.NativeError{
		Op:      "create stemmer",
		Message: fmt.Sprintf("InvalidArgumentError: Language code %s unknown", language),
	}
}

// Stem returns word unchanged when no algorithm applies.
func (s *stemmer) Stem(word string) string {
	s.check()
	if s.stem == nil || word == "" {
		return word
	}
	return s.stem(word)
}

func (s *stemmer) Describe() string {
	s.check()
	return "Xapian::Stem(" + s.language + ")"
}

func (s *stemmer) Close() {
	s.closed = true
}

func (s *stemmer) check() {
	if s.closed {
		panic("embedded: use of closed stemmer")
	}
}
