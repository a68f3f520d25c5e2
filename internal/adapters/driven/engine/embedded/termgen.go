package embedded

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// maxWordLength matches the native term generator's default; longer
// words are skipped.
const maxWordLength = 64

// Ensure termGenerator implements the interface.
var _ driven.TermGenerator = (*termGenerator)(nil)

type termGenerator struct {
	stemmer *stemmer
	doc     *document
	termpos domain.Position
	lower   cases.Caser
	closed  bool
}

func newTermGenerator() *termGenerator {
	return &termGenerator{lower: cases.Lower(language.Und)}
}

func (g *termGenerator) SetStemmer(s driven.Stemmer) {
	g.check()
	st, ok := s.(*stemmer)
	if !ok {
		panic("embedded: " + domain.ErrEngineMismatch.Error())
	}
	st.check()
	g.stemmer = &stemmer{language: st.language}
}

func (g *termGenerator) SetDocument(doc driven.Document) {
	g.check()
	d, ok := doc.(*document)
	if !ok {
		panic("embedded: " + domain.ErrEngineMismatch.Error())
	}
	g.doc = d
}

// IndexText posts each word of text at consecutive positions. Positions
// continue across calls on the same generator.
func (g *termGenerator) IndexText(text string, wdfInc uint32, prefix string) {
	g.check()
	if g.doc == nil {
		panic("embedded: term generator has no document")
	}
	for _, word := range g.words(text) {
		term := word
		if g.stemmer != nil {
			term = g.stemmer.Stem(word)
		}
		g.doc.AddPosting(prefix+term, g.termpos, wdfInc)
		g.termpos++
	}
}

// words splits normalised, lower-cased text into runs of letters, marks
// and digits.
func (g *termGenerator) words(text string) []string {
	text = g.lower.String(norm.NFKC.String(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
	words := fields[:0]
	for _, w := range fields {
		if len(w) <= maxWordLength {
			words = append(words, w)
		}
	}
	return words
}

func (g *termGenerator) Close() {
	g.closed = true
}

func (g *termGenerator) check() {
	if g.closed {
		panic("embedded: use of closed term generator")
	}
}
