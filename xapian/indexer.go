package xapian

import (
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// IndexText tokenises text into doc's postings, stemming with stemmer
// unless it is StemmerNone.
func (b *Binding) IndexText(doc *Document, stemmer domain.Stemmer, text string) error {
	return b.IndexTextWithPrefix(doc, stemmer, text, "")
}

// IndexTextWithPrefix is IndexText with every generated term prefixed.
// A transient term generator (and stemmer) is created for the call and
// released before it returns.
func (b *Binding) IndexTextWithPrefix(doc *Document, stemmer domain.Stemmer, text, prefix string) error {
	if strings.IndexByte(prefix, 0) >= 0 {
		return validateTerm(prefix)
	}

	gen := handle.New(b.engine.NewTermGenerator(), driven.TermGenerator.Close)
	defer gen.Release()

	if stemmer != domain.StemmerNone {
		s, err := b.NewStemmer(stemmer)
		if err != nil {
			return err
		}
		defer s.Close()
		gen.Get().SetStemmer(s.h.Get())
	}

	gen.Get().SetDocument(doc.native())
	// NUL never belongs to a word, so it is safe to treat as a separator
	// before crossing the C string boundary.
	gen.Get().IndexText(strings.ReplaceAll(text, "\x00", " "), defaultWdfInc, prefix)
	return nil
}
