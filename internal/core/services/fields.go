package services

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// Value slots.
const (
	SlotPath    domain.ValueNumber = 0
	SlotModTime domain.ValueNumber = 1
)

// Term prefixes, following the usual Xapian conventions.
const (
	UniquePrefix = "Q"
	TitlePrefix  = "S"
)

// maxTermLength is the longest term the native backends accept.
const maxTermLength = 245

// UniqueTerm returns the term identifying the document for path. Paths too
// long to be a term are replaced by their SHA-1.
func UniqueTerm(path string) string {
	term := UniquePrefix + path
	if len(term) <= maxTermLength {
		return term
	}
	sum := sha1.Sum([]byte(path))
	return UniquePrefix + "#" + hex.EncodeToString(sum[:])
}

// queryWords splits user input the same way the term generator splits
// document text: NFKC, lower case, runs of letters, digits and marks.
func queryWords(words []string) []string {
	lower := cases.Lower(language.Und)
	var out []string
	for _, w := range words {
		text := lower.String(norm.NFKC.String(w))
		out = append(out, strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
		})...)
	}
	return out
}
