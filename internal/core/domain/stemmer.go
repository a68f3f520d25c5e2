package domain

import (
	"fmt"
	"strings"
)

// Stemmer identifies a stemming language.
// The zero value StemmerNone means no stemming; the remaining values
// form the closed table of languages understood by the native engine.
type Stemmer int

// Supported stemmers.
const (
	// StemmerNone disables stemming.
	StemmerNone Stemmer = iota
	StemmerDanish
	StemmerDutch
	StemmerDutchKraaijPohlmann
	StemmerEnglish
	StemmerEnglishLovins
	StemmerEnglishPorter
	StemmerFinnish
	StemmerFrench
	StemmerGerman
	StemmerGerman2
	StemmerHungarian
	StemmerItalian
	StemmerNorwegian
	StemmerPortuguese
	StemmerRomanian
	StemmerRussian
	StemmerSpanish
	StemmerSwedish
	StemmerTurkish
)

// stemmerTable maps every language to its native identifier and display name.
// Indexed by Stemmer, so the order must follow the constants above.
var stemmerTable = [...]struct {
	id   string
	name string
}{
	StemmerNone:                {"none", "None"},
	StemmerDanish:              {"danish", "Danish"},
	StemmerDutch:               {"dutch", "Dutch"},
	StemmerDutchKraaijPohlmann: {"kraaij_pohlmann", "Dutch (Kraaij-Pohlmann)"},
	StemmerEnglish:             {"english", "English"},
	StemmerEnglishLovins:       {"lovins", "English (Lovins)"},
	StemmerEnglishPorter:       {"porter", "English (Porter)"},
	StemmerFinnish:             {"finnish", "Finnish"},
	StemmerFrench:              {"french", "French"},
	StemmerGerman:              {"german", "German"},
	StemmerGerman2:             {"german2", "German (variant 2)"},
	StemmerHungarian:           {"hungarian", "Hungarian"},
	StemmerItalian:             {"italian", "Italian"},
	StemmerNorwegian:           {"norwegian", "Norwegian"},
	StemmerPortuguese:          {"portuguese", "Portuguese"},
	StemmerRomanian:            {"romanian", "Romanian"},
	StemmerRussian:             {"russian", "Russian"},
	StemmerSpanish:             {"spanish", "Spanish"},
	StemmerSwedish:             {"swedish", "Swedish"},
	StemmerTurkish:             {"turkish", "Turkish"},
}

// Stemmers returns every stemming language in table order, excluding StemmerNone.
func Stemmers() []Stemmer {
	out := make([]Stemmer, 0, len(stemmerTable)-1)
	for s := StemmerDanish; s <= StemmerTurkish; s++ {
		out = append(out, s)
	}
	return out
}

// IsValid returns true if the stemmer is recognised.
func (s Stemmer) IsValid() bool {
	return s >= StemmerNone && int(s) < len(stemmerTable)
}

// LanguageID returns the identifier the native engine expects for s.
// Every valid stemmer has an entry; invalid values panic like an
// out-of-range enum would.
func LanguageID(s Stemmer) string {
	return stemmerTable[s].id
}

// LanguageID returns the native identifier of s.
func (s Stemmer) LanguageID() string {
	return LanguageID(s)
}

// String returns the display name.
func (s Stemmer) String() string {
	if !s.IsValid() {
		return unknownDescription
	}
	return stemmerTable[s].name
}

// ParseStemmer resolves a native identifier or display name, ignoring case.
// The empty string resolves to StemmerNone.
func ParseStemmer(v string) (Stemmer, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return StemmerNone, nil
	}
	for i, entry := range stemmerTable {
		if strings.EqualFold(v, entry.id) || strings.EqualFold(v, entry.name) {
			return Stemmer(i), nil
		}
	}
	return StemmerNone, fmt.Errorf("%w: stemmer %q", ErrUnsupportedType, v)
}
