// Package markdown extracts titles and plain text from Markdown files.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers/pathtitle"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority outranks the plain text fallback.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise takes the title from front matter, then the first level-one
// heading, then the file name. Heading text stays in the content so it
// is searchable as body text too.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	meta, body := splitFrontMatter(plaintext.Clean(raw.Content))
	lines := strings.Split(body, "\n")

	title := meta["title"]
	if title == "" {
		title = firstHeading(lines)
	}
	if title == "" {
		title = pathtitle.FromURI(raw.URI)
	}

	return &driven.NormaliseResult{
		Title:   title,
		Content: plainText(lines),
	}, nil
}

// splitFrontMatter separates a leading "---" block of "key: value" lines.
// Unterminated blocks are treated as content.
func splitFrontMatter(text string) (map[string]string, string) {
	if !strings.HasPrefix(text, "---\n") {
		return nil, text
	}
	head, body, ok := strings.Cut(text[len("---\n"):], "\n---")
	if !ok {
		return nil, text
	}
	body = strings.TrimPrefix(strings.TrimLeft(body, "-"), "\n")

	meta := make(map[string]string)
	for _, line := range strings.Split(head, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		meta[strings.ToLower(strings.TrimSpace(key))] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return meta, body
}

// firstHeading finds "# Title" or a setext "Title\n=====" heading,
// ignoring fenced code.
func firstHeading(lines []string) string {
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if rest, ok := strings.CutPrefix(trimmed, "# "); ok {
			return inline(closingHashes.ReplaceAllString(strings.TrimSpace(rest), ""))
		}
		if i > 0 && setextH1.MatchString(trimmed) && strings.TrimSpace(lines[i-1]) != "" {
			return inline(strings.TrimSpace(lines[i-1]))
		}
	}
	return ""
}

var (
	setextH1      = regexp.MustCompile(`^=+$`)
	setextH2      = regexp.MustCompile(`^-+$`)
	thematicBreak = regexp.MustCompile(`^([-*_]\s*){3,}$`)
	blockPrefix   = regexp.MustCompile(`^(?:>\s?)*(?:#{1,6}\s+|[-*+]\s+(?:\[[ xX]\]\s+)?|\d+[.)]\s+)?`)
	image         = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	link          = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	autolink      = regexp.MustCompile(`<(https?://[^>]+)>`)
	emphasis      = regexp.MustCompile(`(\*{1,3}|~~)(\S(?:.*?\S)?)(?:\*{1,3}|~~)`)
	underscores   = regexp.MustCompile(`\b_{1,3}([^_\s](?:[^_]*?[^_\s])?)_{1,3}\b`)
	closingHashes = regexp.MustCompile(`\s+#+$`)
	blankRuns     = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	codeSpan      = regexp.MustCompile("`+([^`]+)`+")
	tableRule     = regexp.MustCompile(`^\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?$`)
)

// plainText drops block markup line by line. Fenced code is kept, since
// identifiers in code samples are worth finding.
func plainText(lines []string) string {
	out := make([]string, 0, len(lines))
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		if setextH1.MatchString(trimmed) || setextH2.MatchString(trimmed) ||
			thematicBreak.MatchString(trimmed) || tableRule.MatchString(trimmed) {
			continue
		}
		trimmed = blockPrefix.ReplaceAllString(trimmed, "")
		trimmed = closingHashes.ReplaceAllString(trimmed, "")
		if strings.HasPrefix(trimmed, "|") {
			trimmed = strings.Join(strings.Fields(strings.ReplaceAll(strings.Trim(trimmed, "|"), "|", " ")), " ")
		}
		out = append(out, inline(trimmed))
	}
	return collapseBlankLines(out)
}

// inline removes span markup, keeping the visible text.
func inline(s string) string {
	s = image.ReplaceAllString(s, "$1")
	s = link.ReplaceAllString(s, "$1")
	s = autolink.ReplaceAllString(s, "$1")
	s = codeSpan.ReplaceAllString(s, "$1")
	s = emphasis.ReplaceAllString(s, "$2")
	return underscores.ReplaceAllString(s, "$1")
}

func collapseBlankLines(lines []string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
