package html

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers/pathtitle"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML and XHTML documents.
type Normaliser struct{}

// New creates an HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority outranks the plain text fallback.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise takes the title from <title>, then the first <h1>, then the
// file name. Content is the visible text, one line per block element.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	page := extract(plaintext.Clean(raw.Content))

	title := page.title
	if title == "" {
		title = page.heading
	}
	if title == "" {
		title = pathtitle.FromURI(raw.URI)
	}

	return &driven.NormaliseResult{
		Title:   title,
		Content: page.text,
	}, nil
}

// hidden elements never contribute text.
var hidden = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"iframe":   true,
}

// blocks end the current line when opened or closed.
var blocks = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// cells are separated by a space within their row.
var cells = map[string]bool{"td": true, "th": true}

type page struct {
	title   string
	heading string
	text    string
}

// extract walks the token stream once. The tokenizer unescapes entities
// and tolerates unclosed tags, so malformed pages still yield their text.
func extract(content string) page {
	var (
		z             = html.NewTokenizer(strings.NewReader(content))
		body, title   strings.Builder
		heading       strings.Builder
		skip          string
		skipDepth     int
		inTitle, inH1 bool
		h1Done        bool
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return page{
				title:   squash(title.String()),
				heading: squash(heading.String()),
				text:    textLines(body.String()),
			}

		case html.TextToken:
			if skip != "" {
				continue
			}
			text := z.Text()
			if inTitle {
				title.Write(text)
				continue
			}
			body.Write(text)
			if inH1 {
				heading.Write(text)
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if skip != "" {
				if tag == skip && tt == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			switch {
			case tag == "title":
				inTitle = tt == html.StartTagToken
			case hidden[tag]:
				if tt == html.StartTagToken {
					skip, skipDepth = tag, 1
				}
			case tag == "h1" && !h1Done:
				inH1 = true
			case tag == "img" && hasAttr:
				if alt := attr(z, "alt"); alt != "" {
					body.WriteString(" " + alt + " ")
				}
			}
			separate(&body, tag)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skip != "" {
				if tag == skip {
					if skipDepth--; skipDepth == 0 {
						skip = ""
					}
				}
				continue
			}
			switch tag {
			case "title":
				inTitle = false
			case "h1":
				if inH1 {
					inH1, h1Done = false, true
				}
			}
			separate(&body, tag)
		}
	}
}

func separate(b *strings.Builder, tag string) {
	switch {
	case blocks[tag]:
		b.WriteByte('\n')
	case cells[tag]:
		b.WriteByte(' ')
	}
}

func attr(z *html.Tokenizer, name string) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == name {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

// squash collapses all whitespace runs to single spaces.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textLines squashes each line and drops the empty ones.
func textLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = squash(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
