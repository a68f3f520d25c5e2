// Package plaintext indexes text and source files as they are.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/normalisers/pathtitle"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Priority is below every format-specific normaliser.
const Priority = 5

// mimeTypes are the text formats indexed verbatim.
var mimeTypes = []string{
	"text/plain",
	"text/csv",
	"text/css",
	"text/javascript",
	"text/jsx",
	"text/toml",
	"text/typescript",
	"text/typescript-jsx",
	"text/yaml",
	"text/x-c",
	"text/x-c++",
	"text/x-go",
	"text/x-java",
	"text/x-python",
	"text/x-ruby",
	"text/x-rust",
	"text/x-shellscript",
	"text/x-sql",
	"application/json",
	"application/xml",
	"image/svg+xml",
}

// Normaliser passes text through, titled after the file name.
type Normaliser struct{}

// New creates a plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

func (n *Normaliser) SupportedMIMETypes() []string {
	return append([]string(nil), mimeTypes...)
}

func (n *Normaliser) Priority() int {
	return Priority
}

// Normalise rejects content with NUL bytes, which marks a binary file
// behind a text extension. A byte order mark is dropped, line endings
// become \n and invalid UTF-8 is replaced with U+FFFD.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if bytes.IndexByte(raw.Content, 0) >= 0 {
		return nil, fmt.Errorf("%w: binary content in %s", domain.ErrUnsupportedType, raw.URI)
	}

	return &driven.NormaliseResult{
		Title:   pathtitle.FromURI(raw.URI),
		Content: Clean(raw.Content),
	}, nil
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Clean decodes content as UTF-8 text with \n line endings.
func Clean(content []byte) string {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	return lineEndings.Replace(strings.ToValidUTF8(string(content), "�"))
}
