//go:build !cgo || !xapian

package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// Engine drives libxapian.
// This is a stub for builds without CGO or the xapian build tag.
type Engine struct {
	driven.Engine
}

// New reports that libxapian support was not compiled in.
func New() (*Engine, error) {
	return nil, fmt.Errorf("xapian: built without libxapian (use -tags xapian): %w", domain.ErrNotImplemented)
}
