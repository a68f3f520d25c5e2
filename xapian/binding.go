package xapian

import (
	"fmt"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-xapian/internal/handle"
)

// defaultWdfInc is the wdf increment for every posting added by this package.
const defaultWdfInc = 1

// Binding creates wrapper objects over one engine implementation.
type Binding struct {
	engine driven.Engine
}

// New creates a binding over engine.
func New(engine driven.Engine) *Binding {
	return &Binding{engine: engine}
}

// EngineName returns the underlying engine's name.
func (b *Binding) EngineName() string {
	return b.engine.Name()
}

// NewDocument allocates an empty document.
func (b *Binding) NewDocument() *Document {
	return &Document{h: handle.New(b.engine.NewDocument(), driven.Document.Close)}
}

// OpenDatabase opens a read-only database at path.
func (b *Binding) OpenDatabase(path string) (*Database, error) {
	db, err := b.engine.OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("xapian: open database %s: %w", path, err)
	}
	return &Database{h: handle.New(db, driven.Database.Close)}, nil
}

// OpenWritableDatabase opens or creates a writable database at path.
func (b *Binding) OpenWritableDatabase(path string, action domain.DBAction) (*WritableDatabase, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("xapian: %w: database action %d", domain.ErrInvalidInput, action)
	}
	db, err := b.engine.OpenWritableDatabase(path, action)
	if err != nil {
		return nil, fmt.Errorf("xapian: open writable database %s (%s): %w", path, action, err)
	}
	return &WritableDatabase{
		Database: Database{h: handle.New[driven.Database](db, driven.Database.Close)},
	}, nil
}
