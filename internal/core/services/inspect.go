package services

import (
	"context"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-xapian/xapian"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService reads stored documents back out of the index.
type InspectService struct {
	binding  *xapian.Binding
	settings domain.Settings
}

// NewInspectService creates a new inspect service.
func NewInspectService(binding *xapian.Binding, settings domain.Settings) *InspectService {
	return &InspectService{binding: binding, settings: settings}
}

// Inspect loads document id with its terms, values and data.
func (s *InspectService) Inspect(ctx context.Context, id domain.DocumentID) (*domain.DocumentDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := s.binding.OpenDatabase(s.settings.IndexPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	doc, err := db.Document(id)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	data, err := doc.Data()
	if err != nil {
		return nil, err
	}
	values, err := doc.Values()
	if err != nil {
		return nil, err
	}

	return &domain.DocumentDetails{
		ID:     id,
		Data:   data,
		Terms:  doc.Terms(),
		Values: values,
	}, nil
}
