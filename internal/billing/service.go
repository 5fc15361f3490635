package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)
	// UpdateStatus moves a record from one status to another. It returns
	// ErrInvalidTransition when the record is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}

type ListFilter struct {
	MunicipalityID string
	Status         *Status
	Type           *Type
	Category       *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListApproved returns the records of a municipality that are ready to be invoiced for
// one type and category, oldest first.
func (s *Service) ListApproved(ctx context.Context, municipalityID string, typ Type, category string) ([]*Record, error) {
	records, err := s.repo.ListRecords(ctx, ListFilter{
		MunicipalityID: municipalityID,
		Status:         new(StatusApproved),
		Type:           &typ,
		Category:       &category,
	})
	if err != nil {
		return nil, fmt.Errorf("listing approved records: %w", err)
	}

	return records, nil
}

// MarkInvoiced persists a single record as INVOICED.
func (s *Service) MarkInvoiced(ctx context.Context, r *Record) error {
	if !r.Status.CanTransitionTo(StatusInvoiced) {
		return fmt.Errorf("record %s is %s: %w", r.ID, r.Status, ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, r.ID, r.Status, StatusInvoiced); err != nil {
		return fmt.Errorf("marking record %s invoiced: %w", r.ID, err)
	}

	r.Status = StatusInvoiced

	return nil
}
