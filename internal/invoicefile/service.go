package invoicefile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoicefile
type Repository interface {
	CreateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, id uuid.UUID) (*File, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListFiles(ctx context.Context, filter ListFilter) ([]*File, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, sent *time.Time) error
}

type ConfigurationRepository interface {
	FindByTypeAndCategory(ctx context.Context, typ, categoryTag string) (*Configuration, error)
	FindByCreatorName(ctx context.Context, creatorName string) (*Configuration, error)
	ListConfigurations(ctx context.Context) ([]*Configuration, error)
}

type ListFilter struct {
	MunicipalityID string
	Statuses       []Status
}

type Service struct {
	repo    Repository
	configs ConfigurationRepository
}

func NewService(repo Repository, configs ConfigurationRepository) *Service {
	return &Service{repo: repo, configs: configs}
}

// Create persists a new file in status GENERATED.
func (s *Service) Create(ctx context.Context, municipalityID, name, typ, encoding string, content []byte) (*File, error) {
	f := &File{
		MunicipalityID: municipalityID,
		Name:           name,
		Content:        content,
		Encoding:       encoding,
		Type:           typ,
		Status:         StatusGenerated,
	}

	if err := s.repo.CreateFile(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// NameTaken reports whether a file with name already exists.
func (s *Service) NameTaken(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, name)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*File, error) {
	return s.repo.GetFile(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*File, error) {
	return s.repo.ListFiles(ctx, filter)
}

// ListTransferable returns the files of a municipality still waiting for a successful
// transfer.
func (s *Service) ListTransferable(ctx context.Context, municipalityID string) ([]*File, error) {
	return s.repo.ListFiles(ctx, ListFilter{
		MunicipalityID: municipalityID,
		Statuses:       []Status{StatusGenerated, StatusSendFailed},
	})
}

// MarkSent records the outcome of a transfer attempt.
func (s *Service) MarkSent(ctx context.Context, f *File, status Status, at time.Time) error {
	if !f.Status.CanTransitionTo(status) {
		return fmt.Errorf("file %s: %s -> %s: %w", f.Name, f.Status, status, ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, f.ID, status, &at); err != nil {
		return fmt.Errorf("updating file %s: %w", f.Name, err)
	}

	f.Status = status
	f.Sent = &at

	return nil
}

// ConfigurationFor returns the configuration of a type and category.
func (s *Service) ConfigurationFor(ctx context.Context, typ, categoryTag string) (*Configuration, error) {
	cfg, err := s.configs.FindByTypeAndCategory(ctx, typ, categoryTag)
	if errors.Is(err, ErrNotFound) || (err == nil && cfg == nil) {
		return nil, &MissingConfigurationError{Type: typ, CategoryTag: categoryTag}
	}

	if err != nil {
		return nil, fmt.Errorf("finding configuration: %w", err)
	}

	return cfg, nil
}

// ConfigurationForCreator returns the configuration bound to a creator.
func (s *Service) ConfigurationForCreator(ctx context.Context, creatorName string) (*Configuration, error) {
	cfg, err := s.configs.FindByCreatorName(ctx, creatorName)
	if errors.Is(err, ErrNotFound) || (err == nil && cfg == nil) {
		return nil, &MissingConfigurationError{CreatorName: creatorName}
	}

	if err != nil {
		return nil, fmt.Errorf("finding configuration: %w", err)
	}

	return cfg, nil
}

func (s *Service) Configurations(ctx context.Context) ([]*Configuration, error) {
	return s.configs.ListConfigurations(ctx)
}
