package service

import (
	"strings"

	"github.com/sumire/backlog/internal/domain"
)

// LabelStore defines the label data access interface consumed by LabelService.
type LabelStore interface {
	Create(name, color string) domain.Label
	FindByID(id string) (*domain.Label, error)
	FindAll() []domain.Label
}

// CreateLabelDTO is the caller-supplied data for a new label.
type CreateLabelDTO struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// LabelService validates labels before handing them to the store.
type LabelService struct {
	labels LabelStore
}

// NewLabelService creates a new LabelService.
func NewLabelService(labels LabelStore) *LabelService {
	return &LabelService{labels: labels}
}

// Create trims and stores a new label.
func (s *LabelService) Create(dto CreateLabelDTO) (*domain.Label, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	color := strings.TrimSpace(dto.Color)
	if color == "" {
		return nil, &domain.ValidationError{Field: "color", Message: "color is required"}
	}

	l := s.labels.Create(name, color)
	return &l, nil
}

// Get retrieves a label by ID.
func (s *LabelService) Get(id string) (*domain.Label, error) {
	return s.labels.FindByID(id)
}

// List returns all labels in creation order.
func (s *LabelService) List() []domain.Label {
	return s.labels.FindAll()
}
