package repository

import (
	"sync"

	"github.com/sumire/backlog/internal/domain"
)

// LabelRepository holds labels in memory in insertion order.
// Labels cannot be updated or deleted once created.
type LabelRepository struct {
	mu     sync.RWMutex
	ids    *IDGenerator
	order  []string
	labels map[string]domain.Label
}

// NewLabelRepository creates an empty LabelRepository.
func NewLabelRepository(ids *IDGenerator) *LabelRepository {
	return &LabelRepository{
		ids:    ids,
		labels: make(map[string]domain.Label),
	}
}

// Create stores a new label with a fresh id.
func (r *LabelRepository) Create(name, color string) domain.Label {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := domain.Label{
		ID:    r.ids.Next(domain.KindLabel),
		Name:  name,
		Color: color,
	}
	r.labels[l.ID] = l
	r.order = append(r.order, l.ID)
	return l
}

// FindByID retrieves a label by its ID.
func (r *LabelRepository) FindByID(id string) (*domain.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.labels[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindLabel, ID: id}
	}
	return &l, nil
}

// FindAll returns every label in insertion order.
func (r *LabelRepository) FindAll() []domain.Label {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Label, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.labels[id])
	}
	return out
}

// Count returns the number of stored labels.
func (r *LabelRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.labels)
}
