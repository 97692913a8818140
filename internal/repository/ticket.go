package repository

import (
	"slices"
	"sync"
	"time"

	"github.com/sumire/backlog/internal/domain"
)

// TicketRepository holds tickets in memory in insertion order.
type TicketRepository struct {
	mu      sync.RWMutex
	ids     *IDGenerator
	now     func() time.Time
	order   []string
	tickets map[string]domain.Ticket
}

// NewTicketRepository creates an empty TicketRepository.
func NewTicketRepository(ids *IDGenerator, now func() time.Time) *TicketRepository {
	if now == nil {
		now = time.Now
	}
	return &TicketRepository{
		ids:     ids,
		now:     now,
		tickets: make(map[string]domain.Ticket),
	}
}

// Create stores a new ticket with a fresh id and createdAt == updatedAt == now.
func (r *TicketRepository) Create(in domain.TicketInput) domain.Ticket {
	now := r.now()
	return r.insert(domain.Ticket{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Labels:      labelsOrEmpty(in.Labels),
		IsEpic:      in.IsEpic,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// insert assigns an id and stores t as is, keeping its timestamps.
func (r *TicketRepository) insert(t domain.Ticket) domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.ids.Next(domain.KindTicket)
	t.Labels = domain.CloneLabels(t.Labels)
	r.tickets[t.ID] = t
	r.order = append(r.order, t.ID)
	return t.Clone()
}

// FindByID retrieves a ticket by its ID.
func (r *TicketRepository) FindByID(id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindTicket, ID: id}
	}
	t = t.Clone()
	return &t, nil
}

// FindAll returns every ticket in insertion order.
func (r *TicketRepository) FindAll() []domain.Ticket {
	return r.filter(func(domain.Ticket) bool { return true })
}

// FindByStatus returns the tickets with the given status in insertion order.
// An unknown status yields an empty result.
func (r *TicketRepository) FindByStatus(status domain.TicketStatus) []domain.Ticket {
	return r.filter(func(t domain.Ticket) bool { return t.Status == status })
}

// FindByPriority returns the tickets with the given priority in insertion order.
func (r *TicketRepository) FindByPriority(priority domain.TicketPriority) []domain.Ticket {
	return r.filter(func(t domain.Ticket) bool { return t.Priority == priority })
}

// FindEpics returns all epics in insertion order.
func (r *TicketRepository) FindEpics() []domain.Ticket {
	return r.filter(func(t domain.Ticket) bool { return t.IsEpic })
}

func (r *TicketRepository) filter(keep func(domain.Ticket) bool) []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, 0, len(r.order))
	for _, id := range r.order {
		t := r.tickets[id]
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Update merges patch onto the stored ticket and refreshes updatedAt.
// ID and createdAt are never changed.
func (r *TicketRepository) Update(id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tickets[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindTicket, ID: id}
	}

	updated := patch.Apply(existing)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.now()
	if updated.UpdatedAt.Before(existing.UpdatedAt) {
		updated.UpdatedAt = existing.UpdatedAt
	}

	r.tickets[id] = updated
	updated = updated.Clone()
	return &updated, nil
}

// Delete removes a ticket. It reports whether the ticket existed.
func (r *TicketRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return false
	}
	delete(r.tickets, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return true
}

// Count returns the number of stored tickets.
func (r *TicketRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}

func labelsOrEmpty(labels []domain.Label) []domain.Label {
	if labels == nil {
		return []domain.Label{}
	}
	return labels
}
