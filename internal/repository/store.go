package repository

import (
	"time"
)

// Store bundles the ticket and label repositories of one board.
type Store struct {
	Tickets *TicketRepository
	Labels  *LabelRepository
}

// NewStore creates an empty Store. A nil now uses time.Now.
func NewStore(now func() time.Time) *Store {
	ids := NewIDGenerator()
	return &Store{
		Tickets: NewTicketRepository(ids, now),
		Labels:  NewLabelRepository(ids),
	}
}
