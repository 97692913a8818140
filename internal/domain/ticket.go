package domain

import (
	"fmt"
	"time"
)

// TicketStatus represents the board column a ticket sits in.
type TicketStatus string

const (
	TicketStatusBacklog    TicketStatus = "backlog"
	TicketStatusTodo       TicketStatus = "todo"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusReview     TicketStatus = "review"
	TicketStatusDone       TicketStatus = "done"
)

// TicketStatuses lists every status in board order.
var TicketStatuses = []TicketStatus{
	TicketStatusBacklog,
	TicketStatusTodo,
	TicketStatusInProgress,
	TicketStatusReview,
	TicketStatusDone,
}

// Valid reports whether s is one of the board statuses.
func (s TicketStatus) Valid() bool {
	for _, v := range TicketStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseTicketStatus converts a raw literal into a TicketStatus.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	s := TicketStatus(raw)
	if !s.Valid() {
		return "", &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("invalid status %q", raw),
		}
	}
	return s, nil
}

// TicketPriority represents how urgent a ticket is.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketPriorities lists every priority from lowest to highest.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityCritical,
}

// Valid reports whether p is one of the known priorities.
func (p TicketPriority) Valid() bool {
	for _, v := range TicketPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// ParseTicketPriority converts a raw literal into a TicketPriority.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	p := TicketPriority(raw)
	if !p.Valid() {
		return "", &ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("invalid priority %q", raw),
		}
	}
	return p, nil
}

// Ticket represents a backlog item on the board.
//
// Labels holds copies of the label values at the time they were attached.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	Labels      []Label        `json:"labels"`
	IsEpic      bool           `json:"isEpic"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Clone returns a copy of the ticket that shares no label storage with t.
func (t Ticket) Clone() Ticket {
	t.Labels = CloneLabels(t.Labels)
	return t
}

// TicketInput is a fully populated ticket without identity or timestamps.
type TicketInput struct {
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Labels      []Label
	IsEpic      bool
}

// TicketPatch is a partial ticket update. Nil fields are left untouched.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *TicketStatus
	Priority    *TicketPriority
	Labels      []Label // nil leaves labels untouched, empty clears them
	IsEpic      *bool
}

// Apply merges the patch onto t and returns the result. ID and timestamps are not touched.
func (p TicketPatch) Apply(t Ticket) Ticket {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Labels != nil {
		t.Labels = CloneLabels(p.Labels)
	}
	if p.IsEpic != nil {
		t.IsEpic = *p.IsEpic
	}
	return t
}
