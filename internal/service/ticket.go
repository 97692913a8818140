package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sumire/backlog/internal/domain"
	"github.com/sumire/backlog/internal/suggest"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

// TicketStore defines the ticket data access interface consumed by TicketService.
type TicketStore interface {
	Create(in domain.TicketInput) domain.Ticket
	FindByID(id string) (*domain.Ticket, error)
	FindAll() []domain.Ticket
	FindByStatus(status domain.TicketStatus) []domain.Ticket
	FindByPriority(priority domain.TicketPriority) []domain.Ticket
	FindEpics() []domain.Ticket
	Update(id string, patch domain.TicketPatch) (*domain.Ticket, error)
	Delete(id string) bool
}

// CreateTicketDTO is the caller-supplied data for a new ticket.
type CreateTicketDTO struct {
	Title       string         `json:"title" validate:"required"`
	Description *string        `json:"description,omitempty"`
	Status      *string        `json:"status,omitempty"`
	Priority    *string        `json:"priority,omitempty"`
	Labels      []domain.Label `json:"labels,omitempty"`
}

// UpdateTicketDTO is a partial ticket update. Absent fields are left untouched.
type UpdateTicketDTO struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *string        `json:"status,omitempty"`
	Priority    *string        `json:"priority,omitempty"`
	Labels      []domain.Label `json:"labels,omitempty"`
}

// SuggestDTO is the partial ticket suggestions are computed for.
type SuggestDTO struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Labels      []domain.Label `json:"labels"`
}

// TicketService applies suggestion rules and validation before handing tickets to the store.
type TicketService struct {
	tickets TicketStore
}

// NewTicketService creates a new TicketService.
func NewTicketService(tickets TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

// BuildCreatePayload validates dto and fills every field the caller left out.
// An empty status or priority counts as left out. isEpic is always derived from the title.
func (s *TicketService) BuildCreatePayload(dto CreateTicketDTO) (domain.TicketInput, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return domain.TicketInput{}, &domain.ValidationError{Field: "title", Message: "title is required"}
	}
	if err := validateTitle(dto.Title); err != nil {
		return domain.TicketInput{}, err
	}

	var description string
	if dto.Description != nil {
		description = *dto.Description
		if err := validateDescription(description); err != nil {
			return domain.TicketInput{}, err
		}
	}

	in := domain.TicketInput{
		Title:       dto.Title,
		Description: description,
		Status:      domain.TicketStatusBacklog,
		Priority:    domain.TicketPriorityMedium,
		Labels:      dedupeLabels(dto.Labels),
	}

	if dto.Status != nil && *dto.Status != "" {
		status, err := domain.ParseTicketStatus(*dto.Status)
		if err != nil {
			return domain.TicketInput{}, err
		}
		in.Status = status
	}

	suggestions := suggest.Generate(suggest.Input{
		Title:       dto.Title,
		Description: description,
		Labels:      in.Labels,
	})

	switch {
	case dto.Priority != nil && *dto.Priority != "":
		priority, err := domain.ParseTicketPriority(*dto.Priority)
		if err != nil {
			return domain.TicketInput{}, err
		}
		in.Priority = priority
	case suggestions.SuggestedPriority != "":
		in.Priority = suggestions.SuggestedPriority
	}

	if suggest.IsBlank(description) {
		in.Description = suggestions.SuggestedDescription
	}
	in.IsEpic = suggestions.IsEpicDetected

	return in, nil
}

// BuildUpdatePayload converts dto into a patch for the ticket with the given id.
//
// A new title re-derives isEpic, and when no priority is given the priority
// suggested by the labels (the new ones if supplied, else the ticket's current
// ones) is applied. A labels-only update does not re-suggest a priority.
func (s *TicketService) BuildUpdatePayload(id string, dto UpdateTicketDTO) (domain.TicketPatch, error) {
	existing, err := s.tickets.FindByID(id)
	if err != nil {
		return domain.TicketPatch{}, err
	}

	patch := domain.TicketPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Labels:      dedupeLabels(dto.Labels),
	}

	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return domain.TicketPatch{}, &domain.ValidationError{Field: "title", Message: "title must not be blank"}
		}
		if err := validateTitle(*dto.Title); err != nil {
			return domain.TicketPatch{}, err
		}
	}
	if dto.Description != nil {
		if err := validateDescription(*dto.Description); err != nil {
			return domain.TicketPatch{}, err
		}
	}
	if dto.Status != nil {
		status, err := domain.ParseTicketStatus(*dto.Status)
		if err != nil {
			return domain.TicketPatch{}, err
		}
		patch.Status = &status
	}
	if dto.Priority != nil {
		priority, err := domain.ParseTicketPriority(*dto.Priority)
		if err != nil {
			return domain.TicketPatch{}, err
		}
		patch.Priority = &priority
	}

	if dto.Title != nil {
		labels := existing.Labels
		if patch.Labels != nil {
			labels = patch.Labels
		}
		isEpic := suggest.DeriveEpic(*dto.Title)
		patch.IsEpic = &isEpic

		if dto.Priority == nil {
			if p, ok := suggest.PriorityFromLabels(labels); ok {
				patch.Priority = &p
			}
		}
	}

	return patch, nil
}

// Create builds and stores a new ticket.
func (s *TicketService) Create(dto CreateTicketDTO) (*domain.Ticket, error) {
	in, err := s.BuildCreatePayload(dto)
	if err != nil {
		return nil, err
	}
	t := s.tickets.Create(in)
	return &t, nil
}

// Update applies dto to the ticket with the given id.
func (s *TicketService) Update(id string, dto UpdateTicketDTO) (*domain.Ticket, error) {
	patch, err := s.BuildUpdatePayload(id, dto)
	if err != nil {
		return nil, err
	}
	return s.tickets.Update(id, patch)
}

// Get retrieves a ticket by ID.
func (s *TicketService) Get(id string) (*domain.Ticket, error) {
	return s.tickets.FindByID(id)
}

// List returns all tickets in creation order.
func (s *TicketService) List() []domain.Ticket {
	return s.tickets.FindAll()
}

// ListByStatus validates the raw status literal and returns the matching tickets.
func (s *TicketService) ListByStatus(raw string) ([]domain.Ticket, error) {
	status, err := domain.ParseTicketStatus(raw)
	if err != nil {
		return nil, err
	}
	return s.tickets.FindByStatus(status), nil
}

// ListByPriority validates the raw priority literal and returns the matching tickets.
func (s *TicketService) ListByPriority(raw string) ([]domain.Ticket, error) {
	priority, err := domain.ParseTicketPriority(raw)
	if err != nil {
		return nil, err
	}
	return s.tickets.FindByPriority(priority), nil
}

// ListEpics returns all tickets flagged as epics.
func (s *TicketService) ListEpics() []domain.Ticket {
	return s.tickets.FindEpics()
}

// Delete removes the ticket with the given id.
func (s *TicketService) Delete(id string) error {
	if !s.tickets.Delete(id) {
		return &domain.NotFoundError{Kind: domain.KindTicket, ID: id}
	}
	return nil
}

// Suggest computes suggestions without touching the store.
func (s *TicketService) Suggest(dto SuggestDTO) suggest.Suggestions {
	return suggest.Generate(suggest.Input{
		Title:       dto.Title,
		Description: dto.Description,
		Labels:      dto.Labels,
	})
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &domain.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", maxTitleLength),
		}
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return &domain.ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLength),
		}
	}
	return nil
}

// dedupeLabels drops repeated label ids, keeping the first occurrence. nil stays nil.
func dedupeLabels(labels []domain.Label) []domain.Label {
	if labels == nil {
		return nil
	}
	seen := make(map[string]bool, len(labels))
	out := make([]domain.Label, 0, len(labels))
	for _, l := range labels {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
	}
	return out
}
