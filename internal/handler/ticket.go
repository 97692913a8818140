package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/backlog/internal/service"
)

// TicketHandler handles ticket endpoints.
type TicketHandler struct {
	tickets *service.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List returns every ticket.
func (h *TicketHandler) List(c echo.Context) error {
	return JSON(c, http.StatusOK, h.tickets.List())
}

// Get returns a single ticket.
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.tickets.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, ticket)
}

// Create creates a ticket, filling missing fields from suggestions.
func (h *TicketHandler) Create(c echo.Context) error {
	var dto service.CreateTicketDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	ticket, err := h.tickets.Create(dto)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, ticket)
}

// Update applies a partial update to a ticket.
func (h *TicketHandler) Update(c echo.Context) error {
	var dto service.UpdateTicketDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}

	ticket, err := h.tickets.Update(c.Param("id"), dto)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, ticket)
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c echo.Context) error {
	if err := h.tickets.Delete(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true})
}

// ListByStatus returns the tickets in one board column.
func (h *TicketHandler) ListByStatus(c echo.Context) error {
	tickets, err := h.tickets.ListByStatus(c.Param("status"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tickets)
}

// ListByPriority returns the tickets with one priority.
func (h *TicketHandler) ListByPriority(c echo.Context) error {
	tickets, err := h.tickets.ListByPriority(c.Param("priority"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tickets)
}

// ListEpics returns all epics.
func (h *TicketHandler) ListEpics(c echo.Context) error {
	return JSON(c, http.StatusOK, h.tickets.ListEpics())
}

// Suggest returns suggestions for a partial ticket without storing anything.
func (h *TicketHandler) Suggest(c echo.Context) error {
	var dto service.SuggestDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	return JSON(c, http.StatusOK, h.tickets.Suggest(dto))
}
