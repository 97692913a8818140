package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/backlog/internal/service"
)

// LabelHandler handles label endpoints.
type LabelHandler struct {
	labels *service.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labels *service.LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// List returns every label.
func (h *LabelHandler) List(c echo.Context) error {
	return JSON(c, http.StatusOK, h.labels.List())
}

// Get returns a single label.
func (h *LabelHandler) Get(c echo.Context) error {
	label, err := h.labels.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, label)
}

// Create creates a label.
func (h *LabelHandler) Create(c echo.Context) error {
	var dto service.CreateLabelDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	label, err := h.labels.Create(dto)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, label)
}
