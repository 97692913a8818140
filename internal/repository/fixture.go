package repository

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sumire/backlog/internal/domain"
)

//go:embed seed.yaml
var defaultFixture []byte

// Fixture is the seed data a Store is populated with at startup.
type Fixture struct {
	Labels  []FixtureLabel  `yaml:"labels"`
	Tickets []FixtureTicket `yaml:"tickets"`
}

// FixtureLabel is a label in a fixture file.
type FixtureLabel struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// FixtureTicket is a ticket in a fixture file. Labels are referenced by name.
type FixtureTicket struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Status      string    `yaml:"status"`
	Priority    string    `yaml:"priority"`
	Labels      []string  `yaml:"labels"`
	Epic        bool      `yaml:"epic"`
	CreatedAt   time.Time `yaml:"createdAt"`
	UpdatedAt   time.Time `yaml:"updatedAt"`
}

// DefaultFixture returns the embedded demo board.
func DefaultFixture() (Fixture, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return f, nil
}

// Seed populates the store with the fixture. Labels are created first so that
// ids come out as label-1..label-N and ticket-1..ticket-M in file order.
// Every ticket is checked before anything is stored, so a bad fixture leaves
// the store untouched.
func (s *Store) Seed(f Fixture) error {
	known := make(map[string]domain.Label, len(f.Labels))
	for _, fl := range f.Labels {
		known[fl.Name] = domain.Label{Name: fl.Name, Color: fl.Color}
	}
	for i, ft := range f.Tickets {
		if _, err := ft.toTicket(known); err != nil {
			return fmt.Errorf("seed ticket %d: %w", i+1, err)
		}
	}

	byName := make(map[string]domain.Label, len(f.Labels))
	for _, fl := range f.Labels {
		l := s.Labels.Create(fl.Name, fl.Color)
		byName[l.Name] = l
	}

	for i, ft := range f.Tickets {
		t, err := ft.toTicket(byName)
		if err != nil {
			return fmt.Errorf("seed ticket %d: %w", i+1, err)
		}
		s.Tickets.insert(t)
	}
	return nil
}

func (ft FixtureTicket) toTicket(labels map[string]domain.Label) (domain.Ticket, error) {
	status, err := domain.ParseTicketStatus(ft.Status)
	if err != nil {
		return domain.Ticket{}, err
	}
	priority, err := domain.ParseTicketPriority(ft.Priority)
	if err != nil {
		return domain.Ticket{}, err
	}

	attached := make([]domain.Label, 0, len(ft.Labels))
	for _, name := range ft.Labels {
		l, ok := labels[name]
		if !ok {
			return domain.Ticket{}, fmt.Errorf("unknown label %q", name)
		}
		attached = append(attached, l)
	}

	if ft.UpdatedAt.Before(ft.CreatedAt) {
		return domain.Ticket{}, fmt.Errorf("updatedAt before createdAt")
	}

	return domain.Ticket{
		Title:       ft.Title,
		Description: ft.Description,
		Status:      status,
		Priority:    priority,
		Labels:      attached,
		IsEpic:      ft.Epic,
		CreatedAt:   ft.CreatedAt,
		UpdatedAt:   ft.UpdatedAt,
	}, nil
}
