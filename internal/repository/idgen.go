package repository

import (
	"fmt"
	"sync"

	"github.com/sumire/backlog/internal/domain"
)

// IDGenerator hands out "<kind>-<n>" identifiers with an independent counter per kind.
// Identifiers are never reused within the generator's lifetime.
type IDGenerator struct {
	mu   sync.Mutex
	last map[domain.EntityKind]int
}

// NewIDGenerator creates a generator whose counters all start at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{last: make(map[domain.EntityKind]int)}
}

// Next returns the next identifier for kind.
func (g *IDGenerator) Next(kind domain.EntityKind) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last[kind]++
	return fmt.Sprintf("%s-%d", kind, g.last[kind])
}
