// Package suggest derives non-binding hints for a ticket from partial input:
// whether it is an epic, which priority its labels imply, and a description
// template when none was given.
package suggest

import (
	"regexp"
	"slices"
	"strings"

	"github.com/sumire/backlog/internal/domain"
)

// Named is anything that carries a label name.
type Named interface {
	LabelName() string
}

var epicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^EPIC:`),
	regexp.MustCompile(`(?i)^Epic:`),
	regexp.MustCompile(`(?i)\[EPIC\]`),
	regexp.MustCompile(`(?i)\[Epic\]`),
}

var priorityRules = []struct {
	priority domain.TicketPriority
	names    []string
}{
	{domain.TicketPriorityHigh, []string{"bug", "security", "hotfix"}},
	{domain.TicketPriorityMedium, []string{"feature", "enhancement"}},
	{domain.TicketPriorityLow, []string{"documentation", "testing", "refactor"}},
}

const (
	EmptyTitleDescription = "Please add a description..."

	BugDescription = "Please describe the problem in detail:\n" +
		"- What happened?\n" +
		"- What behaviour was expected?\n" +
		"- Steps to reproduce\n" +
		"- Screenshots if relevant"

	EpicDescription = "Please describe the scope of this epic:\n" +
		"- Goals and requirements\n" +
		"- Affected components\n" +
		"- Dependencies\n" +
		"- Definition of Done"

	TestingDescription = "Please describe the test requirements:\n" +
		"- Functionality to test\n" +
		"- Test types (unit, integration, E2E)\n" +
		"- Acceptance criteria"

	DocumentationDescription = "Please describe what should be documented:\n" +
		"- Audience\n" +
		"- Scope of the documentation\n" +
		"- Format (API docs, user guide, etc.)"

	GenericDescription = "Please add a detailed description:\n" +
		"- Background and context\n" +
		"- Requirements\n" +
		"- Acceptance criteria\n" +
		"- Definition of Done"
)

// Input is the partial ticket suggestions are derived from.
type Input struct {
	Title       string
	Description string
	Labels      []domain.Label
}

// Suggestions holds the derived hints. Optional hints are empty when not applicable.
type Suggestions struct {
	IsEpicDetected       bool                  `json:"isEpicDetected"`
	SuggestedPriority    domain.TicketPriority `json:"suggestedPriority,omitempty"`
	SuggestedDescription string                `json:"suggestedDescription,omitempty"`
}

// DeriveEpic reports whether the title marks the ticket as an epic.
func DeriveEpic(title string) bool {
	for _, p := range epicPatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

// PriorityFromLabels maps label names to a priority. High wins over medium over low.
func PriorityFromLabels[L Named](labels []L) (domain.TicketPriority, bool) {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, strings.ToLower(labelName(l)))
	}

	for _, rule := range priorityRules {
		for _, n := range rule.names {
			if slices.Contains(names, n) {
				return rule.priority, true
			}
		}
	}
	return "", false
}

func labelName(n Named) string {
	if n == nil {
		return ""
	}
	if l, ok := n.(*domain.Label); ok && l == nil {
		return ""
	}
	return n.LabelName()
}

// Description returns a description template matching the title.
func Description(title string) string {
	if title == "" {
		return EmptyTitleDescription
	}

	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "bug") || strings.Contains(t, "fehler"):
		return BugDescription
	case strings.Contains(t, "epic"):
		return EpicDescription
	case strings.Contains(t, "test"):
		return TestingDescription
	case strings.Contains(t, "dokumentation") || strings.Contains(t, "documentation"):
		return DocumentationDescription
	default:
		return GenericDescription
	}
}

// Generate composes the individual rules.
func Generate(in Input) Suggestions {
	s := Suggestions{IsEpicDetected: DeriveEpic(in.Title)}

	if len(in.Labels) > 0 {
		if p, ok := PriorityFromLabels(in.Labels); ok {
			s.SuggestedPriority = p
		}
	}

	if IsBlank(in.Description) {
		s.SuggestedDescription = Description(in.Title)
	}

	return s
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
