package domain

// Label categorises tickets. Labels are immutable once created.
type Label struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// LabelName returns the label's name.
func (l Label) LabelName() string {
	return l.Name
}

// CloneLabels copies labels into a fresh slice, preserving nil vs empty.
func CloneLabels(labels []Label) []Label {
	if labels == nil {
		return nil
	}
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// EntityKind scopes identifier generation.
type EntityKind string

const (
	KindTicket EntityKind = "ticket"
	KindLabel  EntityKind = "label"
)
