package domain

// Tag represents a stored tag label in the domain model.
type Tag struct {
	ID    TagID
	Label string
}

// NewTag creates a new Tag with the given label.
func NewTag(label string) Tag {
	return Tag{Label: label}
}

// IsValid checks if the tag has valid data.
func (t Tag) IsValid() bool {
	return t.Label != ""
}
