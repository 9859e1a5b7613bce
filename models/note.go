package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Note is a Cornell-style note: main content, cue column and summary,
// all stored as markdown. Tags are kept as a JSON array in a single
// column via the gorm serializer.
type Note struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	CueColumn  string     `gorm:"type:text" json:"cue_column"`
	Summary    string     `gorm:"type:text" json:"summary"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Tags       []string   `gorm:"serializer:json" json:"tags"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// NoteDetail is the single-note view: the note plus its category name
// and both directions of its links.
type NoteDetail struct {
	Note
	CategoryName string       `json:"category_name,omitempty"`
	LinkedNotes  []LinkedNote `json:"linkedNotes"`
}
