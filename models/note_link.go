package models

import (
	"time"

	"github.com/google/uuid"
)

// Link directions as seen from a given note.
const (
	LinkOutgoing = "outgoing"
	LinkIncoming = "incoming"
)

// NoteLink is a directed edge between two notes owned by the same user.
// A link A->B is outgoing for A and incoming for B.
type NoteLink struct {
	SourceID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"source_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"target_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// LinkedNote is one entry of a note's link view, tagged with the edge
// direction so the client can render arrows.
type LinkedNote struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	LinkType string    `json:"link_type"`
}
