package broker

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"
	UserDeleted EventType = "user.deleted"

	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"

	NoteCreated EventType = "note.created"
	NoteUpdated EventType = "note.updated"
	NoteDeleted EventType = "note.deleted"

	LinksReplaced EventType = "note.links_replaced"
)

// Event is the payload published to NATS after a committed mutation.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	Type      EventType              `json:"type"`
	Entity    string                 `json:"entity"`
	ActorID   uuid.UUID              `json:"actor_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

func NewEvent(eventType EventType, entity string, actorID uuid.UUID, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Entity:    entity,
		ActorID:   actorID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
