package broker

const (
	UserEventsTopic     = "user.events"
	CategoryEventsTopic = "category.events"
	NoteEventsTopic     = "note.events"
	LinkEventsTopic     = "link.events"
)
