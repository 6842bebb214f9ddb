package events

// Note Event Types
const (
	NoteCreated  = "NOTE_CREATED"
	NoteUpdated  = "NOTE_UPDATED"
	NoteDeleted  = "NOTE_DELETED"
	NoteRestored = "NOTE_RESTORED"
	NoteShared   = "NOTE_SHARED"
	NoteUnshared = "NOTE_UNSHARED"
)

// Kafka Topics
const (
	NoteActivityTopic = "note.activity"
)
