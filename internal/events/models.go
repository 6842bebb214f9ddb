package events

import (
	"strconv"
	"time"
)

// NoteEvent represents events related to note operations
type NoteEvent struct {
	EventType string    `json:"eventType"`
	NoteID    string    `json:"noteId"`
	OwnerID   string    `json:"ownerId"`
	ActionBy  string    `json:"actionBy"`
	Timestamp time.Time `json:"timestamp"`
	// Additional fields for sharing events
	SharedWithUserID *string `json:"sharedWithUserId,omitempty"`
	AccessType       *string `json:"accessType,omitempty"`
}

// NewNoteEvent creates a new note event
func NewNoteEvent(eventType string, noteID, ownerID, actionBy uint) *NoteEvent {
	return &NoteEvent{
		EventType: eventType,
		NoteID:    strconv.FormatUint(uint64(noteID), 10),
		OwnerID:   strconv.FormatUint(uint64(ownerID), 10),
		ActionBy:  strconv.FormatUint(uint64(actionBy), 10),
		Timestamp: time.Now(),
	}
}

// NewNoteSharingEvent creates a new sharing event
func NewNoteSharingEvent(eventType string, noteID, ownerID, actionBy, sharedWithUserID uint, accessType string) *NoteEvent {
	event := NewNoteEvent(eventType, noteID, ownerID, actionBy)
	sharedWithStr := strconv.FormatUint(uint64(sharedWithUserID), 10)
	event.SharedWithUserID = &sharedWithStr
	event.AccessType = &accessType
	return event
}
