package main

import (
	"os"

	"notes_service/internal/events"
	"notes_service/internal/kafka"

	"github.com/rs/zerolog"
)

var audit = zerolog.New(os.Stdout).With().Timestamp().Str("stream", "note.activity").Logger()

func registerAuditHandlers(consumer *kafka.Consumer) {
	for _, eventType := range []string{
		events.NoteCreated,
		events.NoteUpdated,
		events.NoteDeleted,
		events.NoteRestored,
	} {
		consumer.RegisterHandler(eventType, logNoteActivity)
	}
	consumer.RegisterHandler(events.NoteShared, logSharingActivity)
	consumer.RegisterHandler(events.NoteUnshared, logSharingActivity)
}

func logNoteActivity(event events.NoteEvent) error {
	audit.Info().
		Str("eventType", event.EventType).
		Str("noteId", event.NoteID).
		Str("ownerId", event.OwnerID).
		Str("actionBy", event.ActionBy).
		Time("at", event.Timestamp).
		Msg("Note activity")
	return nil
}

func logSharingActivity(event events.NoteEvent) error {
	entry := audit.Info().
		Str("eventType", event.EventType).
		Str("noteId", event.NoteID).
		Str("actionBy", event.ActionBy).
		Time("at", event.Timestamp)
	if event.SharedWithUserID != nil {
		entry = entry.Str("sharedWith", *event.SharedWithUserID)
	}
	if event.AccessType != nil && *event.AccessType != "" {
		entry = entry.Str("accessType", *event.AccessType)
	}
	entry.Msg("Note sharing activity")
	return nil
}
