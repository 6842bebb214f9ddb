package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"notes_service/internal/events"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	noteWriter *kafka.Writer
}

// NewProducer creates a new Kafka producer for the note activity topic
func NewProducer(brokers []string) *Producer {
	noteWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        events.NoteActivityTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{
		noteWriter: noteWriter,
	}
}

// PublishNoteEvent publishes a note event to the note.activity topic
func (p *Producer) PublishNoteEvent(ctx context.Context, event *events.NoteEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal note event: %v", err)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.NoteID),
		Value: value,
		Time:  event.Timestamp,
	}

	err = p.noteWriter.WriteMessages(ctx, message)
	if err != nil {
		log.Printf("Failed to publish note event: %v", err)
		return err
	}

	log.Printf("Published note event: %s for note %s", event.EventType, event.NoteID)
	return nil
}

// Close closes the Kafka writer
func (p *Producer) Close() error {
	if p.noteWriter != nil {
		return p.noteWriter.Close()
	}
	return nil
}
