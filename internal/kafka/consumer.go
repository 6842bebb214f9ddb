package kafka

import (
	"context"
	"encoding/json"
	"log"

	"notes_service/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventHandler func(event events.NoteEvent) error

type Consumer struct {
	reader   *kafka.Reader
	handlers map[string][]EventHandler
}

// NewConsumer creates a new Kafka consumer for the note activity topic
func NewConsumer(brokers []string, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    events.NoteActivityTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader:   reader,
		handlers: make(map[string][]EventHandler),
	}
}

// RegisterHandler registers a handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start consumes messages until the context is cancelled
func (c *Consumer) Start(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Failed to read message: %v", err)
			continue
		}

		var event events.NoteEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("Failed to unmarshal event: %v", err)
			continue
		}

		for _, handler := range c.handlers[event.EventType] {
			if err := handler(event); err != nil {
				log.Printf("Error handling event %s: %v", event.EventType, err)
			}
		}
	}
}

// Close the consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
