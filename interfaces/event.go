package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Ledger mutations
	EventTypeTransactionDeleted EventType = "transaction.deleted"
	EventTypeRepeatingDeleted   EventType = "repeating.deleted"
	EventTypeAccountPurged      EventType = "account.purged"
	EventTypeAccountDeleted     EventType = "account.deleted"
	EventTypeLedgerReset        EventType = "ledger.reset"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventPublisher delivers ledger events to interested parties
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }

func (e *Event) String() string {
	jsonData, err := json.Marshal(e)
	if err != nil {
		return "Error serializing event"
	}
	return string(jsonData)
}

// NewEvent creates a new event with a fresh ID and the current timestamp
func NewEvent(eventType EventType, source string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Data:      make(map[string]interface{}),
	}
}

// WithData adds data to the event
func (e *Event) WithData(key string, value interface{}) *Event {
	e.Data[key] = value
	return e
}
