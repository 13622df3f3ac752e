package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact about a tracked click, published to the analytics bus.
type Event interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
	// AggregateID is the label or path the event was raised for.
	AggregateID() string
}

// Base carries the fields every event shares.
type Base struct {
	ID      string    `json:"event_id"`
	At      time.Time `json:"occurred_at"`
	Subject string    `json:"subject"`
}

func newBase(subject string) Base {
	return Base{
		ID:      uuid.Must(uuid.NewV7()).String(),
		At:      time.Now().UTC(),
		Subject: subject,
	}
}

func (e Base) EventID() string       { return e.ID }
func (e Base) OccurredAt() time.Time { return e.At }
func (e Base) AggregateID() string   { return e.Subject }
