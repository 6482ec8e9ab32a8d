// Package events fans write notifications out to live screens and background
// consumers.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TopicAppointments = "appointments"
	TopicClients      = "clients"
	TopicServices     = "services"
	TopicReminders    = "reminders"
)

const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionStatus   = "status_changed"
	ActionReminder = "reminder"
)

type Event struct {
	Topic    string    `json:"topic"`
	Action   string    `json:"action"`
	ID       uint      `json:"id,omitempty"`
	Message  string    `json:"message,omitempty"`
	Metadata any       `json:"metadata,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher is what writers depend on.
type Publisher interface {
	Publish(ev Event)
}

type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 32
	}
	return &Broker{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (b *Broker) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			log.Warn().
				Int("subscriber", id).
				Str("topic", ev.Topic).
				Msg("subscriber queue full, dropping event")
		}
	}
}

// Subscribe returns a channel of events and a function that releases it.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
		})
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(Event) {}
