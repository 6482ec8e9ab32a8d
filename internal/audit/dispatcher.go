package audit

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
)

type Event struct {
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch queues ev; a full queue drops it so requests never wait on audit.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Follow records every write published on the broker. The returned function
// releases the subscription and waits for events already received to be queued.
func (d *Dispatcher) Follow(b *events.Broker) func() {
	ch, cancel := b.Subscribe()
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for ev := range ch {
			if ev.Topic == events.TopicReminders {
				continue
			}
			var id *uint
			if ev.ID != 0 {
				v := ev.ID
				id = &v
			}
			d.Dispatch(Event{
				Action:   entityName(ev.Topic) + "_" + ev.Action,
				Entity:   entityName(ev.Topic),
				EntityID: id,
				Metadata: ev.Metadata,
			})
		}
	}()
	return func() {
		cancel()
		<-finished
	}
}

// Close stops accepting events and waits for queued ones to be written.
// Events dispatched afterwards are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

func entityName(topic string) string {
	switch topic {
	case events.TopicAppointments:
		return "appointment"
	case events.TopicClients:
		return "client"
	case events.TopicServices:
		return "service"
	default:
		return topic
	}
}
