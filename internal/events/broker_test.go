package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToAllSubscribers(t *testing.T) {
	b := NewBroker(4)

	a, cancelA := b.Subscribe()
	c, cancelC := b.Subscribe()
	defer cancelA()
	defer cancelC()

	b.Publish(Event{Topic: TopicAppointments, Action: ActionCreated, ID: 7})

	for _, ch := range []<-chan Event{a, c} {
		select {
		case ev := <-ch:
			assert.Equal(t, TopicAppointments, ev.Topic)
			assert.Equal(t, uint(7), ev.ID)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish(Event{Topic: TopicClients, ID: 1})
	b.Publish(Event{Topic: TopicClients, ID: 2})

	ev := <-ch
	assert.Equal(t, uint(1), ev.ID)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %d", ev.ID)
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe()
	require.Equal(t, 1, b.Subscribers())

	cancel()
	cancel()

	assert.Equal(t, 0, b.Subscribers())
	_, open := <-ch
	assert.False(t, open)

	b.Publish(Event{Topic: TopicServices})
}
