package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

type failing struct{}

func (failing) Notify(context.Context, Notification) error { return errors.New("down") }

func sample() Notification {
	return Notification{
		Channel:       ChannelAppointments,
		Title:         "Appointment reminder",
		Body:          "Relax Massage with Ana today 10/03/2025 at 10:00",
		URL:           "http://localhost:8080/",
		AppointmentID: 4,
	}
}

func TestMailNotifier(t *testing.T) {
	s := &fakeSender{}
	n := NewMailNotifierWith(s, "agenda@example.com", "me@example.com")

	require.NoError(t, n.Notify(context.Background(), sample()))
	require.Len(t, s.sent, 1)

	assert.Equal(t, []string{"Appointment reminder"}, s.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"me@example.com"}, s.sent[0].GetHeader("To"))

	var buf bytes.Buffer
	_, err := s.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Relax Massage with Ana")
}

func TestBrokerNotifierPublishesReminder(t *testing.T) {
	b := events.NewBroker(2)
	ch, cancel := b.Subscribe()
	defer cancel()

	require.NoError(t, NewBrokerNotifier(b).Notify(context.Background(), sample()))

	ev := <-ch
	assert.Equal(t, events.TopicReminders, ev.Topic)
	assert.Equal(t, uint(4), ev.ID)
	assert.Contains(t, ev.Message, "Ana")
}

func TestMultiJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	m := Multi{NewLogNotifier(zerolog.New(&buf)), failing{}}

	err := m.Notify(context.Background(), sample())
	assert.EqualError(t, err, "down")
	assert.Contains(t, buf.String(), "Appointment reminder")
}
