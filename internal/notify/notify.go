// Package notify delivers reminder notifications.
package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
)

// ChannelAppointments is the single channel every reminder is posted on.
const ChannelAppointments = "appointments"

type Notification struct {
	Channel       string `json:"channel"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	URL           string `json:"url"`
	AppointmentID uint   `json:"appointment_id"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ===============================
// Log
// ===============================

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	l.log.Info().
		Str("channel", n.Channel).
		Uint("appointment_id", n.AppointmentID).
		Str("title", n.Title).
		Str("body", n.Body).
		Msg("notification")
	return nil
}

// ===============================
// Live stream
// ===============================

// BrokerNotifier shows the reminder on every connected screen.
type BrokerNotifier struct {
	pub events.Publisher
}

func NewBrokerNotifier(pub events.Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (b *BrokerNotifier) Notify(_ context.Context, n Notification) error {
	b.pub.Publish(events.Event{
		Topic:    events.TopicReminders,
		Action:   events.ActionReminder,
		ID:       n.AppointmentID,
		Message:  n.Body,
		Metadata: n,
	})
	return nil
}

// ===============================
// Fan-out
// ===============================

type Multi []Notifier

// Notify delivers to every notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
