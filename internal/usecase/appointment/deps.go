package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

// Reminders is the part of the reminder scheduler the write paths use.
type Reminders interface {
	Schedule(ctx context.Context, appointmentID uint, start time.Time, lead time.Duration) error
	Cancel(ctx context.Context, appointmentID uint) error
}

// NoReminders disables reminder scheduling.
type NoReminders struct{}

func (NoReminders) Schedule(context.Context, uint, time.Time, time.Duration) error { return nil }
func (NoReminders) Cancel(context.Context, uint) error                            { return nil }

// resolveLead maps a requested lead in minutes onto the stored value: nil uses
// the default, a negative value disables the reminder.
func resolveLead(requested *int, def time.Duration) *int {
	if requested == nil {
		m := int(def / time.Minute)
		if m < 0 {
			return nil
		}
		return &m
	}
	if *requested < 0 {
		return nil
	}
	m := *requested
	return &m
}

// syncReminder keeps the queue in line with the row. Failures are logged and
// do not undo the write.
func syncReminder(ctx context.Context, r Reminders, ap *models.Appointment, log zerolog.Logger) {
	var err error
	lead, want := ap.ReminderLead()
	if want && ap.Status == string(domain.StatusPending) {
		err = r.Schedule(ctx, ap.ID, ap.StartTime, lead)
	} else {
		err = r.Cancel(ctx, ap.ID)
	}
	if err != nil {
		log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("reminder sync failed")
	}
}

func publish(pub events.Publisher, action string, id uint, meta any) {
	pub.Publish(events.Event{
		Topic:    events.TopicAppointments,
		Action:   action,
		ID:       id,
		Metadata: meta,
	})
}
