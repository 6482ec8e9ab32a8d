package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	"github.com/BruksfildServices01/massage-scheduler/internal/messaging"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
	"github.com/BruksfildServices01/massage-scheduler/internal/notify"
)

type AppointmentSource interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

// Worker turns a fired job into a notification. It re-reads the appointment
// so edits made after scheduling are reflected.
type Worker struct {
	source   AppointmentSource
	notifier notify.Notifier
	loc      *time.Location
	openURL  string
	metrics  *metrics.Metrics
}

func NewWorker(
	source AppointmentSource,
	notifier notify.Notifier,
	loc *time.Location,
	openURL string,
	m *metrics.Metrics,
) *Worker {
	return &Worker{
		source:   source,
		notifier: notifier,
		loc:      loc,
		openURL:  openURL,
		metrics:  m,
	}
}

func (w *Worker) Handle(ctx context.Context, appointmentID uint) error {
	ap, err := w.source.GetAppointment(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		w.metrics.RemindersFailed.Inc()
		return fmt.Errorf("load appointment %d: %w", appointmentID, err)
	}

	n := notify.Notification{
		Channel:       notify.ChannelAppointments,
		Title:         messaging.ReminderTitle,
		Body:          messaging.ReminderText(ap.Service.Name, ap.Client.Name, ap.StartTime.In(w.loc)),
		URL:           w.openURL,
		AppointmentID: ap.ID,
	}

	if err := w.notifier.Notify(ctx, n); err != nil {
		w.metrics.RemindersFailed.Inc()
		return err
	}

	w.metrics.RemindersFired.Inc()
	return nil
}
