// Package reminder schedules one deferred notification per appointment.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
)

// ASAPDelay is used when the trigger time has already passed but the
// appointment has not started yet.
const ASAPDelay = 5 * time.Second

// Handler runs when a reminder fires.
type Handler func(ctx context.Context, appointmentID uint) error

// Queue holds at most one job per key. Enqueue replaces the existing job.
type Queue interface {
	Enqueue(ctx context.Context, key string, appointmentID uint, fireAt time.Time) error
	Cancel(ctx context.Context, key string) error
}

const keyPrefix = "appointment_reminder_"

// Key is the unique work name of an appointment's reminder.
func Key(appointmentID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, appointmentID)
}

// TriggerTime returns when the reminder for an appointment starting at start
// should fire. ok is false when the appointment has already started.
func TriggerTime(start, now time.Time, lead time.Duration) (time.Time, bool) {
	if !start.After(now) {
		return time.Time{}, false
	}
	trigger := start.Add(-lead)
	if !trigger.After(now) {
		return now.Add(ASAPDelay), true
	}
	return trigger, true
}

type Scheduler struct {
	queue   Queue
	metrics *metrics.Metrics
	now     func() time.Time
	log     zerolog.Logger
}

func NewScheduler(queue Queue, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		queue:   queue,
		metrics: m,
		now:     time.Now,
		log:     logger.Component("reminder"),
	}
}

// Schedule replaces the appointment's reminder. A start in the past cancels it.
func (s *Scheduler) Schedule(ctx context.Context, appointmentID uint, start time.Time, lead time.Duration) error {
	fireAt, ok := TriggerTime(start, s.now(), lead)
	if !ok {
		return s.Cancel(ctx, appointmentID)
	}

	if err := s.queue.Enqueue(ctx, Key(appointmentID), appointmentID, fireAt); err != nil {
		return fmt.Errorf("enqueue reminder %d: %w", appointmentID, err)
	}

	s.metrics.RemindersScheduled.Inc()
	s.log.Debug().
		Uint("appointment_id", appointmentID).
		Time("fire_at", fireAt).
		Msg("reminder scheduled")
	return nil
}

func (s *Scheduler) Cancel(ctx context.Context, appointmentID uint) error {
	if err := s.queue.Cancel(ctx, Key(appointmentID)); err != nil {
		return fmt.Errorf("cancel reminder %d: %w", appointmentID, err)
	}
	s.metrics.RemindersCanceled.Inc()
	return nil
}
