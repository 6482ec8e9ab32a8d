package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type PendingSource interface {
	ListPendingFrom(ctx context.Context, from time.Time, limit int) ([]models.Appointment, error)
}

// Resync re-enqueues reminders for future pending appointments. With
// includeDue unset, appointments whose trigger already passed are skipped so
// a periodic run does not fire them twice.
func (s *Scheduler) Resync(ctx context.Context, src PendingSource, includeDue bool) (int, error) {
	now := s.now()
	apps, err := src.ListPendingFrom(ctx, now, 0)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, ap := range apps {
		lead, ok := ap.ReminderLead()
		if !ok {
			continue
		}
		if !includeDue && !ap.StartTime.Add(-lead).After(now) {
			continue
		}
		if err := s.Schedule(ctx, ap.ID, ap.StartTime, lead); err != nil {
			return n, err
		}
		n++
	}

	s.log.Info().Int("scheduled", n).Bool("include_due", includeDue).Msg("reminders resynced")
	return n, nil
}

// durable is implemented by queues that keep their jobs across restarts.
type durable interface {
	Durable() bool
}

// ResyncOnStart runs the startup resync. Due reminders are re-enqueued only
// when the queue loses its jobs on restart; a durable queue already holds
// them, or has delivered them.
func (s *Scheduler) ResyncOnStart(ctx context.Context, src PendingSource) (int, error) {
	includeDue := true
	if d, ok := s.queue.(durable); ok && d.Durable() {
		includeDue = false
	}
	return s.Resync(ctx, src, includeDue)
}

// RegisterResync adds the periodic resync to c.
func (s *Scheduler) RegisterResync(c *cron.Cron, spec string, src PendingSource) error {
	if spec == "" {
		return nil
	}
	_, err := c.AddFunc(spec, func() {
		if _, err := s.Resync(context.Background(), src, false); err != nil {
			s.log.Error().Err(err).Msg("reminder resync failed")
		}
	})
	return err
}
