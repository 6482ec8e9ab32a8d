package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type SetAppointmentStatus struct {
	repo      domain.Repository
	reminders Reminders
	events    events.Publisher
	log       zerolog.Logger
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	reminders Reminders,
	pub events.Publisher,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:      repo,
		reminders: reminders,
		events:    pub,
		log:       logger.Component("appointments"),
	}
}

// Execute applies a status transition. The overlap rule is not re-checked.
// Done and canceled cancel the pending reminder. A missing appointment is a
// no-op.
func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	id uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.SetStatus(ap, to); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if to.IsTerminal() {
		if err := uc.reminders.Cancel(ctx, ap.ID); err != nil {
			uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("reminder cancel failed")
		}
	}

	publish(uc.events, events.ActionStatus, ap.ID, map[string]string{
		"from": from,
		"to":   ap.Status,
	})

	return ap, nil
}
