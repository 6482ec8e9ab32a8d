package appointment

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
)

type DeleteAppointment struct {
	repo      domain.Repository
	reminders Reminders
	events    events.Publisher
	log       zerolog.Logger
}

func NewDeleteAppointment(
	repo domain.Repository,
	reminders Reminders,
	pub events.Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:      repo,
		reminders: reminders,
		events:    pub,
		log:       logger.Component("appointments"),
	}
}

// Execute removes the row permanently and cancels its reminder. Deleting a
// missing id is ignored.
func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	deleted, err := uc.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.reminders.Cancel(ctx, id); err != nil {
		uc.log.Warn().Err(err).Uint("appointment_id", id).Msg("reminder cancel failed")
	}

	if deleted {
		publish(uc.events, events.ActionDeleted, id, nil)
	}
	return nil
}
