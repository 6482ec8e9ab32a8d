package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type UpdateAppointmentInput struct {
	ID uint
	CreateAppointmentInput
}

type UpdateAppointment struct {
	repo        domain.Repository
	reminders   Reminders
	events      events.Publisher
	metrics     *metrics.Metrics
	defaultLead time.Duration
	log         zerolog.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	reminders Reminders,
	pub events.Publisher,
	m *metrics.Metrics,
	defaultLead time.Duration,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:        repo,
		reminders:   reminders,
		events:      pub,
		metrics:     m,
		defaultLead: defaultLead,
		log:         logger.Component("appointments"),
	}
}

// Execute rewrites client, service, start and notes. The end is recomputed
// from the chosen service and the overlap check skips the row itself. A
// missing appointment is a no-op and returns nil, nil.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	client, err := loadClient(ctx, uc.repo, in.ClientID)
	if err != nil {
		return nil, err
	}

	svc, err := loadService(ctx, uc.repo, in.ServiceID)
	if err != nil {
		return nil, err
	}
	// keeping an already deactivated service is allowed
	if !svc.Active && svc.ID != ap.ServiceID {
		return nil, httperr.ErrBusiness(httperr.CodeServiceInactive)
	}

	start := in.Start.Truncate(time.Second).UTC()
	end := domain.EndFor(start, svc)

	if err := uc.repo.AssertNoTimeConflict(ctx, start, end, ap.ID); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			uc.metrics.OverlapRejections.Inc()
		}
		return nil, err
	}

	ap.ClientID = client.ID
	ap.Client = *client
	ap.ServiceID = svc.ID
	ap.Service = *svc
	ap.StartTime = start
	ap.EndTime = end
	ap.Notes = strings.TrimSpace(in.Notes)
	ap.ReminderMin = resolveLead(in.ReminderMin, uc.defaultLead)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	syncReminder(ctx, uc.reminders, ap, uc.log)
	publish(uc.events, events.ActionUpdated, ap.ID, nil)

	return ap, nil
}
