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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	Start     time.Time
	Notes     string

	// ReminderMin overrides the default lead; negative disables the reminder.
	ReminderMin *int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo        domain.Repository
	reminders   Reminders
	events      events.Publisher
	metrics     *metrics.Metrics
	defaultLead time.Duration
	log         zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	reminders Reminders,
	pub events.Publisher,
	m *metrics.Metrics,
	defaultLead time.Duration,
) *CreateAppointment {
	return &CreateAppointment{
		repo:        repo,
		reminders:   reminders,
		events:      pub,
		metrics:     m,
		defaultLead: defaultLead,
		log:         logger.Component("appointments"),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Client / service
	// --------------------------------------------------
	if _, err := loadClient(ctx, uc.repo, in.ClientID); err != nil {
		return nil, err
	}

	svc, err := loadService(ctx, uc.repo, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceInactive)
	}

	// --------------------------------------------------
	// Slot
	// --------------------------------------------------
	start := in.Start.Truncate(time.Second).UTC()
	end := domain.EndFor(start, svc)

	if err := uc.repo.AssertNoTimeConflict(ctx, start, end, 0); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			uc.metrics.OverlapRejections.Inc()
		}
		return nil, err
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		ServiceID:   svc.ID,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus()),
		Notes:       strings.TrimSpace(in.Notes),
		ReminderMin: resolveLead(in.ReminderMin, uc.defaultLead),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.metrics.AppointmentsCreated.Inc()
	syncReminder(ctx, uc.reminders, ap, uc.log)
	publish(uc.events, events.ActionCreated, ap.ID, nil)

	return ap, nil
}

func loadClient(ctx context.Context, repo domain.Repository, id uint) (*models.Client, error) {
	c, err := repo.GetClient(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return c, err
}

func loadService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	s, err := repo.GetService(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return s, err
}
