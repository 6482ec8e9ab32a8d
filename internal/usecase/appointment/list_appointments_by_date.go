package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

// Execute lists every appointment starting on the local calendar day of date,
// whatever its status, ordered by start.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentView, error) {

	day := timezone.DayRange(date, uc.loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, day.Start, day.End, "")
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentViews(appointments, uc.loc), nil
}
