package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentView, error) {

	r := timezone.MonthRange(year, time.Month(month), uc.loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, r.Start, r.End, "")
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentViews(appointments, uc.loc), nil
}

// DayCounts groups the month's appointments by local calendar day. Days
// without appointments are omitted; rows are in ascending day order.
type DayCounts struct {
	repo domain.Repository
	loc  *time.Location
}

func NewDayCounts(repo domain.Repository, loc *time.Location) *DayCounts {
	return &DayCounts{repo: repo, loc: loc}
}

// Execute counts appointments of any status when status is empty.
func (uc *DayCounts) Execute(
	ctx context.Context,
	year int,
	month int,
	status string,
) ([]dto.DayCount, error) {

	var st domain.Status
	if status != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	r := timezone.MonthRange(year, time.Month(month), uc.loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, r.Start, r.End, st)
	if err != nil {
		return nil, err
	}

	// rows come ordered by start, so days arrive in ascending order
	out := make([]dto.DayCount, 0)
	for _, ap := range appointments {
		key := timezone.DayKey(ap.StartTime, uc.loc)
		if n := len(out); n > 0 && out[n-1].Day == key {
			out[n-1].Count++
			continue
		}
		out = append(out, dto.DayCount{Day: key, Count: 1})
	}

	return out, nil
}
