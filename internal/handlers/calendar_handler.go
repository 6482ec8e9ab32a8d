package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/ics"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

type PeriodLister interface {
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
		status domain.Status,
	) ([]models.Appointment, error)
}

type CalendarHandler struct {
	source PeriodLister
	loc    *time.Location
}

func NewCalendarHandler(source PeriodLister, loc *time.Location) *CalendarHandler {
	return &CalendarHandler{source: source, loc: loc}
}

// ICS exports ?from=&to= (inclusive local days). The default window starts at
// the previous month and runs six months ahead.
func (h *CalendarHandler) ICS(c *gin.Context) {
	now := time.Now().In(h.loc)
	thisMonth := timezone.MonthRange(now.Year(), now.Month(), h.loc)
	start := thisMonth.Start.AddDate(0, -1, 0)
	end := thisMonth.Start.AddDate(0, 6, 0)

	from, ok := queryDate(c, "from", h.loc)
	if !ok {
		return
	}
	to, ok := queryDate(c, "to", h.loc)
	if !ok {
		return
	}
	if from != nil {
		start = *from
	}
	if to != nil {
		end = timezone.DayRange(*to, h.loc).End
	}
	if !end.After(start) {
		httperr.BadRequest(c, "invalid_range", "The end date is before the start date.")
		return
	}

	apps, err := h.source.ListAppointmentsForPeriod(c.Request.Context(), start, end, "")
	if err != nil {
		httperr.Respond(c, err, "failed_to_export_calendar")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agenda.ics"`)
	c.Data(200, "text/calendar; charset=utf-8", []byte(ics.Export(apps, time.Now())))
}
