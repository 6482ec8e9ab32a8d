// Package ics renders the agenda as an iCalendar feed.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

const productID = "-//massage-scheduler//agenda//EN"

// UID is stable per appointment so calendar clients update events in place.
func UID(ap *models.Appointment) string {
	return fmt.Sprintf("appointment-%d@massage-scheduler", ap.ID)
}

// Export renders every non-canceled appointment as a VEVENT. Client and
// Service must be preloaded.
func Export(apps []models.Appointment, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	for i := range apps {
		ap := &apps[i]
		if !domain.BlocksSlot(domain.Status(ap.Status)) {
			continue
		}

		ev := cal.AddEvent(UID(ap))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(ap.StartTime.UTC())
		ev.SetEndAt(ap.EndTime.UTC())
		ev.SetSummary(summary(ap))
		if ap.Notes != "" {
			ev.SetDescription(ap.Notes)
		}

		if ap.Status == string(domain.StatusDone) {
			ev.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ev.SetStatus(ical.ObjectStatusTentative)
		}
	}

	return cal.Serialize()
}

func summary(ap *models.Appointment) string {
	service := "Appointment"
	if ap.Service.ID != 0 {
		service = ap.Service.Name
	}
	if ap.Client.Name == "" {
		return service
	}
	return service + " - " + ap.Client.Name
}
