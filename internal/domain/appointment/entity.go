package appointment

import (
	"time"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SetStatus moves ap to the requested status if the transition is allowed.
func SetStatus(ap *models.Appointment, to Status) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}

// EndFor computes the end instant from the service duration. The result is
// stored and never recomputed when the service changes later.
func EndFor(start time.Time, svc *models.Service) time.Time {
	return start.Add(svc.Duration())
}

// Overlaps is the half-open interval test used by the slot query.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// BlocksSlot reports whether an appointment in status s occupies its interval.
func BlocksSlot(s Status) bool {
	return s != StatusCanceled
}
