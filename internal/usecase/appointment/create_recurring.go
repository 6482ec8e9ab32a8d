package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

const (
	maxOccurrences = 52
	maxHorizon     = 1 // years
)

type CreateRecurringInput struct {
	CreateAppointmentInput

	// Rule is an RFC 5545 RRULE such as "FREQ=WEEKLY;COUNT=8".
	Rule string
}

type RecurringResult struct {
	Created   []*models.Appointment `json:"created"`
	Conflicts []time.Time           `json:"conflicts"`
}

// CreateRecurring expands a rule from the first start and books every free
// occurrence through CreateAppointment. Taken slots are reported, not fatal.
type CreateRecurring struct {
	create *CreateAppointment
}

func NewCreateRecurring(create *CreateAppointment) *CreateRecurring {
	return &CreateRecurring{create: create}
}

func (uc *CreateRecurring) Execute(
	ctx context.Context,
	in CreateRecurringInput,
) (*RecurringResult, error) {

	occurrences, err := Occurrences(in.Rule, in.Start)
	if err != nil {
		return nil, err
	}

	res := &RecurringResult{
		Created:   []*models.Appointment{},
		Conflicts: []time.Time{},
	}

	for _, start := range occurrences {
		one := in.CreateAppointmentInput
		one.Start = start

		ap, err := uc.create.Execute(ctx, one)
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			res.Conflicts = append(res.Conflicts, start)
			continue
		}
		if err != nil {
			return res, err
		}
		res.Created = append(res.Created, ap)
	}

	return res, nil
}

// Occurrences expands rule from start, capped to a year and 52 dates.
func Occurrences(rule string, start time.Time) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRule)
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRule)
	}
	opt.Dtstart = start
	if opt.Count <= 0 || opt.Count > maxOccurrences {
		opt.Count = maxOccurrences
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRule)
	}

	horizon := start.AddDate(maxHorizon, 0, 0)
	dates := make([]time.Time, 0, opt.Count)
	next := r.Iterator()
	for len(dates) < maxOccurrences {
		t, ok := next()
		if !ok || t.After(horizon) {
			break
		}
		dates = append(dates, t)
	}
	return dates, nil
}
