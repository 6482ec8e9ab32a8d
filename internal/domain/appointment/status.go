package appointment

import (
	"strings"

	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusDone, StatusCanceled:
		return st, nil
	default:
		return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// ===============================
// Validations
// ===============================

// CanTransition allows only pending -> done and pending -> canceled.
func CanTransition(from, to Status) error {
	if from != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if to != StatusDone && to != StatusCanceled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
