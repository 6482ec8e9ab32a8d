package httperr

import "errors"

// Business error codes.
const (
	CodeSlotTaken       = "slot_taken"
	CodeBlankName       = "blank_name"
	CodeInvalidDuration = "invalid_duration"
	CodeNegativePrice   = "negative_price"
	CodeClientInUse     = "client_in_use"
	CodeServiceInUse    = "service_in_use"
	CodeInvalidState    = "invalid_state"
	CodeInvalidStatus   = "invalid_status"
	CodeClientNotFound  = "client_not_found"
	CodeServiceNotFound = "service_not_found"
	CodeServiceInactive = "service_inactive"
	CodeMissingPhone    = "missing_phone"
	CodeInvalidRule     = "invalid_recurrence"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness reports whether err carries a BusinessError and returns it.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
