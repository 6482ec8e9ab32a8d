package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
)

// Validate checks the fields shared by create and edit.
func Validate(name string, durationMin int, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrBusiness(httperr.CodeBlankName)
	}
	if durationMin <= 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}
	if price.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeNegativePrice)
	}
	return nil
}
