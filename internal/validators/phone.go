package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// digits with optional leading +, spaces, dots, dashes and parentheses
var phonePattern = regexp.MustCompile(`^\+?[0-9 ().\-]{6,25}$`)

func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phonePattern.MatchString(s) {
		return false
	}

	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 6 && digits <= 15
}

// Phone backs the `phone` binding tag. Empty values pass so the field can
// stay optional; combine with `required` otherwise.
func Phone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return true
	}
	return IsPhone(s)
}

// Register installs the custom rules on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", Phone)
}
