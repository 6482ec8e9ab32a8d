package validators_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/validators"
)

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"+54 11 5555-0000": true,
		"(11) 5555.0000":   true,
		"5491155550000":    true,
		"12345":            false,
		"call me":          false,
		"+54 11 5555 0000 0000 00": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validators.IsPhone(in), in)
	}
}

func TestPhoneRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", validators.Phone))

	type req struct {
		Phone string `validate:"phone"`
	}

	assert.NoError(t, v.Struct(req{}))
	assert.NoError(t, v.Struct(req{Phone: "+54 11 5555 0000"}))
	assert.Error(t, v.Struct(req{Phone: "nope"}))
}

func TestRegister(t *testing.T) {
	assert.NoError(t, validators.Register())
}
