package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Username string `validate:"required,max=30"`
	Password string `validate:"required"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&loginForm{Username: "neo", Password: "secret"}))

	err := v.Validate(&loginForm{Username: ""})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "required", fields["Username"])
	assert.Equal(t, "required", fields["Password"])
}

func TestFieldErrors_NotValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
