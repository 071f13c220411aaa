package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10,max=2000"`
	Status  string `validate:"omitempty,oneof=new in_progress resolved"`
}

func validate(t *testing.T, form sampleForm) error {
	t.Helper()
	return validator.New().Struct(form)
}

func TestFormatValidationErrorJoinsFields(t *testing.T) {
	err := validate(t, sampleForm{Email: "not-an-email", Message: "too short"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Name is required")
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Message must be at least 10 characters")
}

func TestOneofMessageListsValues(t *testing.T) {
	err := validate(t, sampleForm{
		Name:    "Ram",
		Email:   "ram@example.com",
		Message: "a perfectly fine message",
		Status:  "archived",
	})
	require.Error(t, err)

	assert.Equal(t, "Status must be one of: new, in_progress, resolved", FormatValidationError(err))
}

func TestFirstValidationError(t *testing.T) {
	err := validate(t, sampleForm{})
	require.Error(t, err)

	assert.Equal(t, "Name is required", FirstValidationError(err))
}

func TestNonValidationErrorPassesThrough(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", FormatValidationError(err))
}

func TestMessageBoundaries(t *testing.T) {
	base := sampleForm{Name: "Ram", Email: "ram@example.com"}

	base.Message = "123456789" // 9 chars
	assert.Error(t, validate(t, base))

	base.Message = "1234567890" // 10 chars
	assert.NoError(t, validate(t, base))

	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}
	base.Message = string(long)
	assert.Error(t, validate(t, base))
}
