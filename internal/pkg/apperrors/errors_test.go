package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewResourceNotFoundError("Student not found with ID: S999")
	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "Student not found with ID: S999", err.Error())

	assert.True(t, errors.Is(NewDuplicateResourceError("dup"), ErrDuplicateResource))
	assert.True(t, errors.Is(NewConflictError("conflict"), ErrConflict))
	assert.True(t, errors.Is(NewBusinessRuleError("rule"), ErrBusinessRule))
}

func TestValidationErrorCarriesAllMessages(t *testing.T) {
	err := NewValidationError("Student data is invalid.", []string{
		"Email 'a@b.c' is already in use by another student.",
		"The following course IDs do not exist: [99]",
	})

	assert.True(t, errors.Is(err, ErrValidationFailed))

	var validationErr *ValidationError
	require.True(t, errors.As(error(err), &validationErr))
	assert.Len(t, validationErr.Messages, 2)
	assert.Contains(t, err.Error(), "already in use")
	assert.Contains(t, err.Error(), "[99]")
}

func TestValidationErrorWithoutDetails(t *testing.T) {
	err := NewValidationError("Invalid payload.", nil)
	assert.Equal(t, "Invalid payload.", err.Error())
}
