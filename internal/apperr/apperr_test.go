package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorKeepsFirstMessagePerField(t *testing.T) {
	v := NewValidation()
	assert.NoError(t, v.OrNil())

	v.Add("email", "required")
	v.Add("email", "invalid email")
	v.Add("amount", "must not be negative")

	assert.Equal(t, "required", v.Fields["email"])
	assert.Equal(t, "validation failed: amount: must not be negative; email: required", v.Error())
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", v.OrNil())))
}

func TestKindsSurviveWrapping(t *testing.T) {
	nf := fmt.Errorf("load: %w", NotFound("domain", 7))
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.EqualError(t, nf, "load: domain 7 not found")

	cause := errors.New("insert failed")
	ie := &IntegrityError{Op: "create hosting service", Err: cause}
	assert.True(t, IsIntegrity(ie))
	assert.ErrorIs(t, ie, cause)
}
