package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ConflictError{Msg: "Some seats are not available"})
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "create booking: Some seats are not available", err.Error())

	assert.True(t, IsValidation(fmt.Errorf("x: %w", ValidationError{Field: "age"})))
	assert.True(t, IsNotFound(NotFoundError{Resource: "route"}))
	assert.True(t, IsInternal(InternalError{}))
}

func TestPreconditionError(t *testing.T) {
	err := fmt.Errorf("load seats page: %w", PreconditionError{Key: "selectedBus", Route: "/search"})

	pre, ok := AsPrecondition(err)
	assert.True(t, ok)
	assert.Equal(t, "selectedBus", pre.Key)
	assert.Equal(t, "/search", pre.Route)
	assert.Contains(t, err.Error(), "precondition not met")

	_, ok = AsPrecondition(NotFoundError{})
	assert.False(t, ok)
}

func TestValidationErrorMessages(t *testing.T) {
	assert.Equal(t, "age: must be positive", ValidationError{Field: "age", Msg: "must be positive"}.Error())
	assert.Equal(t, "invalid email", ValidationError{Field: "email"}.Error())
	assert.Equal(t, "validation error", ValidationError{}.Error())
	assert.Equal(t, "route not found", NotFoundError{Resource: "route"}.Error())
}
