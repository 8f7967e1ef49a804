package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"},
	)

	assert.Equal(t, "validation failed", err.Error())
	assert.Len(t, err.Details, 1)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "quantity", ve.Details[0].Field)

	_, ok = IsValidationError(stderrors.New("other"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order ORD-ABCD1234 not found")

	assert.Equal(t, "order ORD-ABCD1234 not found", err.Error())

	_, ok := IsNotFoundError(err)
	assert.True(t, ok)

	_, ok = IsNotFoundError(stderrors.New("other"))
	assert.False(t, ok)
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError(10, 3)

	assert.Equal(t, "insufficient stock: requested 10, available 3", err.Error())

	ise, ok := IsInsufficientStockError(err)
	assert.True(t, ok)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 3, ise.Available)
}

func TestCompensationError(t *testing.T) {
	cause := stderrors.New("insert failed")
	rollback := stderrors.New("connection lost")
	err := NewCompensationError("order creation failed after stock reservation", cause, rollback)

	assert.Contains(t, err.Error(), "insert failed")
	assert.Contains(t, err.Error(), "stock rollback also failed")
	assert.Equal(t, cause, stderrors.Unwrap(err))

	_, ok := IsCompensationError(err)
	assert.True(t, ok)
}

func TestInternalError(t *testing.T) {
	cause := stderrors.New("driver failure")
	err := NewInternalError("querying stock", cause)

	assert.Equal(t, "querying stock: driver failure", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))

	bare := NewInternalError("unknown", nil)
	assert.Equal(t, "unknown", bare.Error())
}
