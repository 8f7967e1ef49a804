package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// InsufficientStockError signals that a reservation or order growth asked for
// more units than the stock register currently holds.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func NewInsufficientStockError(requested, available int) *InsufficientStockError {
	return &InsufficientStockError{Requested: requested, Available: available}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	if ise, ok := err.(*InsufficientStockError); ok {
		return ise, true
	}
	return nil, false
}

// CompensationError is raised when the stock side of a paired mutation was
// applied, the order side failed, and reversing the stock delta failed too.
// The register stays inconsistent with the order set until reconciled
// out-of-band, so callers must log this loudly and never swallow it.
type CompensationError struct {
	Message     string
	Cause       error
	RollbackErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s: %v (stock rollback also failed: %v)", e.Message, e.Cause, e.RollbackErr)
}

func (e *CompensationError) Unwrap() error {
	return e.Cause
}

func NewCompensationError(message string, cause, rollbackErr error) *CompensationError {
	return &CompensationError{
		Message:     message,
		Cause:       cause,
		RollbackErr: rollbackErr,
	}
}

func IsCompensationError(err error) (*CompensationError, bool) {
	if ce, ok := err.(*CompensationError); ok {
		return ce, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	if ie, ok := err.(*InternalError); ok {
		return ie, true
	}
	return nil, false
}
