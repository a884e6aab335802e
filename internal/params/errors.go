package params

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parameter errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a lookup by an unregistered resolved name.
	ErrCodeNotFound ErrorCode = "PARAM_NOT_FOUND"

	// ErrCodeInvalidBag indicates a nil bag was supplied as a target.
	ErrCodeInvalidBag ErrorCode = "INVALID_BAG"
)

// Error reports a violated parameter contract.
type Error struct {
	Code    ErrorCode
	Message string

	// Name is the resolved name involved, if any.
	Name string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFoundError creates an Error for an unknown resolved name.
func NewNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no parameter registered under this name",
		Name:    name,
	}
}

// NewInvalidBagError creates an Error for a nil target bag.
func NewInvalidBagError() *Error {
	return &Error{
		Code:    ErrCodeInvalidBag,
		Message: "parameter bag must not be nil",
	}
}

// IsNotFound reports whether err is, or wraps, a not-found Error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsInvalidBag reports whether err is, or wraps, an invalid-bag Error.
func IsInvalidBag(err error) bool {
	return hasCode(err, ErrCodeInvalidBag)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
