package pattern

import (
	"errors"
	"fmt"
)

// ErrCodeInvalidArgumentShape identifies constructor arguments that match
// none of the supported call shapes.
const ErrCodeInvalidArgumentShape = "INVALID_ARGUMENT_SHAPE"

// ArgumentError reports an argument FromArgs could not place.
type ArgumentError struct {
	// Position is the zero-based index of the offending argument.
	Position int
	Message  string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %d: %s", ErrCodeInvalidArgumentShape, e.Position, e.Message)
}

// IsArgumentShapeError reports whether err is, or wraps, an ArgumentError.
func IsArgumentShapeError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
