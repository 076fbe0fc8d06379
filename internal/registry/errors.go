package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("appointment not found")
	ErrAllocatorExhausted = errors.New("reference identifier space exhausted")
	ErrUnavailable        = errors.New("appointment store unavailable")
)

// InvalidInputError names the field that failed validation so callers can
// report it back to the patient.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AsInvalidInput unwraps err into an InvalidInputError if one is present.
func AsInvalidInput(err error) (*InvalidInputError, bool) {
	var ie *InvalidInputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
