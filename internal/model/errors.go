package model

import (
	"errors"
	"fmt"
)

// InputError marks malformed or missing input that makes scoring
// meaningless. It aborts the run; nothing downstream is computed.
// All other degraded conditions surface as reportable statuses instead.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// NewInputError builds an InputError with a formatted message.
func NewInputError(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
