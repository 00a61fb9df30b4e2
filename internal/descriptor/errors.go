package descriptor

import (
	"errors"
	"fmt"
)

// MalformedError reports a type or method descriptor string that does not
// match the grammar. Input is always the complete string handed to the
// parser.
type MalformedError struct {
	Input  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed descriptor %q: %s", e.Input, e.Reason)
}

// IsMalformed reports whether err is, or wraps, a *MalformedError.
func IsMalformed(err error) bool {
	var target *MalformedError

	return errors.As(err, &target)
}

func malformed(input, reason string) *MalformedError {
	return &MalformedError{Input: input, Reason: reason}
}

func errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
