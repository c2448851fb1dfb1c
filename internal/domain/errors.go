package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange is wrapped when an end date precedes its start date
	// or a phase falls outside its plan.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalid marks input that failed validation.
	ErrInvalid = errors.New("invalid input")
)

type invalidError struct{ msg string }

func (e *invalidError) Error() string { return e.msg }

func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

// Invalidf formats a validation message that matches ErrInvalid under
// errors.Is without changing the message text.
func Invalidf(format string, args ...any) error {
	return &invalidError{msg: fmt.Sprintf(format, args...)}
}
