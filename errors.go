package sheetgrid

import (
	"errors"
	"fmt"
)

var (
	// ErrSetup matches every *SetupError.
	ErrSetup = errors.New("setup error")

	// ErrIdentification matches every *IdentificationError.
	ErrIdentification = errors.New("identification error")

	// ErrInvalidArgument is returned when an operation receives an argument
	// of the wrong shape. No state is changed when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned by Service implementations when a document or
	// worksheet lookup does not resolve.
	ErrNotFound = errors.New("not found")
)

// SetupError reports a violated connection precondition or malformed
// credentials.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSetup.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}

// IdentificationError reports that a named resource (document, sheet,
// header or primary-key row) could not be resolved.
type IdentificationError struct {
	Resource   string // document, sheet, header, row
	Identifier string
	Detail     string
}

func (e *IdentificationError) Error() string {
	msg := fmt.Sprintf("%s %s not found", e.Resource, e.Identifier)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is ErrIdentification.
func (e *IdentificationError) Is(target error) bool {
	return target == ErrIdentification
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
