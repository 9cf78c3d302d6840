// Package solvererr defines the typed error kinds shared across the
// solver and its adapters, spec.md §7.
package solvererr

import "fmt"

// Kind identifies one of the error categories spec.md §7 names.
type Kind int

const (
	// InvalidShape means the target slice is not square or its side
	// is not a power of two.
	InvalidShape Kind = iota
	// InvalidGeometry means slice_size_m, emitter_size_m or f0 is
	// non-positive, or emitter_size_m >= slice_size_m.
	InvalidGeometry
	// InvalidResolution means amp_res < 0 or phase_res < 0.
	InvalidResolution
	// IoError covers ingestion/transmitter adapter I/O failures.
	IoError
	// ProtocolError means the transmitter was asked to send a value
	// it cannot represent on the wire.
	ProtocolError
	// NumericInstability means a NaN or infinity appeared in an
	// intermediate field during solving.
	NumericInstability
)

func (k Kind) String() string {
	switch k {
	case InvalidShape:
		return "InvalidShape"
	case InvalidGeometry:
		return "InvalidGeometry"
	case InvalidResolution:
		return "InvalidResolution"
	case IoError:
		return "IoError"
	case ProtocolError:
		return "ProtocolError"
	case NumericInstability:
		return "NumericInstability"
	default:
		return "Unknown"
	}
}

// Error is the error type returned across package boundaries so
// callers can recover the Kind via errors.As.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around a lower-level cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
