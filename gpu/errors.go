package gpu

import "errors"

var (
	// ErrNilArgument is returned when a required collaborator or argument is nil.
	ErrNilArgument = errors.New("nil argument")

	// ErrDisposed is returned when an operation is attempted on a released resource.
	ErrDisposed = errors.New("object disposed")

	// ErrInvalidArgument is returned for values outside the accepted domain.
	ErrInvalidArgument = errors.New("invalid argument")
)
