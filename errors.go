package sapling

import (
	"errors"

	"github.com/phanxgames/sapling/gpu"
)

var (
	// ErrNilArgument is returned when a required collaborator or argument is nil.
	ErrNilArgument = gpu.ErrNilArgument

	// ErrDisposed is returned when an operation is attempted after disposal.
	ErrDisposed = gpu.ErrDisposed

	// ErrInvalidArgument is returned for values outside the accepted domain.
	ErrInvalidArgument = gpu.ErrInvalidArgument

	// ErrNotFound is returned when a file, region or batch member does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSprite is returned when a sprite is added to a batch twice.
	ErrDuplicateSprite = errors.New("the given sprite has already been added to this sprite batch")

	// ErrCapacityExceeded is returned when adding to a full batch.
	ErrCapacityExceeded = errors.New("sprite batch capacity exceeded")

	// ErrInvalidState is returned when an object is not in a usable state,
	// such as a texture that has already been disposed.
	ErrInvalidState = errors.New("invalid state")
)
