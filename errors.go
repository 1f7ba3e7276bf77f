package ink

import (
	"errors"

	"github.com/gogpu/ink/internal/arr"
)

// Error taxonomy of the drawing core. The Context records the first error
// it observes and returns it from every subsequent call (see Context.Err);
// individual operations also return the error directly so callers may
// check per call or once at the end.
var (
	// ErrOutOfMemory reports an allocation-size overflow in a growable
	// structure (path storage, clip boxes, dash arrays).
	ErrOutOfMemory = arr.ErrOutOfMemory

	// ErrInvalidRestore reports a Restore with no matching Save, or a
	// Restore across a group boundary that PopGroup must unwind instead.
	ErrInvalidRestore = errors.New("ink: Restore without matching Save")

	// ErrInvalidPopGroup reports a PopGroup with no matching PushGroup.
	ErrInvalidPopGroup = errors.New("ink: PopGroup without matching PushGroup")

	// ErrNoCurrentPoint reports a relative path operation on a path with
	// no current point.
	ErrNoCurrentPoint = errors.New("ink: no current point")

	// ErrInvalidMatrix reports an attempt to use a non-invertible
	// transformation where inversion is required.
	ErrInvalidMatrix = errors.New("ink: matrix is not invertible")

	// ErrInvalidDash reports a dash array with a negative element or with
	// all elements zero.
	ErrInvalidDash = errors.New("ink: invalid dash array")

	// ErrSurfaceFinished reports an operation on a finished surface.
	ErrSurfaceFinished = errors.New("ink: surface is finished")
)
