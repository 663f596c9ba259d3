package world

import (
	"errors"
	"fmt"
)

// Error kinds. Failures wrap one of these with fmt.Errorf("%w: ..."), test with errors.Is.
var (
	// ErrValidation covers malformed coordinates, shape mismatches, unknown actions.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is a lookup failure (unknown area, no object at a coordinate).
	ErrNotFound = fmt.Errorf("%w: not found", ErrValidation)

	// ErrConnectivity covers exhausted degree, no free doorway direction and
	// removals that would disconnect the world.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission covers same-area paths and removal of the origin area.
	ErrPermission = errors.New("permission error")

	// ErrOverwrite is returned when an existing value would be replaced without opt-in.
	ErrOverwrite = errors.New("overwrite error")

	// ErrCheckpoint is returned by Reset when no checkpoint was set.
	ErrCheckpoint = errors.New("checkpoint error")
)

// Non-fatal conditions, always delivered inside a *Warning.
var (
	ErrPathNotFound = errors.New("inter-area path not found")
	ErrUnknownField = errors.New("unknown field")
)

// Warning is a non-fatal error. The operation that returned it completed,
// possibly as a no-op.
type Warning struct {
	Err error
}

func (w *Warning) Error() string {
	return "warning: " + w.Err.Error()
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// Warnf builds a Warning wrapping kind.
func Warnf(kind error, format string, a ...any) *Warning {
	return &Warning{Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, a...))}
}

// IsWarning reports whether err is nil or only a Warning.
func IsWarning(err error) bool {
	if err == nil {
		return true
	}
	var w *Warning
	return errors.As(err, &w)
}

// Kind names the error class of err for wire responses and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsWarning(err):
		return "warning"
	case errors.Is(err, ErrConnectivity):
		return "connectivity"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrOverwrite):
		return "overwrite"
	case errors.Is(err, ErrCheckpoint):
		return "checkpoint"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
