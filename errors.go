package renderable

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrDegenerateTransform means a model matrix cannot be inverted.
	ErrDegenerateTransform = errors.New("degenerate transform")
	ErrMatrixAbsent        = errors.New("matrix absent")
	ErrStaleMatrix         = errors.New("matrix stale")
	ErrDuplicateProgram    = errors.New("duplicate program name")
	ErrInvalidCamera       = errors.New("invalid camera")
)

// DegenerateTransformError describes which input made the model matrix non-invertible.
type DegenerateTransformError struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Quat
	Reason   string
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("degenerate transform: %s (position=%v scale=%v rotation=%v)",
		e.Reason, e.Position, e.Scale, e.Rotation)
}

func (e *DegenerateTransformError) Is(target error) bool {
	return target == ErrDegenerateTransform
}
