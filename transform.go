package renderable

import (
	"github.com/go-gl/mathgl/mgl32"
)

// minScale is the smallest scale magnitude that still yields an invertible model.
const minScale float32 = 1e-6

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())

	// Conjugate of a unit quat is its inverse.
	invRotate := t.Rotation.Conjugate().Mat4()

	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// validate returns a *DegenerateTransformError when the transform cannot be inverted.
func (t Transform) validate() error {
	fail := func(reason string) error {
		return &DegenerateTransformError{
			Position: t.Position,
			Scale:    t.Scale,
			Rotation: t.Rotation,
			Reason:   reason,
		}
	}

	if !finiteVec3(t.Position) {
		return fail("non-finite position")
	}
	if !finiteVec3(t.Scale) {
		return fail("non-finite scale")
	}
	for i := 0; i < 3; i++ {
		if abs32(t.Scale[i]) < minScale {
			return fail("zero scale component")
		}
	}
	if !finite(t.Rotation.W) || !finiteVec3(t.Rotation.V) {
		return fail("non-finite rotation")
	}
	if t.Rotation.Len() < minScale {
		return fail("zero-length rotation")
	}
	return nil
}
