package renderable

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used when comparing derived matrices.
const Epsilon float32 = 1e-5

// ApproxEqual compares every component of a and b within eps.
func ApproxEqual(a, b mgl32.Mat4, eps float32) bool {
	_, ok := firstDiff(a, b, eps)
	return ok
}

// Explain is ApproxEqual that logs the first differing component and both matrices.
func Explain(a, b mgl32.Mat4, eps float32, logger Logger) bool {
	i, ok := firstDiff(a, b, eps)
	if ok {
		return true
	}
	logger = orNop(logger)
	logger.Warnf("matrices differ at least in component %d, |delta|=%g", i, abs32(a[i]-b[i]))
	logger.Warnf("LHS: %v", a)
	logger.Warnf("RHS: %v", b)
	return false
}

func firstDiff(a, b mgl32.Mat4, eps float32) (int, bool) {
	for i := range a {
		if abs32(a[i]-b[i]) > eps {
			return i, false
		}
	}
	return -1, true
}

// IsFinite reports whether m holds no NaN or Inf.
func IsFinite(m mgl32.Mat4) bool {
	for _, v := range m {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec3(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// invert returns the inverse of m, or absent when m is singular or the result is not finite.
func invert(m mgl32.Mat4) OptionalMat4 {
	if m.Det() == 0 {
		return NoMat4()
	}
	// Inv yields the zero matrix for nearly singular input.
	inv := m.Inv()
	if inv == (mgl32.Mat4{}) || !IsFinite(inv) {
		return NoMat4()
	}
	return SomeMat4(inv)
}

// normalMatrix is the inverse-transpose of the upper 3x3 of m, given m's inverse.
func normalMatrix(inv mgl32.Mat4) mgl32.Mat3 {
	return inv.Mat3().Transpose()
}
