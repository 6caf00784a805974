package renderable

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum holds six planes Ax+By+Cz+D=0 with normals pointing inside, in order
// Left, Right, Bottom, Top, Near, Far.
type Frustum [6]mgl32.Vec4

// ExtractFrustum extracts the planes of a view-projection matrix.
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	var planes Frustum

	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes[0] = r3.Add(r0)
	planes[1] = r3.Sub(r0)
	planes[2] = r3.Add(r1)
	planes[3] = r3.Sub(r1)
	// OpenGL-style -1..1 depth
	planes[4] = r3.Add(r2)
	planes[5] = r3.Sub(r2)

	for i := 0; i < 6; i++ {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}

	return planes
}

func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, plane := range f {
		if plane.Dot(p.Vec4(1)) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB is conservative: boxes near a frustum corner may report true.
func (f Frustum) IntersectsAABB(minB, maxB mgl32.Vec3) bool {
	for _, plane := range f {
		// Most-inside corner; if that one is behind the plane, all are.
		var p mgl32.Vec3
		for i := 0; i < 3; i++ {
			if plane[i] > 0 {
				p[i] = maxB[i]
			} else {
				p[i] = minB[i]
			}
		}

		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}

// WorldAABB transforms a local box by t's model matrix and returns its world-space bounds.
func WorldAABB(t Transformable, localMin, localMax mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	corners := [8]mgl32.Vec3{
		{localMin.X(), localMin.Y(), localMin.Z()},
		{localMax.X(), localMin.Y(), localMin.Z()},
		{localMin.X(), localMax.Y(), localMin.Z()},
		{localMax.X(), localMax.Y(), localMin.Z()},
		{localMin.X(), localMin.Y(), localMax.Z()},
		{localMax.X(), localMin.Y(), localMax.Z()},
		{localMin.X(), localMax.Y(), localMax.Z()},
		{localMax.X(), localMax.Y(), localMax.Z()},
	}

	model := t.Model()

	inf := float32(1e20)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}

	for _, c := range corners {
		wc := model.Mul4x1(c.Vec4(1.0)).Vec3()
		wMin = mgl32.Vec3{min(wMin.X(), wc.X()), min(wMin.Y(), wc.Y()), min(wMin.Z(), wc.Z())}
		wMax = mgl32.Vec3{max(wMax.X(), wc.X()), max(wMax.Y(), wc.Y()), max(wMax.Z(), wc.Z())}
	}
	return wMin, wMax
}

// Visible reports whether t's local box lies at least partly inside the frustum of
// t's own view and projection. It is false while either is absent.
func Visible(t Transformable, localMin, localMax mgl32.Vec3) bool {
	view, vok := t.View().Get()
	proj, pok := t.Projection().Get()
	if !vok || !pok {
		return false
	}
	wMin, wMax := WorldAABB(t, localMin, localMax)
	return ExtractFrustum(proj.Mul4(view)).IntersectsAABB(wMin, wMax)
}
