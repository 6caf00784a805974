package renderable

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OptionalMat4 is a 4x4 matrix that may be absent. The zero value is absent.
type OptionalMat4 struct {
	m  mgl32.Mat4
	ok bool
}

func SomeMat4(m mgl32.Mat4) OptionalMat4 {
	return OptionalMat4{m: m, ok: true}
}

func NoMat4() OptionalMat4 {
	return OptionalMat4{}
}

func (o OptionalMat4) Get() (mgl32.Mat4, bool) {
	return o.m, o.ok
}

func (o OptionalMat4) Present() bool {
	return o.ok
}

// OrElse returns the matrix, or def when absent.
func (o OptionalMat4) OrElse(def mgl32.Mat4) mgl32.Mat4 {
	if !o.ok {
		return def
	}
	return o.m
}

// OptionalVec3 is a 3-component vector that may be absent. The zero value is absent.
type OptionalVec3 struct {
	v  mgl32.Vec3
	ok bool
}

func SomeVec3(v mgl32.Vec3) OptionalVec3 {
	return OptionalVec3{v: v, ok: true}
}

func NoVec3() OptionalVec3 {
	return OptionalVec3{}
}

func (o OptionalVec3) Get() (mgl32.Vec3, bool) {
	return o.v, o.ok
}

func (o OptionalVec3) Present() bool {
	return o.ok
}

func (o OptionalVec3) OrElse(def mgl32.Vec3) mgl32.Vec3 {
	if !o.ok {
		return def
	}
	return o.v
}
