package renderable

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transformable is anything that can be placed in a scene and drawn with a
// program. Derived matrices are only recomputed on explicit request; until then
// readers return the last computed value and the Stale accessors report it.
//
// Implementations are not safe for concurrent use.
type Transformable interface {
	Program() ProgramHandle
	SetProgram(h ProgramHandle)

	Position() OptionalVec3
	SetPosition(v mgl32.Vec3)
	Scale() OptionalVec3
	SetScale(v mgl32.Vec3)
	Rotation() mgl32.Quat
	SetRotation(q mgl32.Quat)

	Model() mgl32.Mat4
	InvModel() mgl32.Mat4
	ModelStale() bool
	RecomputeModel() error

	// Camera inputs; the entity does not own them.
	View() OptionalMat4
	InvView() OptionalMat4
	SetView(view, iview mgl32.Mat4)
	ClearView()
	Projection() OptionalMat4
	InvProjection() OptionalMat4
	SetProjection(projection, iprojection mgl32.Mat4)
	ClearProjection()

	ModelView() OptionalMat4
	InvModelView() OptionalMat4
	ModelViewStale() bool
	RecomputeModelView(view OptionalMat4) OptionalMat4

	MVP() OptionalMat4
	MVPStale() bool
	RecomputeMVP(view, projection OptionalMat4) OptionalMat4
}
