package renderable

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Node is the stock Transformable. Absent position composes as the origin and
// absent scale as (1,1,1).
type Node struct {
	id     uuid.UUID
	name   string
	logger Logger

	program ProgramHandle

	position OptionalVec3
	scale    OptionalVec3
	rotation mgl32.Quat

	model  mgl32.Mat4
	imodel mgl32.Mat4

	view        OptionalMat4
	iview       OptionalMat4
	projection  OptionalMat4
	iprojection OptionalMat4

	modelView  OptionalMat4
	imodelView OptionalMat4
	mvp        OptionalMat4

	modelStale     bool
	modelViewStale bool
	mvpStale       bool
}

var _ Transformable = (*Node)(nil)

type NodeOption func(*Node)

func WithName(name string) NodeOption {
	return func(n *Node) { n.name = name }
}

func WithLogger(logger Logger) NodeOption {
	return func(n *Node) { n.logger = orNop(logger) }
}

func WithProgram(h ProgramHandle) NodeOption {
	return func(n *Node) { n.program = h }
}

// NewNode returns a node with identity rotation and identity model matrices.
// Model-view and MVP start absent and stale.
func NewNode(opts ...NodeOption) *Node {
	n := &Node{
		id:             uuid.New(),
		logger:         NewNopLogger(),
		rotation:       mgl32.QuatIdent(),
		model:          mgl32.Ident4(),
		imodel:         mgl32.Ident4(),
		modelViewStale: true,
		mvpStale:       true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) ID() uuid.UUID { return n.id }
func (n *Node) Name() string  { return n.name }

func (n *Node) Program() ProgramHandle      { return n.program }
func (n *Node) SetProgram(h ProgramHandle)  { n.program = h }
func (n *Node) Position() OptionalVec3      { return n.position }
func (n *Node) Scale() OptionalVec3         { return n.scale }
func (n *Node) Rotation() mgl32.Quat        { return n.rotation }
func (n *Node) Model() mgl32.Mat4           { return n.model }
func (n *Node) InvModel() mgl32.Mat4        { return n.imodel }
func (n *Node) View() OptionalMat4          { return n.view }
func (n *Node) InvView() OptionalMat4       { return n.iview }
func (n *Node) Projection() OptionalMat4    { return n.projection }
func (n *Node) InvProjection() OptionalMat4 { return n.iprojection }
func (n *Node) ModelView() OptionalMat4     { return n.modelView }
func (n *Node) InvModelView() OptionalMat4  { return n.imodelView }
func (n *Node) MVP() OptionalMat4           { return n.mvp }
func (n *Node) ModelStale() bool            { return n.modelStale }
func (n *Node) ModelViewStale() bool        { return n.modelViewStale }
func (n *Node) MVPStale() bool              { return n.mvpStale }

func (n *Node) SetPosition(v mgl32.Vec3) {
	n.position = SomeVec3(v)
	n.markModelStale()
}

func (n *Node) ClearPosition() {
	n.position = NoVec3()
	n.markModelStale()
}

func (n *Node) SetScale(v mgl32.Vec3) {
	n.scale = SomeVec3(v)
	n.markModelStale()
}

func (n *Node) ClearScale() {
	n.scale = NoVec3()
	n.markModelStale()
}

// SetRotation stores q normalized. Zero-length or non-finite quaternions are kept
// as given so that RecomputeModel reports them.
func (n *Node) SetRotation(q mgl32.Quat) {
	l := q.Len()
	if finite(l) && l >= minScale {
		q = q.Scale(1 / l)
	}
	n.rotation = q
	n.markModelStale()
}

func (n *Node) SetView(view, iview mgl32.Mat4) {
	n.view = SomeMat4(view)
	n.iview = SomeMat4(iview)
	n.markDerivedStale()
}

func (n *Node) ClearView() {
	n.view = NoMat4()
	n.iview = NoMat4()
	n.markDerivedStale()
}

func (n *Node) SetProjection(projection, iprojection mgl32.Mat4) {
	n.projection = SomeMat4(projection)
	n.iprojection = SomeMat4(iprojection)
	n.mvpStale = true
}

func (n *Node) ClearProjection() {
	n.projection = NoMat4()
	n.iprojection = NoMat4()
	n.mvpStale = true
}

func (n *Node) markModelStale() {
	n.modelStale = true
	n.markDerivedStale()
}

func (n *Node) markDerivedStale() {
	n.modelViewStale = true
	n.mvpStale = true
}

func (n *Node) transform() Transform {
	t := NewTransform()
	t.Position = n.position.OrElse(t.Position)
	t.Scale = n.scale.OrElse(t.Scale)
	t.Rotation = n.rotation
	return t
}

// RecomputeModel composes model = T * R * S and its inverse. On a degenerate
// transform the previous model pair is kept, the model stays stale and a
// *DegenerateTransformError is returned.
func (n *Node) RecomputeModel() error {
	t := n.transform()
	if err := t.validate(); err != nil {
		n.logger.Warnf("node %s (%s): %v", n.id, n.name, err)
		return err
	}

	model := t.ObjectToWorld()
	imodel := t.WorldToObject()
	if !IsFinite(model) || !IsFinite(imodel) {
		err := &DegenerateTransformError{
			Position: t.Position,
			Scale:    t.Scale,
			Rotation: t.Rotation,
			Reason:   "non-finite model matrix",
		}
		n.logger.Warnf("node %s (%s): %v", n.id, n.name, err)
		return err
	}

	n.model = model
	n.imodel = imodel
	n.modelStale = false
	n.logger.Debugf("node %s (%s): model recomputed", n.id, n.name)
	return nil
}

// RecomputeModelView sets modelView = view * model. The result is absent when
// view is absent; the inverse is absent when modelView is singular. It stays
// stale while the model itself is stale.
func (n *Node) RecomputeModelView(view OptionalMat4) OptionalMat4 {
	n.modelViewStale = n.modelStale

	v, ok := view.Get()
	if !ok {
		n.modelView = NoMat4()
		n.imodelView = NoMat4()
		return n.modelView
	}

	mv := v.Mul4(n.model)
	if !IsFinite(mv) {
		n.modelView = NoMat4()
		n.imodelView = NoMat4()
		return n.modelView
	}

	n.modelView = SomeMat4(mv)
	n.imodelView = invert(mv)
	return n.modelView
}

// RecomputeMVP sets mvp = projection * view * model, absent if either input is.
func (n *Node) RecomputeMVP(view, projection OptionalMat4) OptionalMat4 {
	n.mvpStale = n.modelStale

	v, vok := view.Get()
	p, pok := projection.Get()
	if !vok || !pok {
		n.mvp = NoMat4()
		return n.mvp
	}

	mvp := p.Mul4(v).Mul4(n.model)
	if !IsFinite(mvp) {
		n.mvp = NoMat4()
		return n.mvp
	}
	n.mvp = SomeMat4(mvp)
	return n.mvp
}

// Recompute refreshes model, model-view and MVP from the node's own camera inputs.
// On a degenerate model the others are derived from the last consistent model and
// remain stale.
func (n *Node) Recompute() error {
	err := n.RecomputeModel()
	n.RecomputeModelView(n.view)
	n.RecomputeMVP(n.view, n.projection)
	return err
}
