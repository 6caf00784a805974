package renderable

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
	AnaglyphLeft
	AnaglyphRight
)

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	case AnaglyphLeft:
		return "anaglyph-left"
	case AnaglyphRight:
		return "anaglyph-right"
	}
	return fmt.Sprintf("ProjectionMode(%d)", int(m))
}

func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch s {
	case "", "perspective":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	case "anaglyph-left":
		return AnaglyphLeft, nil
	case "anaglyph-right":
		return AnaglyphRight, nil
	}
	return 0, fmt.Errorf("unknown projection mode %q: %w", s, ErrInvalidCamera)
}

// Camera supplies view and projection matrices to Transformables.
// Fov is the vertical field of view in degrees.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	Mode   ProjectionMode
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	// Orthographic bounds.
	Left, Right, Bottom, Top float32

	// Stereo parameters for the anaglyph modes.
	EyeSeparation float32
	Convergence   float32
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 2, 20},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Mode:     Perspective,
		Fov:      60,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000.0,
	}
}

func (c *Camera) Validate() error {
	if !finiteVec3(c.Position) || !finiteVec3(c.LookAt) || !finiteVec3(c.Up) {
		return fmt.Errorf("non-finite camera vectors: %w", ErrInvalidCamera)
	}
	forward := c.LookAt.Sub(c.Position)
	if forward.Len() == 0 {
		return fmt.Errorf("camera position equals look-at: %w", ErrInvalidCamera)
	}
	if forward.Normalize().Cross(c.Up).Len() < minScale {
		return fmt.Errorf("camera up is parallel to view direction: %w", ErrInvalidCamera)
	}
	if c.Near >= c.Far {
		return fmt.Errorf("near %g must be less than far %g: %w", c.Near, c.Far, ErrInvalidCamera)
	}

	switch c.Mode {
	case Orthographic:
		if c.Left == c.Right || c.Bottom == c.Top {
			return fmt.Errorf("empty orthographic bounds: %w", ErrInvalidCamera)
		}
		return nil
	case AnaglyphLeft, AnaglyphRight:
		if c.Convergence <= 0 {
			return fmt.Errorf("convergence %g must be positive: %w", c.Convergence, ErrInvalidCamera)
		}
	case Perspective:
	default:
		return fmt.Errorf("unknown mode %v: %w", c.Mode, ErrInvalidCamera)
	}

	if c.Near <= 0 {
		return fmt.Errorf("near %g must be positive: %w", c.Near, ErrInvalidCamera)
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		return fmt.Errorf("fov %g out of range: %w", c.Fov, ErrInvalidCamera)
	}
	if c.Aspect <= 0 {
		return fmt.Errorf("aspect %g must be positive: %w", c.Aspect, ErrInvalidCamera)
	}
	return nil
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.LookAt.Sub(c.Position).Normalize()
}

func (c *Camera) RightVec() mgl32.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// eyeOffset shifts the eye sideways for the stereo modes.
func (c *Camera) eyeOffset() mgl32.Vec3 {
	half := c.EyeSeparation / 2
	switch c.Mode {
	case AnaglyphLeft:
		return c.RightVec().Mul(-half)
	case AnaglyphRight:
		return c.RightVec().Mul(half)
	}
	return mgl32.Vec3{}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	off := c.eyeOffset()
	return mgl32.LookAtV(c.Position.Add(off), c.LookAt.Add(off), c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	switch c.Mode {
	case Orthographic:
		return mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	case AnaglyphLeft, AnaglyphRight:
		return c.anaglyphFrustum()
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// anaglyphFrustum is an off-axis frustum that converges both eyes at Convergence.
func (c *Camera) anaglyphFrustum() mgl32.Mat4 {
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(c.Fov)) / 2))
	top := c.Near * tanHalf
	bottom := -top

	a := c.Aspect * tanHalf * c.Convergence
	b := a - c.EyeSeparation/2
	d := a + c.EyeSeparation/2

	var left, right float32
	if c.Mode == AnaglyphLeft {
		left = -b * c.Near / c.Convergence
		right = d * c.Near / c.Convergence
	} else {
		left = -d * c.Near / c.Convergence
		right = b * c.Near / c.Convergence
	}
	return mgl32.Frustum(left, right, bottom, top, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Apply hands the camera's matrices and their inverses to t.
func (c *Camera) Apply(t Transformable) error {
	if err := c.Validate(); err != nil {
		return err
	}

	view := c.ViewMatrix()
	iview, ok := invert(view).Get()
	if !ok {
		return fmt.Errorf("view matrix not invertible: %w", ErrInvalidCamera)
	}
	proj := c.ProjectionMatrix()
	iproj, ok := invert(proj).Get()
	if !ok {
		return fmt.Errorf("projection matrix not invertible: %w", ErrInvalidCamera)
	}

	t.SetView(view, iview)
	t.SetProjection(proj, iproj)
	return nil
}
