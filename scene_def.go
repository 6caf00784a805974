package renderable

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SceneDef is the YAML description of a camera, its programs and a flat list of nodes.
type SceneDef struct {
	Logging  LoggingDef   `yaml:"logging"`
	Camera   CameraDef    `yaml:"camera"`
	Programs []ProgramDef `yaml:"programs"`
	Nodes    []NodeDef    `yaml:"nodes"`
}

type CameraDef struct {
	Position []float32 `yaml:"position"`
	LookAt   []float32 `yaml:"look_at"`
	Up       []float32 `yaml:"up"`
	Mode     string    `yaml:"mode"`
	Fov      float32   `yaml:"fov"`
	Aspect   float32   `yaml:"aspect"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`

	Left   float32 `yaml:"left"`
	Right  float32 `yaml:"right"`
	Bottom float32 `yaml:"bottom"`
	Top    float32 `yaml:"top"`

	EyeSeparation float32 `yaml:"eye_separation"`
	Convergence   float32 `yaml:"convergence"`
}

type ProgramDef struct {
	Name     string   `yaml:"name"`
	Vertex   string   `yaml:"vertex"`
	Fragment string   `yaml:"fragment"`
	Uniforms []string `yaml:"uniforms"`
}

// NodeDef leaves position and scale absent when omitted.
type NodeDef struct {
	Name     string       `yaml:"name"`
	Program  string       `yaml:"program"`
	Position []float32    `yaml:"position"`
	Scale    []float32    `yaml:"scale"`
	Rotation *RotationDef `yaml:"rotation"`
}

// RotationDef is either an axis and an angle in degrees, or a quaternion [w, x, y, z].
type RotationDef struct {
	Axis  []float32 `yaml:"axis"`
	Angle float32   `yaml:"angle"`
	Quat  []float32 `yaml:"quat"`
}

// Scene is a built SceneDef.
type Scene struct {
	Logger   Logger
	Programs *ProgramTable
	Camera   *Camera
	Nodes    []*Node
}

func ParseSceneDef(data []byte) (*SceneDef, error) {
	var def SceneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &def, nil
}

func LoadSceneDef(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	def, err := ParseSceneDef(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func vec3(field string, v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func (d *RotationDef) quat() (mgl32.Quat, error) {
	if d == nil {
		return mgl32.QuatIdent(), nil
	}
	if d.Quat != nil {
		if len(d.Quat) != 4 {
			return mgl32.Quat{}, fmt.Errorf("rotation.quat: expected 4 components, got %d", len(d.Quat))
		}
		return mgl32.Quat{W: d.Quat[0], V: mgl32.Vec3{d.Quat[1], d.Quat[2], d.Quat[3]}}, nil
	}
	axis, err := vec3("rotation.axis", d.Axis)
	if err != nil {
		return mgl32.Quat{}, err
	}
	if axis.Len() == 0 {
		return mgl32.Quat{}, errors.New("rotation.axis: zero length")
	}
	return mgl32.QuatRotate(mgl32.DegToRad(d.Angle), axis.Normalize()), nil
}

func (d CameraDef) build() (*Camera, error) {
	c := NewCamera()
	var err error

	if d.Position != nil {
		if c.Position, err = vec3("camera.position", d.Position); err != nil {
			return nil, err
		}
	}
	if d.LookAt != nil {
		if c.LookAt, err = vec3("camera.look_at", d.LookAt); err != nil {
			return nil, err
		}
	}
	if d.Up != nil {
		if c.Up, err = vec3("camera.up", d.Up); err != nil {
			return nil, err
		}
	}
	if c.Mode, err = ParseProjectionMode(d.Mode); err != nil {
		return nil, err
	}

	if d.Fov != 0 {
		c.Fov = d.Fov
	}
	if d.Aspect != 0 {
		c.Aspect = d.Aspect
	}
	if d.Near != 0 {
		c.Near = d.Near
	}
	if d.Far != 0 {
		c.Far = d.Far
	}
	c.Left, c.Right, c.Bottom, c.Top = d.Left, d.Right, d.Bottom, d.Top
	c.EyeSeparation, c.Convergence = d.EyeSeparation, d.Convergence

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Build registers the programs, builds the camera and spawns the nodes. Nodes are
// not recomputed.
func (d *SceneDef) Build() (*Scene, error) {
	scene := &Scene{
		Logger:   d.Logging.NewLogger(),
		Programs: NewProgramTable(),
	}

	cam, err := d.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	scene.Camera = cam

	for _, p := range d.Programs {
		if p.Name == "" {
			return nil, errors.New("program without name")
		}
		if _, err := scene.Programs.Register(Program(p)); err != nil {
			return nil, err
		}
	}

	for i, nd := range d.Nodes {
		n, err := d.buildNode(scene, nd)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, nd.Name, err)
		}
		scene.Nodes = append(scene.Nodes, n)
	}

	scene.Logger.Debugf("scene built: %d programs, %d nodes", scene.Programs.Len(), len(scene.Nodes))
	return scene, nil
}

func (d *SceneDef) buildNode(scene *Scene, nd NodeDef) (*Node, error) {
	n := NewNode(WithName(nd.Name), WithLogger(scene.Logger))

	if nd.Program != "" {
		h, ok := scene.Programs.LookupName(nd.Program)
		if !ok {
			return nil, fmt.Errorf("unknown program %q", nd.Program)
		}
		n.SetProgram(h)
	}
	if nd.Position != nil {
		v, err := vec3("position", nd.Position)
		if err != nil {
			return nil, err
		}
		n.SetPosition(v)
	}
	if nd.Scale != nil {
		v, err := vec3("scale", nd.Scale)
		if err != nil {
			return nil, err
		}
		n.SetScale(v)
	}
	q, err := nd.Rotation.quat()
	if err != nil {
		return nil, err
	}
	n.SetRotation(q)
	return n, nil
}

// Recompute hands the camera to every node and recomputes its matrices. Degenerate
// nodes are reported together; the others are still updated.
func (s *Scene) Recompute() error {
	var errs []error
	for _, n := range s.Nodes {
		if err := s.Camera.Apply(n); err != nil {
			return err
		}
		if err := n.Recompute(); err != nil {
			errs = append(errs, fmt.Errorf("node %s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}
