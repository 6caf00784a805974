package renderable

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSceneDef(t *testing.T) {
	def, err := LoadSceneDef(filepath.Join("testdata", "scene.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "inspect", def.Logging.Prefix)
	assert.Equal(t, "perspective", def.Camera.Mode)
	require.Len(t, def.Programs, 1)
	assert.Equal(t, []string{"model", "mvp", "normal"}, def.Programs[0].Uniforms)
	require.Len(t, def.Nodes, 3)
	assert.Nil(t, def.Nodes[0].Position)
	assert.Equal(t, []float32{1, 2, 3}, def.Nodes[1].Position)

	scene, err := def.Build()
	require.NoError(t, err)
	require.Len(t, scene.Nodes, 3)
	assert.Equal(t, mgl32.Vec3{0, 2, 20}, scene.Camera.Position)

	origin, cube, tilted := scene.Nodes[0], scene.Nodes[1], scene.Nodes[2]
	assert.Equal(t, "origin", origin.Name())
	assert.False(t, origin.Position().Present())
	assert.False(t, origin.Scale().Present())

	p, ok := scene.Programs.Lookup(cube.Program())
	require.True(t, ok)
	assert.Equal(t, "basic", p.Name)
	assert.True(t, tilted.Program().IsZero())

	require.NoError(t, scene.Recompute())

	for _, n := range scene.Nodes {
		assert.False(t, n.ModelStale(), n.Name())
		assert.True(t, n.MVP().Present(), n.Name())
		assert.True(t, ApproxEqual(n.Model().Mul4(n.InvModel()), mgl32.Ident4(), Epsilon), n.Name())
	}

	m := cube.Model()
	assert.InDelta(t, 1, m.At(0, 3), 1e-6)
	assert.InDelta(t, 2, m.At(1, 3), 1e-6)
	assert.InDelta(t, 3, m.At(2, 3), 1e-6)

	// 90 degrees about Y sends +X to -Z, scaled by 2.
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, 0, x.X(), 1e-5)
	assert.InDelta(t, -2, x.Z(), 1e-5)

	assert.InDelta(t, 1, tilted.Rotation().Len(), 1e-6)
}

func TestSceneDefErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad position", "nodes:\n  - name: a\n    position: [1, 2]\n"},
		{"bad scale", "nodes:\n  - name: a\n    scale: [1, 2, 3, 4]\n"},
		{"unknown program", "nodes:\n  - name: a\n    program: nope\n"},
		{"duplicate program", "programs:\n  - name: a\n  - name: a\n"},
		{"unnamed program", "programs:\n  - vertex: v\n"},
		{"bad mode", "camera:\n  mode: fisheye\n"},
		{"bad camera", "camera:\n  near: 10\n  far: 1\n"},
		{"short camera vector", "camera:\n  up: [0, 1]\n"},
		{"zero axis", "nodes:\n  - name: a\n    rotation:\n      axis: [0, 0, 0]\n      angle: 10\n"},
		{"short quat", "nodes:\n  - name: a\n    rotation:\n      quat: [1, 0, 0]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, err := ParseSceneDef([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = def.Build()
			assert.Error(t, err)
		})
	}
}

func TestParseSceneDefMalformed(t *testing.T) {
	_, err := ParseSceneDef([]byte("nodes: [\n"))
	assert.Error(t, err)

	_, err = LoadSceneDef(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestSceneRecomputeReportsDegenerateNodes(t *testing.T) {
	def, err := ParseSceneDef([]byte(`
nodes:
  - name: flat
    scale: [1, 0, 1]
  - name: fine
    position: [0, 1, 0]
`))
	require.NoError(t, err)
	scene, err := def.Build()
	require.NoError(t, err)

	err = scene.Recompute()
	assert.ErrorIs(t, err, ErrDegenerateTransform)
	assert.Contains(t, err.Error(), "flat")

	flat, fine := scene.Nodes[0], scene.Nodes[1]
	assert.True(t, flat.ModelStale())
	assert.Equal(t, mgl32.Ident4(), flat.Model())
	assert.False(t, fine.ModelStale())
	assert.True(t, fine.MVP().Present())
}
