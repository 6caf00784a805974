package renderable

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrustumCulling(t *testing.T) {
	// Camera at origin looking down -Z; 90 deg FOV, aspect 1, near 1, far 100
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 0, -1},
		mgl32.Vec3{0, 1, 0},
	)
	planes := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		aabbMin  mgl32.Vec3
		aabbMax  mgl32.Vec3
		expected bool
	}{
		{"Inside (center)", mgl32.Vec3{-1, -1, -10}, mgl32.Vec3{1, 1, -5}, true},
		{"Outside (Left)", mgl32.Vec3{-20, -1, -10}, mgl32.Vec3{-15, 1, -5}, false},
		{"Outside (Right)", mgl32.Vec3{15, -1, -10}, mgl32.Vec3{20, 1, -5}, false},
		{"Outside (Behind/Near)", mgl32.Vec3{-1, -1, 2}, mgl32.Vec3{1, 1, 5}, false},
		{"Outside (Far)", mgl32.Vec3{-1, -1, -200}, mgl32.Vec3{1, 1, -150}, false},
		// Left edge at z=-10 is x=-10
		{"Intersecting (Left Plane)", mgl32.Vec3{-15, -1, -10}, mgl32.Vec3{-5, 1, -5}, true},
		{"Encompassing (Huge box)", mgl32.Vec3{-1000, -1000, -1000}, mgl32.Vec3{1000, 1000, 1000}, true},
	}

	for _, tc := range tests {
		visible := planes.IntersectsAABB(tc.aabbMin, tc.aabbMax)
		if visible != tc.expected {
			t.Errorf("Test %s failed: expected %v, got %v", tc.name, tc.expected, visible)
			center := tc.aabbMin.Add(tc.aabbMax).Mul(0.5)
			for i, p := range planes {
				t.Logf("  P%d: %v, Dist(Center)=%f", i, p, p.Dot(center.Vec4(1.0)))
			}
		}
	}
}

func TestFrustumOrtho(t *testing.T) {
	proj := mgl32.Ortho(-10, 10, -10, 10, 0, 20)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	planes := ExtractFrustum(proj.Mul4(view))

	if !planes.IntersectsAABB(mgl32.Vec3{-1, -1, -6}, mgl32.Vec3{1, 1, -4}) {
		t.Error("Ortho: AABB should be inside")
	}
	// Far=20 => Z=-20
	if planes.IntersectsAABB(mgl32.Vec3{-1, -1, -26}, mgl32.Vec3{1, 1, -24}) {
		t.Error("Ortho: AABB at -25 should be outside")
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	planes := ExtractFrustum(proj.Mul4(view))

	assert.True(t, planes.ContainsPoint(mgl32.Vec3{0, 0, -50}))
	assert.False(t, planes.ContainsPoint(mgl32.Vec3{0, 0, 5}))
	assert.False(t, planes.ContainsPoint(mgl32.Vec3{0, 0, -0.5}))
	assert.False(t, planes.ContainsPoint(mgl32.Vec3{30, 0, -10}))
}

func TestWorldAABB(t *testing.T) {
	n := NewNode()
	n.SetPosition(mgl32.Vec3{10, 0, 0})
	n.SetScale(mgl32.Vec3{2, 1, 1})
	n.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	require.NoError(t, n.RecomputeModel())

	wMin, wMax := WorldAABB(n, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	// X extent 2 is rotated onto Y.
	assert.InDelta(t, 9, wMin.X(), 1e-5)
	assert.InDelta(t, 11, wMax.X(), 1e-5)
	assert.InDelta(t, -2, wMin.Y(), 1e-5)
	assert.InDelta(t, 2, wMax.Y(), 1e-5)
	assert.InDelta(t, -1, wMin.Z(), 1e-5)
	assert.InDelta(t, 1, wMax.Z(), 1e-5)
}

func TestVisible(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{0, 0, 10}

	front := NewNode()
	require.NoError(t, front.RecomputeModel())
	assert.False(t, Visible(front, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), "no camera inputs yet")

	require.NoError(t, c.Apply(front))
	assert.True(t, Visible(front, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))

	behind := NewNode()
	behind.SetPosition(mgl32.Vec3{0, 0, 30})
	require.NoError(t, behind.RecomputeModel())
	require.NoError(t, c.Apply(behind))
	assert.False(t, Visible(behind, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))
}
