package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	LookAt(view, 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj, float32(math.Pi/2), 1, 0.1, 100)

	var viewProj [16]float32
	Mul4(viewProj[:], proj, view)
	return ExtractFrustum(viewProj)
}

func TestExtractFrustumPlanes(t *testing.T) {
	f := testFrustum()

	near := f.Planes[FrustumNear]
	assert.InDelta(t, -1, near.Normal[2], 1e-5, "near plane faces away from the eye")
	assert.InDelta(t, 9.9, near.Distance, 1e-4)

	far := f.Planes[FrustumFar]
	assert.InDelta(t, 1, far.Normal[2], 1e-5)
	assert.InDelta(t, 90, far.Distance, 0.05)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := testFrustum()

	assert.True(t, f.IntersectsSphere(0, 0, 0, 1), "target in view")
	assert.False(t, f.IntersectsSphere(0, 0, 20, 1), "behind the eye")
	assert.True(t, f.IntersectsSphere(0, 0, 20, 15), "large sphere reaching into view")
	assert.False(t, f.IntersectsSphere(0, 0, -200, 5), "beyond the far plane")
	assert.False(t, f.IntersectsSphere(50, 0, 0, 1), "off to the side")
}
