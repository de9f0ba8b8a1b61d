package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mulPoint(m []float32, x, y, z float32) [4]float32 {
	var out [4]float32
	for r := range 4 {
		out[r] = m[r]*x + m[4+r]*y + m[8+r]*z + m[12+r]
	}
	return out
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, m)
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	a := make([]float32, 16)
	for i := range a {
		a[i] = float32(i)
	}
	out := make([]float32, 16)
	Mul4(out, id, a)
	assert.Equal(t, a, out)

	// out may alias an input
	Mul4(a, a, id)
	assert.Equal(t, out, a)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 3, 3, 3, 0, 0, 0, 0, 1, 0)

	eye := mulPoint(view, 3, 3, 3)
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 0, eye[2], 1e-5)

	target := mulPoint(view, 0, 0, 0)
	assert.InDelta(t, -math.Sqrt(27), target[2], 1e-5, "target lies on -Z in view space")
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	Perspective(proj, float32(math.Pi/2), 2, 0.1, 100)

	near := mulPoint(proj, 0, 0, -0.1)
	far := mulPoint(proj, 0, 0, -100)
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)

	assert.InDelta(t, 0.5, proj[0], 1e-6, "f / aspect with f = 1 at 90 degrees")
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	b := SliceToBytes([]float32{1, 2, 3})
	assert.Len(t, b, 12)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, b[:4])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
