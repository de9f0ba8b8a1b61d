package common

import (
	"math"
)

// Plane is the half-space ax + by + cz + d >= 0, with (a, b, c) stored in Normal and d in Distance.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// signedDistance returns the distance of a point from the plane, positive on the inside.
func (p Plane) signedDistance(x, y, z float32) float32 {
	return p.Normal[0]*x + p.Normal[1]*y + p.Normal[2]*z + p.Distance
}

// Frustum is the six inward-facing planes of a camera's view volume.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices.
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum derives the view frustum from a column-major projection * view matrix
// (Gribb/Hartmann). Depth follows WebGPU clip space, 0 <= z <= w, so the near plane is
// the third matrix row on its own rather than row3 + row2 as in OpenGL.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values, column-major
//
// Returns:
//   - Frustum: the frustum with unit-length plane normals
func ExtractFrustum(viewProj [16]float32) Frustum {
	// Row i of a column-major matrix is (m[i], m[4+i], m[8+i], m[12+i]).
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combine := func(a [4]float32, b [4]float32, sign float32) Plane {
		return Plane{
			Normal:   [3]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			Distance: a[3] + sign*b[3],
		}
	}

	var f Frustum
	f.Planes[FrustumLeft] = combine(r3, r0, 1)
	f.Planes[FrustumRight] = combine(r3, r0, -1)
	f.Planes[FrustumBottom] = combine(r3, r1, 1)
	f.Planes[FrustumTop] = combine(r3, r1, -1)
	f.Planes[FrustumNear] = Plane{Normal: [3]float32{r2[0], r2[1], r2[2]}, Distance: r2[3]}
	f.Planes[FrustumFar] = combine(r3, r2, -1)

	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

func (p *Plane) normalize() {
	length := float32(math.Sqrt(float64(
		p.Normal[0]*p.Normal[0] +
			p.Normal[1]*p.Normal[1] +
			p.Normal[2]*p.Normal[2],
	)))
	if length > 0 {
		inv := 1 / length
		p.Normal[0] *= inv
		p.Normal[1] *= inv
		p.Normal[2] *= inv
		p.Distance *= inv
	}
}

// IntersectsSphere reports whether any part of a sphere lies inside the frustum.
//
// Parameters:
//   - x, y, z: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere is entirely outside at least one plane
func (f *Frustum) IntersectsSphere(x, y, z, radius float32) bool {
	for _, p := range f.Planes {
		if p.signedDistance(x, y, z) < -radius {
			return false
		}
	}
	return true
}
