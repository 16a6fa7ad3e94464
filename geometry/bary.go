package geometry

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

/*
Barycentric transfer between a 3D surface triangle and its 2D parameter
triangle: a point is expressed as weights (l0,l1,l2), l0+l1+l2 = 1, against
the 3D triangle, then reconstructed against the matching 2D triangle.
*/

// PointToBary returns the barycentric coordinates of p with respect to
// triangle abc. For p off the triangle plane the weights are those of its
// orthogonal projection.
func PointToBary(p, a, b, c r3.Vector) (bary r3.Vector) {
	var (
		v0 = b.Sub(a)
		v1 = c.Sub(a)
		v2 = p.Sub(a)
	)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		panic("degenerate triangle in barycentric conversion")
	}
	l1 := (d11*d20 - d01*d21) / denom
	l2 := (d00*d21 - d01*d20) / denom
	bary = r3.Vector{X: 1 - l1 - l2, Y: l1, Z: l2}
	return
}

// BaryToPoint reconstructs the 2D point with barycentric coordinates bary
// in the parameter triangle abc.
func BaryToPoint(bary r3.Vector, a, b, c r2.Point) (p r2.Point) {
	p.X = bary.X*a.X + bary.Y*b.X + bary.Z*c.X
	p.Y = bary.X*a.Y + bary.Y*b.Y + bary.Z*c.Y
	return
}
