package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Face is an ordered triple of vertex indices, oriented counter-clockwise
// when viewed from the outward (+z for planar meshes) side.
type Face [3]int32

// Contains reports whether v is one of the face vertices.
func (f Face) Contains(v int32) bool {
	return f[0] == v || f[1] == v || f[2] == v
}

// OppositeEdge returns the two endpoints of the edge opposite local vertex i,
// in traversal order.
func (f Face) OppositeEdge(i int) (a, b int32) {
	return f[(i+1)%3], f[(i+2)%3]
}

// Canonical rotates the triple so the smallest index comes first while
// preserving orientation.
func (f Face) Canonical() (fc Face) {
	k := 0
	if f[1] < f[k] {
		k = 1
	}
	if f[2] < f[k] {
		k = 2
	}
	fc[0], fc[1], fc[2] = f[k], f[(k+1)%3], f[(k+2)%3]
	return
}

// Less orders faces lexicographically.
func (f Face) Less(g Face) bool {
	for i := 0; i < 3; i++ {
		if f[i] != g[i] {
			return f[i] < g[i]
		}
	}
	return false
}

type EdgeKey uint64

// NewEdgeKey packs the two vertices of an undirected edge into a uint64 to
// act as a hash and an indirect access method. The smaller index occupies
// the low word.
func NewEdgeKey(a, b int32) (packed EdgeKey) {
	if a < 0 || b < 0 {
		panic(fmt.Errorf("unable to pack negative vertex indices, have %d and %d", a, b))
	}
	if b < a {
		a, b = b, a
	}
	packed = EdgeKey(uint64(a) + uint64(b)<<32)
	return
}

// NewDirectedEdgeKey packs a directed edge, preserving traversal order.
func NewDirectedEdgeKey(a, b int32) (packed EdgeKey) {
	if a < 0 || b < 0 {
		panic(fmt.Errorf("unable to pack negative vertex indices, have %d and %d", a, b))
	}
	packed = EdgeKey(uint64(a) + uint64(b)<<32)
	return
}

// Vertices unpacks an edge key.
func (ek EdgeKey) Vertices() (a, b int32) {
	a = int32(uint64(ek) & 0xffffffff)
	b = int32(uint64(ek) >> 32)
	return
}

// Reversed returns the key of the opposite directed edge.
func (ek EdgeKey) Reversed() EdgeKey {
	a, b := ek.Vertices()
	return NewDirectedEdgeKey(b, a)
}

// FaceNormal returns the (unnormalized) face normal of triangle abc. Its
// magnitude is twice the triangle area, which is what the area-weighted
// vertex normal accumulation relies on.
func FaceNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a))
}

// FaceArea returns the area of triangle abc.
func FaceArea(a, b, c r3.Vector) float64 {
	return 0.5 * FaceNormal(a, b, c).Norm()
}

// Orient2D returns twice the signed area of triangle abc in the xy plane,
// positive for counter-clockwise.
func Orient2D(a, b, c r3.Vector) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// DistSq returns the squared Euclidean distance between p and q.
func DistSq(p, q r3.Vector) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return dx*dx + dy*dy + dz*dz
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p.
// Region-based projection onto the triangle plane with clamping to edges
// and vertices.
func ClosestPointOnTriangle(p, a, b, c r3.Vector) r3.Vector {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// Unit returns v normalized, or the zero vector when v is degenerate.
func Unit(v r3.Vector) r3.Vector {
	n := v.Norm()
	if n < 1.e-300 || math.IsNaN(n) {
		return r3.Vector{}
	}
	return v.Mul(1. / n)
}
