package geometry

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// ErrShapeMismatch flags an input array whose length is inconsistent with
// the declared dimensionality.
var ErrShapeMismatch = errors.New("shape mismatch")

// Linearize flattens vertices into [x0,y0,z0, x1,y1,z1, ...] for boundary
// interop.
func Linearize(verts []r3.Vector) (data []float64) {
	data = make([]float64, 0, 3*len(verts))
	for _, v := range verts {
		data = append(data, v.X, v.Y, v.Z)
	}
	return
}

// Linearize2D flattens the xy coordinates only.
func Linearize2D(verts []r3.Vector) (data []float64) {
	data = make([]float64, 0, 2*len(verts))
	for _, v := range verts {
		data = append(data, v.X, v.Y)
	}
	return
}

// LinearizeFaces flattens faces into [i0,j0,k0, i1,j1,k1, ...].
func LinearizeFaces(faces []Face) (data []int32) {
	data = make([]int32, 0, 3*len(faces))
	for _, f := range faces {
		data = append(data, f[0], f[1], f[2])
	}
	return
}

// Delinearize rebuilds vertices from a flat coordinate array. dim selects
// the layout: 3 reads xyz triples, 2 reads xy pairs and sets z to zero.
func Delinearize(data []float64, dim int) (verts []r3.Vector, err error) {
	if dim != 2 && dim != 3 {
		err = fmt.Errorf("%w: dimensionality %d not supported, expected 2 or 3", ErrShapeMismatch, dim)
		return
	}
	if len(data)%dim != 0 {
		err = fmt.Errorf("%w: %d scalars do not divide into %d-vectors", ErrShapeMismatch, len(data), dim)
		return
	}
	n := len(data) / dim
	verts = make([]r3.Vector, n)
	switch dim {
	case 3:
		for i := 0; i < n; i++ {
			verts[i] = r3.Vector{X: data[3*i], Y: data[3*i+1], Z: data[3*i+2]}
		}
	case 2:
		for i := 0; i < n; i++ {
			verts[i] = r3.Vector{X: data[2*i], Y: data[2*i+1]}
		}
	}
	return
}

// DelinearizeFaces rebuilds faces from a flat index array.
func DelinearizeFaces(data []int32) (faces []Face, err error) {
	if len(data)%3 != 0 {
		err = fmt.Errorf("%w: %d indices do not divide into triangles", ErrShapeMismatch, len(data))
		return
	}
	faces = make([]Face, len(data)/3)
	for i := range faces {
		faces[i] = Face{data[3*i], data[3*i+1], data[3*i+2]}
	}
	return
}
