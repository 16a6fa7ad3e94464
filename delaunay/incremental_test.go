package delaunay

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inCircle reports whether d lies strictly inside the circumcircle of ccw
// triangle abc.
func inCircle(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
	ax_, ay_ := ax-dx, ay-dy
	bx_, by_ := bx-dx, by-dy
	cx_, cy_ := cx-dx, cy-dy
	det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
		(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
		(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
	if signBit {
		return det < 0
	}
	return det > 0
}

func TestIncrementalSquare(t *testing.T) {
	var (
		pts = [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	)
	faces, err := NewIncremental().Triangulate(pts)
	require.NoError(t, err)
	assert.Len(t, faces, 2)
	area := 0.
	for _, f := range faces {
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		signed := 0.5 * ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1]))
		assert.True(t, signed > 0, "face %v not ccw", f)
		area += signed
	}
	assert.InDelta(t, 1.0, area, 1.e-12)
}

func TestIncrementalDelaunayProperty(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(42))
		pts = make([][2]float64, 50)
	)
	for i := range pts {
		pts[i] = [2]float64{rnd.Float64(), rnd.Float64()}
	}
	faces, err := NewIncremental().Triangulate(pts)
	require.NoError(t, err)
	assert.NotEmpty(t, faces)

	// No input point strictly inside any circumcircle
	for _, f := range faces {
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		for i, p := range pts {
			if int32(i) == f[0] || int32(i) == f[1] || int32(i) == f[2] {
				continue
			}
			assert.False(t, inCircle(a[0], a[1], b[0], b[1], c[0], c[1], p[0], p[1]),
				"point %d inside circumcircle of %v", i, f)
		}
	}

	// Every undirected edge is shared by at most two faces
	edges := make(map[[2]int32]int)
	for _, f := range faces {
		for e := 0; e < 3; e++ {
			a, b := f[e], f[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int32{a, b}]++
		}
	}
	for e, count := range edges {
		assert.LessOrEqual(t, count, 2, "edge %v", e)
	}
}

func TestIncrementalDeterminism(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(7))
		pts = make([][2]float64, 30)
	)
	for i := range pts {
		pts[i] = [2]float64{rnd.Float64(), rnd.Float64()}
	}
	f1, err := NewIncremental().Triangulate(pts)
	require.NoError(t, err)
	f2, err := NewIncremental().Triangulate(pts)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

func TestIncrementalRejects(t *testing.T) {
	_, err := NewIncremental().Triangulate([][2]float64{{0, 0}, {1, 1}})
	assert.ErrorIs(t, err, ErrFatalTriangulation)

	_, err = NewIncremental().Triangulate([][2]float64{{0, 0}, {0, 0}, {0, 0}})
	assert.ErrorIs(t, err, ErrFatalTriangulation)
}
