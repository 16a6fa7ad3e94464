/*
Package delaunay provides the 2D Delaunay triangulation capability consumed
by the mesh layer. The production implementation binds Shewchuk's Triangle
through github.com/pradeep-pyro/triangle; Incremental is a pure Go
Bowyer-Watson used where cgo is unavailable and by deterministic tests.
*/
package delaunay

import (
	"errors"
	"fmt"
)

// ErrFatalTriangulation flags a triangulator that refused its input or
// returned garbage. The caller must leave its mesh state unchanged.
var ErrFatalTriangulation = errors.New("fatal triangulation")

// Triangulator produces a Delaunay triangulation of an xy point cloud.
// Output faces index into the input array and wind counter-clockwise.
type Triangulator interface {
	Triangulate(pts [][2]float64) ([][3]int32, error)
}

func validate(pts [][2]float64, faces [][3]int32) (err error) {
	n := int32(len(pts))
	for _, f := range faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return fmt.Errorf("%w: degenerate face %v", ErrFatalTriangulation, f)
		}
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %v indexes outside %d points", ErrFatalTriangulation, f, n)
			}
		}
	}
	return
}

// ccw flips faces wound clockwise in the xy plane so that downstream
// orientation assumptions hold regardless of the backend.
func ccw(pts [][2]float64, faces [][3]int32) {
	for i, f := range faces {
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		if (b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1]) < 0 {
			faces[i][1], faces[i][2] = f[2], f[1]
		}
	}
}
