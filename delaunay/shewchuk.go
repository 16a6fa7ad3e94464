package delaunay

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"
)

// Shewchuk triangulates through the Triangle library, which carries the
// exact arithmetic predicates. This is the production backend.
type Shewchuk struct{}

func NewShewchuk() Shewchuk {
	return Shewchuk{}
}

func (Shewchuk) Triangulate(pts [][2]float64) (faces [][3]int32, err error) {
	if len(pts) < 3 {
		err = fmt.Errorf("%w: %d points, need at least 3", ErrFatalTriangulation, len(pts))
		return
	}
	defer func() {
		// The binding aborts through panic on malformed input
		if r := recover(); r != nil {
			faces = nil
			err = fmt.Errorf("%w: %v", ErrFatalTriangulation, r)
		}
	}()
	faces = triangle.Delaunay(pts)
	if len(faces) == 0 {
		err = fmt.Errorf("%w: empty triangulation of %d points", ErrFatalTriangulation, len(pts))
		return
	}
	if err = validate(pts, faces); err != nil {
		faces = nil
		return
	}
	ccw(pts, faces)
	return
}
