package trimesh

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/geometry"
)

// CurvatureEstimator computes per-vertex mean and Gaussian curvature for a
// triangulated surface. No estimator ships with this package; callers bind
// their own backend.
type CurvatureEstimator interface {
	Curvature(verts []r3.Vector, faces []geometry.Face) (mean, gauss []float64, err error)
}

// Curvature runs the given estimator and stores the results as the fields
// "mean_curv" and "gauss_curv".
func (m *TriMesh) Curvature(c CurvatureEstimator, verbose bool) (mean, gauss []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	if mean, gauss, err = c.Curvature(m.verts, m.faces); err != nil {
		return
	}
	if err = m.SetField("mean_curv", mean); err != nil {
		return
	}
	if err = m.SetField("gauss_curv", gauss); err != nil {
		return
	}
	if verbose {
		fmt.Printf("%s: curvature estimated at %d vertices\n", m.Name, len(mean))
	}
	return
}
