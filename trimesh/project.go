package trimesh

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/geometry"
	"github.com/notargets/surfmesh/spatial"
)

// Projector maps external points to their nearest point on a
// triangulation.
type Projector interface {
	Project(verts []r3.Vector, faces []geometry.Face, points []r3.Vector) ([]r3.Vector, error)
}

// ClosestPointProjector searches faces exhaustively for small meshes and
// shortlists candidate faces through a kd-tree over face centroids for
// large ones.
type ClosestPointProjector struct {
	// Candidates is the shortlist size for the indexed path; 0 selects the
	// default.
	Candidates int
}

const (
	bruteForceFaceLimit = 64
	defaultCandidates   = 32
)

func NewClosestPointProjector() *ClosestPointProjector {
	return &ClosestPointProjector{}
}

func (cp *ClosestPointProjector) Project(verts []r3.Vector, faces []geometry.Face, points []r3.Vector) (out []r3.Vector, err error) {
	if len(faces) == 0 {
		err = fmt.Errorf("cannot project onto a mesh with no faces")
		return
	}
	nearestIn := func(p r3.Vector, ids []int) (best r3.Vector) {
		bestD := -1.
		for _, fi := range ids {
			f := faces[fi]
			q := geometry.ClosestPointOnTriangle(p, verts[f[0]], verts[f[1]], verts[f[2]])
			if d := geometry.DistSq(p, q); bestD < 0 || d < bestD {
				best, bestD = q, d
			}
		}
		return
	}

	out = make([]r3.Vector, len(points))
	if len(faces) <= bruteForceFaceLimit {
		all := make([]int, len(faces))
		for i := range all {
			all[i] = i
		}
		for i, p := range points {
			out[i] = nearestIn(p, all)
		}
		return
	}

	k := cp.Candidates
	if k == 0 {
		k = defaultCandidates
	}
	centroids := make([]r3.Vector, len(faces))
	for i, f := range faces {
		centroids[i] = verts[f[0]].Add(verts[f[1]]).Add(verts[f[2]]).Mul(1. / 3.)
	}
	ix := spatial.NewIndex(centroids)
	for i, p := range points {
		out[i] = nearestIn(p, ix.KNearest(p, k))
	}
	return
}

// ProjectOnSurface returns, for each external point, its nearest point on
// the triangulation, using the default projector.
func (m *TriMesh) ProjectOnSurface(points []r3.Vector, verbose bool) (out []r3.Vector, err error) {
	return m.ProjectOnSurfaceWith(NewClosestPointProjector(), points, verbose)
}

// ProjectOnSurfaceWith projects through the given collaborator.
func (m *TriMesh) ProjectOnSurfaceWith(p Projector, points []r3.Vector, verbose bool) (out []r3.Vector, err error) {
	if err = m.check(); err != nil {
		return
	}
	out, err = p.Project(m.verts, m.faces, points)
	if err != nil {
		return
	}
	if verbose {
		fmt.Printf("%s: projected %d points onto %d faces\n", m.Name, len(points), len(m.faces))
	}
	return
}
