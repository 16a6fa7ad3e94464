package trimesh

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/delaunay"
	"github.com/notargets/surfmesh/geometry"
	"github.com/notargets/surfmesh/kde"
)

// Symmetry-breaking jitter for the periodic triangulation, relative to the
// shorter box edge. Far above float roundoff, far below any sane point
// spacing.
const (
	jitterScale = 1.e-7
	jitterSeed  = 9751
)

// TriMeshPeriodic is a mesh whose domain is a torus: opposite faces of the
// bounding box are identified. The base face list holds only interior
// faces; seam-crossing faces are kept separately in two forms, one indexed
// into the concatenated original+ghost vertex array for rendering, one
// remapped to original ids for topology.
type TriMeshPeriodic struct {
	TriMesh

	box0, box1 r3.Vector
	boxValid   bool
	wrapZ      bool

	periodicFaces []geometry.Face // concatenated-array indices
	periodicOrig  []geometry.Face // remapped to original ids
	trimmedFaces  []geometry.Face

	dupProv  []DuplicateVertex
	dupVerts []r3.Vector
}

// NewTriMeshPeriodic builds a periodic mesh from a linearized coordinate
// array. SetBBox must be called before any periodic operation.
func NewTriMeshPeriodic(data []float64, dim int) (m *TriMeshPeriodic, err error) {
	base, err := NewTriMesh(data, dim)
	if err != nil {
		return
	}
	m = &TriMeshPeriodic{TriMesh: *base}
	m.Name = "TriMeshPeriodic"
	return
}

// SetBBox sets the periodic bounding box from 4 scalars (x0,y0,x1,y1) or
// two triples (x0,y0,z0,x1,y1,z1). Wrapping in z is enabled only for a 3D
// mesh with a proper z-range.
func (m *TriMeshPeriodic) SetBBox(data []float64) (err error) {
	var box0, box1 r3.Vector
	switch len(data) {
	case 4:
		box0 = r3.Vector{X: data[0], Y: data[1]}
		box1 = r3.Vector{X: data[2], Y: data[3]}
	case 6:
		box0 = r3.Vector{X: data[0], Y: data[1], Z: data[2]}
		box1 = r3.Vector{X: data[3], Y: data[4], Z: data[5]}
	default:
		return fmt.Errorf("%w: bounding box needs 4 or 6 scalars, have %d",
			geometry.ErrShapeMismatch, len(data))
	}
	if box1.X <= box0.X || box1.Y <= box0.Y {
		return fmt.Errorf("%w: degenerate bounding box [%v, %v]",
			geometry.ErrShapeMismatch, box0, box1)
	}
	m.box0, m.box1 = box0, box1
	m.boxValid = true
	m.wrapZ = m.dim == 3 && box1.Z > box0.Z
	return
}

// BBox returns the periodic box corners and whether one has been set.
func (m *TriMeshPeriodic) BBox() (box0, box1 r3.Vector, ok bool) {
	return m.box0, m.box1, m.boxValid
}

// WrapVertices folds the vertices back into the periodic box, in xy for
// dim 2 or xyz for dim 3. Callers use this to pre-condition samples that
// drifted outside the domain. All derived data is dropped.
func (m *TriMeshPeriodic) WrapVertices(dim int) (err error) {
	if !m.boxValid {
		return ErrNoBBox
	}
	if dim != 2 && dim != 3 {
		return fmt.Errorf("%w: wrap dimensionality %d", geometry.ErrShapeMismatch, dim)
	}
	for i, v := range m.verts {
		v.X = wrap(v.X, m.box0.X, m.box1.X)
		v.Y = wrap(v.Y, m.box0.Y, m.box1.Y)
		if dim == 3 && m.box1.Z > m.box0.Z {
			v.Z = wrap(v.Z, m.box0.Z, m.box1.Z)
		}
		m.verts[i] = v
	}
	m.dropDerived()
	m.dropPeriodic()
	return
}

func (m *TriMeshPeriodic) dropPeriodic() {
	m.periodicFaces = nil
	m.periodicOrig = nil
	m.trimmedFaces = nil
	m.dupProv = nil
	m.dupVerts = nil
}

// Delaunay triangulates the 9N (or 27N with z-wrap) point cloud of
// originals plus ghosts, classifies the output faces, and installs the
// interior faces as the mesh faces. The interior face list is returned.
// On a collaborator failure the mesh is unchanged.
func (m *TriMeshPeriodic) Delaunay(t delaunay.Triangulator, verbose bool) (faces []geometry.Face, err error) {
	if err = m.check(); err != nil {
		return
	}
	if !m.boxValid {
		return nil, ErrNoBBox
	}
	dups, prov, err := replicate(m.verts, m.box0, m.box1, m.wrapZ)
	if err != nil {
		return
	}
	var (
		n   = len(m.verts)
		pts = make([][2]float64, 0, n+len(dups))
	)
	for _, v := range m.verts {
		pts = append(pts, [2]float64{v.X, v.Y})
	}
	for _, v := range dups {
		pts = append(pts, [2]float64{v.X, v.Y})
	}
	// Lattice-aligned point sets are full of cocircular rectangles, and a
	// tie broken one way at the left seam and the other way at the right
	// breaks the combined-view manifold. Jitter each original by a tiny
	// fixed offset shared with all of its images, so every tie resolves
	// translation-consistently; a second per-image jitter five orders
	// smaller lifts the remaining exact degeneracies without overriding
	// the first. Face indices are unaffected.
	var (
		eps  = jitterScale * math.Min(m.box1.X-m.box0.X, m.box1.Y-m.box0.Y)
		eps2 = eps * 1.e-5
		rnd  = rand.New(rand.NewSource(jitterSeed))
		jit  = make([][2]float64, n)
	)
	for i := range jit {
		jit[i] = [2]float64{eps * (rnd.Float64() - 0.5), eps * (rnd.Float64() - 0.5)}
	}
	for i := range pts {
		j := jit[i%n]
		if i >= n {
			j = jit[prov[i-n].Orig]
		}
		pts[i][0] += j[0] + eps2*(rnd.Float64()-0.5)
		pts[i][1] += j[1] + eps2*(rnd.Float64()-0.5)
	}
	raw, err := t.Triangulate(pts)
	if err != nil {
		return
	}
	all := make([]geometry.Face, len(raw))
	for i, f := range raw {
		all[i] = geometry.Face(f)
	}
	cl, err := classifyFaces(all, int32(n), prov)
	if err != nil {
		m.invalid = true
		return nil, err
	}
	if len(cl.interior) < 2*n {
		// A well-filled box triangulates a torus, which has 2N faces
		fmt.Printf("%s: advisory: %d interior faces for %d vertices, expected about %d\n",
			m.Name, len(cl.interior), n, 2*n)
	}

	m.faces = cl.interior
	m.periodicFaces = cl.periodic
	m.periodicOrig = cl.periodicOrig
	m.trimmedFaces = cl.trimmed
	m.dupProv = prov
	m.dupVerts = dups
	m.dropDerived()
	if verbose {
		fmt.Printf("%s: %d interior, %d periodic, %d trimmed faces\n",
			m.Name, len(m.faces), len(m.periodicFaces), len(m.trimmedFaces))
	}
	return m.faces, nil
}

// createDuplicateVertices rebuilds ghost positions from the provenance
// map. Called whenever faces are copied in from another periodic mesh.
func (m *TriMeshPeriodic) createDuplicateVertices() {
	var (
		lx = m.box1.X - m.box0.X
		ly = m.box1.Y - m.box0.Y
		lz = m.box1.Z - m.box0.Z
	)
	m.dupVerts = make([]r3.Vector, len(m.dupProv))
	for i, d := range m.dupProv {
		m.dupVerts[i] = m.verts[d.Orig].Add(r3.Vector{
			X: float64(d.Shift[0]) * lx,
			Y: float64(d.Shift[1]) * ly,
			Z: float64(d.Shift[2]) * lz,
		})
	}
}

// SetFacesFromPeriodic copies faces and periodic bookkeeping from another
// triangulation over the same vertex set, regenerating ghost positions
// from the provenance map.
func (m *TriMeshPeriodic) SetFacesFromPeriodic(other *TriMeshPeriodic) (err error) {
	if err = m.check(); err != nil {
		return
	}
	if !m.boxValid {
		return ErrNoBBox
	}
	if err = m.validateFaces(other.faces); err != nil {
		return
	}
	m.faces = append([]geometry.Face(nil), other.faces...)
	m.periodicFaces = append([]geometry.Face(nil), other.periodicFaces...)
	m.periodicOrig = append([]geometry.Face(nil), other.periodicOrig...)
	m.trimmedFaces = append([]geometry.Face(nil), other.trimmedFaces...)
	m.dupProv = append([]DuplicateVertex(nil), other.dupProv...)
	m.createDuplicateVertices()
	m.dropDerived()
	return
}

// PeriodicFaces linearizes the seam-crossing faces (concatenated-array
// indices). With combined set, the interior faces are prepended.
func (m *TriMeshPeriodic) PeriodicFaces(combined bool) (data []int32) {
	if !combined {
		return geometry.LinearizeFaces(m.periodicFaces)
	}
	data = geometry.LinearizeFaces(m.faces)
	return append(data, geometry.LinearizeFaces(m.periodicFaces)...)
}

// TrimmedFaces linearizes the trimmed faces, optionally prepending the
// interior faces.
func (m *TriMeshPeriodic) TrimmedFaces(combined bool) (data []int32) {
	if !combined {
		return geometry.LinearizeFaces(m.trimmedFaces)
	}
	data = geometry.LinearizeFaces(m.faces)
	return append(data, geometry.LinearizeFaces(m.trimmedFaces)...)
}

// DuplicatedVertices linearizes the ghost vertices, optionally prepending
// the originals so the result matches concatenated-array indexing.
func (m *TriMeshPeriodic) DuplicatedVertices(combined bool) (data []float64) {
	if !combined {
		return geometry.Linearize(m.dupVerts)
	}
	data = geometry.Linearize(m.verts)
	return append(data, geometry.Linearize(m.dupVerts)...)
}

// DuplicateProvenance returns the ghost-to-original map.
func (m *TriMeshPeriodic) DuplicateProvenance() []DuplicateVertex { return m.dupProv }

// CombinedFaces returns interior plus periodic faces with every index
// remapped to originals: the faces of the torus, for topology queries.
func (m *TriMeshPeriodic) CombinedFaces() (faces []geometry.Face) {
	faces = append(faces, m.faces...)
	faces = append(faces, m.periodicOrig...)
	return
}

// KDE estimates density at every vertex summing over the nine xy lattice
// images of each sample.
func (m *TriMeshPeriodic) KDE(k kde.DensityKernel, name string, samples []r3.Vector, verbose bool) (rho []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	if !m.boxValid {
		return nil, ErrNoBBox
	}
	e := kde.Estimator{Kernel: k, Samples: samples, Verbose: verbose}
	rho = e.EvaluatePeriodic(m.verts, m.box0, m.box1)
	err = m.SetField(name, rho)
	return
}

// KDEAt is the target-filtered form of KDE; ids select target vertices.
func (m *TriMeshPeriodic) KDEAt(k kde.DensityKernel, name string, samples []r3.Vector, ids []int32, verbose bool) (rho []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	if !m.boxValid {
		return nil, ErrNoBBox
	}
	targets := make([]r3.Vector, len(ids))
	for i, id := range ids {
		if id < 0 || int(id) >= len(m.verts) {
			err = fmt.Errorf("%w: target vertex %d outside [0,%d)", geometry.ErrShapeMismatch, id, len(m.verts))
			return
		}
		targets[i] = m.verts[id]
	}
	e := kde.Estimator{Kernel: k, Samples: samples, Verbose: verbose}
	rho = e.EvaluatePeriodic(targets, m.box0, m.box1)
	field := make([]float64, len(m.verts))
	for i, id := range ids {
		field[id] = rho[i]
	}
	err = m.SetField(name, field)
	return
}
