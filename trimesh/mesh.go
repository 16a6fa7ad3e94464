/*
Package trimesh manipulates triangular surface meshes for membrane surface
analysis: topology queries, normals and point areas, kernel density fields,
parameterization and projection, and the periodic (toroidal) variant built
on ghost-vertex replication.

A mesh owns its vertices, faces, topology caches and named fields. Vertices
are fixed at construction; faces may be replaced, which drops every cache.
A mesh is not safe for concurrent mutation; read-only queries are safe once
the caches are populated.
*/
package trimesh

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/geometry"
)

type TriMesh struct {
	Name string

	dim   uint8
	verts []r3.Vector
	faces []geometry.Face

	fields map[string][]float64

	// Derived quantities, computed lazily and dropped on face replacement
	pointNormals []r3.Vector
	faceNormals  []r3.Vector
	pointAreas   []float64
	vNeighbors   [][]int32
	vAdjFaces    [][]int32
	acrossEdge   [][3]int32
	boundary     [][2]int32
	boundaryDone bool

	invalid bool
}

// NewTriMesh builds a mesh from a linearized coordinate array. dim 3 reads
// xyz triples, dim 2 reads xy pairs with z set to zero; the dimensionality
// is recorded for writers.
func NewTriMesh(data []float64, dim int) (m *TriMesh, err error) {
	verts, err := geometry.Delinearize(data, dim)
	if err != nil {
		return
	}
	m = &TriMesh{
		Name:   "TriMesh",
		dim:    uint8(dim),
		verts:  verts,
		fields: make(map[string][]float64),
	}
	return
}

// NewTriMeshFromVertices wraps an existing vertex slice. The mesh takes
// ownership of the slice.
func NewTriMeshFromVertices(verts []r3.Vector, dim uint8) (m *TriMesh) {
	m = &TriMesh{
		Name:   "TriMesh",
		dim:    dim,
		verts:  verts,
		fields: make(map[string][]float64),
	}
	return
}

func (m *TriMesh) NumVertices() int { return len(m.verts) }
func (m *TriMesh) NumFaces() int    { return len(m.faces) }
func (m *TriMesh) Dim() uint8       { return m.dim }

// Vertices returns the vertex array. Callers must not mutate it.
func (m *TriMesh) Vertices() []r3.Vector { return m.verts }

// Faces returns the face array. Callers must not mutate it.
func (m *TriMesh) Faces() []geometry.Face { return m.faces }

// GetVertices linearizes the vertices for boundary interop.
func (m *TriMesh) GetVertices() []float64 { return geometry.Linearize(m.verts) }

// GetFaces linearizes the faces for boundary interop.
func (m *TriMesh) GetFaces() []int32 { return geometry.LinearizeFaces(m.faces) }

func (m *TriMesh) check() error {
	if m.invalid {
		return ErrMeshInvalid
	}
	return nil
}

func (m *TriMesh) validateFaces(faces []geometry.Face) (err error) {
	n := int32(len(m.verts))
	for i, f := range faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return fmt.Errorf("face %d has repeated vertices %v", i, f)
		}
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("face %d indexes vertex %d outside [0,%d)", i, v, n)
			}
		}
	}
	return
}

// SetFaces replaces the face list and drops every topology cache. The face
// indices must be in range and distinct within each face.
func (m *TriMesh) SetFaces(faces []geometry.Face) (err error) {
	if err = m.check(); err != nil {
		return
	}
	if err = m.validateFaces(faces); err != nil {
		return
	}
	m.faces = faces
	m.dropDerived()
	return
}

// SetFacesLinear replaces faces from a flat index array.
func (m *TriMesh) SetFacesLinear(data []int32) (err error) {
	faces, err := geometry.DelinearizeFaces(data)
	if err != nil {
		return
	}
	return m.SetFaces(faces)
}

// SetFacesFrom copies the face list of another mesh over the same vertex
// set.
func (m *TriMesh) SetFacesFrom(other *TriMesh) (err error) {
	faces := make([]geometry.Face, len(other.faces))
	copy(faces, other.faces)
	return m.SetFaces(faces)
}

func (m *TriMesh) dropDerived() {
	m.pointNormals = nil
	m.faceNormals = nil
	m.pointAreas = nil
	m.DropTopology()
}

// DropTopology releases the lazy topology caches. They are rebuilt on the
// next query.
func (m *TriMesh) DropTopology() {
	m.vNeighbors = nil
	m.vAdjFaces = nil
	m.acrossEdge = nil
	m.boundary = nil
	m.boundaryDone = false
}

// SetField attaches a named per-vertex scalar field, overwriting any
// existing field of that name.
func (m *TriMesh) SetField(name string, vals []float64) (err error) {
	if len(vals) != len(m.verts) {
		return fmt.Errorf("%w: field %q has %d values for %d vertices",
			geometry.ErrShapeMismatch, name, len(vals), len(m.verts))
	}
	m.fields[name] = vals
	return
}

// Field returns the named field, or an empty sequence when absent. A
// missing field is not an error.
func (m *TriMesh) Field(name string) []float64 {
	return m.fields[name]
}

// FieldNames lists the attached fields in ascending order.
func (m *TriMesh) FieldNames() (names []string) {
	for name := range m.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
