package trimesh

import (
	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/geometry"
)

// FaceNormals returns the unit normal of each face.
func (m *TriMesh) FaceNormals() (normals []r3.Vector, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.faceNormals != nil {
		return m.faceNormals, nil
	}
	normals = make([]r3.Vector, len(m.faces))
	for i, f := range m.faces {
		normals[i] = geometry.Unit(geometry.FaceNormal(
			m.verts[f[0]], m.verts[f[1]], m.verts[f[2]]))
	}
	m.faceNormals = normals
	return
}

// Normals returns per-vertex unit normals, the area-weighted average of the
// incident face normals. Isolated vertices get the zero vector.
func (m *TriMesh) Normals() (normals []r3.Vector, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.pointNormals != nil {
		return m.pointNormals, nil
	}
	normals = make([]r3.Vector, len(m.verts))
	for _, f := range m.faces {
		// The cross product magnitude is twice the face area, so summing
		// it accumulates exactly the area weighting
		fn := geometry.FaceNormal(m.verts[f[0]], m.verts[f[1]], m.verts[f[2]])
		for _, v := range f {
			normals[v] = normals[v].Add(fn)
		}
	}
	for i := range normals {
		normals[i] = geometry.Unit(normals[i])
	}
	m.pointNormals = normals
	return
}

// PointAreas returns per-vertex areas, one third of the summed incident
// face areas.
func (m *TriMesh) PointAreas() (areas []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.pointAreas != nil {
		return m.pointAreas, nil
	}
	areas = make([]float64, len(m.verts))
	for _, f := range m.faces {
		third := geometry.FaceArea(m.verts[f[0]], m.verts[f[1]], m.verts[f[2]]) / 3
		for _, v := range f {
			areas[v] += third
		}
	}
	m.pointAreas = areas
	return
}
