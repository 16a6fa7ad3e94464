package trimesh

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/delaunay"
	"github.com/notargets/surfmesh/geometry"
	"github.com/notargets/surfmesh/kde"
	"github.com/notargets/surfmesh/param"
)

// Delaunay rebuilds the face list by triangulating the vertex xy
// coordinates through the given collaborator. On triangulator failure the
// mesh is left unchanged.
func (m *TriMesh) Delaunay(t delaunay.Triangulator, verbose bool) (faces []geometry.Face, err error) {
	if err = m.check(); err != nil {
		return
	}
	pts := make([][2]float64, len(m.verts))
	for i, v := range m.verts {
		pts[i] = [2]float64{v.X, v.Y}
	}
	raw, err := t.Triangulate(pts)
	if err != nil {
		return
	}
	faces = make([]geometry.Face, len(raw))
	for i, f := range raw {
		faces[i] = geometry.Face(f)
	}
	if err = m.SetFaces(faces); err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("%s: delaunay produced %d faces over %d vertices\n", m.Name, len(faces), len(m.verts))
	}
	return
}

// KDE estimates the density of the sample points at every vertex and
// stores it as the named field.
func (m *TriMesh) KDE(k kde.DensityKernel, name string, samples []r3.Vector, verbose bool) (rho []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	e := kde.Estimator{Kernel: k, Samples: samples, Verbose: verbose}
	rho = e.Evaluate(m.verts)
	err = m.SetField(name, rho)
	return
}

// KDEAt estimates the density at the given target vertices only. The
// stored field spans all vertices with zeros outside the targets; the
// returned slice holds one value per target id.
func (m *TriMesh) KDEAt(k kde.DensityKernel, name string, samples []r3.Vector, ids []int32, verbose bool) (rho []float64, err error) {
	if err = m.check(); err != nil {
		return
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
	rho = e.Evaluate(targets)
	field := make([]float64, len(m.verts))
	for i, id := range ids {
		field[id] = rho[i]
	}
	err = m.SetField(name, field)
	return
}

// Parameterize maps the mesh onto a planar domain through the given
// collaborator and stores the coordinates as fields "param_u" and
// "param_v". The return is the linearized 2N parameter array.
func (m *TriMesh) Parameterize(p param.Parameterizer, verbose bool) (data []float64, err error) {
	if err = m.check(); err != nil {
		return
	}
	boundary, err := m.BoundaryEdges()
	if err != nil {
		return
	}
	uv, err := p.Parameterize(m.verts, m.faces, boundary, verbose)
	if err != nil {
		return
	}
	var (
		u = make([]float64, len(uv))
		v = make([]float64, len(uv))
	)
	data = make([]float64, 0, 2*len(uv))
	for i, q := range uv {
		u[i], v[i] = q.X, q.Y
		data = append(data, q.X, q.Y)
	}
	if err = m.SetField("param_u", u); err != nil {
		return nil, err
	}
	if err = m.SetField("param_v", v); err != nil {
		return nil, err
	}
	return
}

// ParameterizeXY parameterizes by the vertex xy coordinates.
func (m *TriMesh) ParameterizeXY(verbose bool) (data []float64, err error) {
	return m.Parameterize(param.NewXY(), verbose)
}
