package trimesh

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"

	"github.com/notargets/surfmesh/delaunay"
	"github.com/notargets/surfmesh/geometry"
	"github.com/notargets/surfmesh/kde"
)

func periodicSquare(t *testing.T, coords []float64) (m *TriMeshPeriodic) {
	var err error
	m, err = NewTriMeshPeriodic(coords, 2)
	assert.NoError(t, err)
	assert.NoError(t, m.SetBBox([]float64{0, 0, 1, 1}))
	return
}

func TestReplicateOrderAndPositions(t *testing.T) {
	verts := []r3.Vector{{X: 0.5, Y: 0.5}}
	dups, prov, err := replicate(verts, r3.Vector{}, r3.Vector{X: 1, Y: 1}, false)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(dups))
	assert.Equal(t, 8, len(prov))

	// Lexicographic shift order, zero shift excluded
	wantShifts := [][3]int8{
		{-1, -1, 0}, {-1, 0, 0}, {-1, 1, 0},
		{0, -1, 0}, {0, 1, 0},
		{1, -1, 0}, {1, 0, 0}, {1, 1, 0},
	}
	for i, p := range prov {
		assert.Equal(t, int32(0), p.Orig)
		assert.Equal(t, wantShifts[i], p.Shift)
		want := r3.Vector{
			X: 0.5 + float64(wantShifts[i][0]),
			Y: 0.5 + float64(wantShifts[i][1]),
		}
		assert.InDelta(t, 0, dups[i].Sub(want).Norm(), 1.e-15)
	}
}

func TestReplicateShiftMajorThenID(t *testing.T) {
	verts := []r3.Vector{{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.75}}
	_, prov, err := replicate(verts, r3.Vector{}, r3.Vector{X: 1, Y: 1}, false)
	assert.NoError(t, err)
	assert.Equal(t, 16, len(prov))
	// All copies at one shift precede the next shift
	assert.Equal(t, int32(0), prov[0].Orig)
	assert.Equal(t, int32(1), prov[1].Orig)
	assert.Equal(t, prov[0].Shift, prov[1].Shift)
	assert.NotEqual(t, prov[1].Shift, prov[2].Shift)
}

func TestReplicateOutOfDomain(t *testing.T) {
	box0, box1 := r3.Vector{}, r3.Vector{X: 1, Y: 1}

	// The domain is half-open: the low edge belongs, the high edge does not
	_, _, err := replicate([]r3.Vector{{X: 0, Y: 0}}, box0, box1, false)
	assert.NoError(t, err)
	_, _, err = replicate([]r3.Vector{{X: 1, Y: 0.5}}, box0, box1, false)
	assert.ErrorIs(t, err, ErrOutOfDomain)
	_, _, err = replicate([]r3.Vector{{X: 0.5, Y: -0.1}}, box0, box1, false)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestPeriodicSingleVertexAllTrimmed(t *testing.T) {
	var (
		m = periodicSquare(t, []float64{0.5, 0.5})
	)
	faces, err := m.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)

	// Every face of the 3x3 image grid collapses under the remap
	assert.Empty(t, faces)
	assert.Equal(t, 0, m.NumFaces())
	assert.Empty(t, m.PeriodicFaces(false))
	assert.GreaterOrEqual(t, len(m.TrimmedFaces(false))/3, 8)

	assert.Equal(t, 8, len(m.DuplicateProvenance()))
	assert.Equal(t, 9*3, len(m.DuplicatedVertices(true)))
}

func TestPeriodicFourVertexTorus(t *testing.T) {
	var (
		m = periodicSquare(t, []float64{0.1, 0.1, 0.9, 0.1, 0.1, 0.9, 0.9, 0.9})
		n = int32(4)
	)
	faces, err := m.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)

	// The four originals triangulate the torus: 2N faces, 3N edges
	assert.Equal(t, 2, len(faces))
	combined := m.CombinedFaces()
	assert.Equal(t, 8, len(combined))

	counts := make(map[geometry.EdgeKey]int)
	for _, f := range combined {
		counts[geometry.NewEdgeKey(f[0], f[1])]++
		counts[geometry.NewEdgeKey(f[1], f[2])]++
		counts[geometry.NewEdgeKey(f[2], f[0])]++
	}
	assert.Equal(t, 12, len(counts))
	for _, c := range counts {
		assert.Equal(t, 2, c)
	}

	// At least one periodic face crosses each seam direction
	var (
		prov           = m.DuplicateProvenance()
		crossX, crossY bool
	)
	for _, f := range m.periodicFaces {
		for _, v := range f {
			if v < n {
				continue
			}
			s := prov[v-n].Shift
			if s[0] != 0 {
				crossX = true
			}
			if s[1] != 0 {
				crossY = true
			}
		}
	}
	assert.True(t, crossX)
	assert.True(t, crossY)

	// Every kept periodic face anchors at least one original vertex
	for _, f := range m.periodicFaces {
		assert.True(t, f[0] < n || f[1] < n || f[2] < n)
	}
}

func TestPeriodicDelaunayDeterministic(t *testing.T) {
	coords := []float64{0.1, 0.1, 0.9, 0.1, 0.1, 0.9, 0.9, 0.9}
	var (
		a = periodicSquare(t, coords)
		b = periodicSquare(t, coords)
	)
	_, err := a.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)
	_, err = b.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)

	assert.Equal(t, a.Faces(), b.Faces())
	assert.Equal(t, a.PeriodicFaces(false), b.PeriodicFaces(false))
	assert.Equal(t, a.TrimmedFaces(false), b.TrimmedFaces(false))
}

func TestPeriodicCombinedViews(t *testing.T) {
	var (
		m = periodicSquare(t, []float64{0.1, 0.1, 0.9, 0.1, 0.1, 0.9, 0.9, 0.9})
	)
	_, err := m.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)

	var (
		ni = m.NumFaces()
		np = len(m.PeriodicFaces(false)) / 3
		nt = len(m.TrimmedFaces(false)) / 3
	)
	assert.Equal(t, 3*(ni+np), len(m.PeriodicFaces(true)))
	assert.Equal(t, 3*(ni+nt), len(m.TrimmedFaces(true)))
	assert.Equal(t, m.GetFaces(), m.PeriodicFaces(true)[:3*ni])

	nd := len(m.DuplicateProvenance())
	assert.Equal(t, 8*m.NumVertices(), nd)
	assert.Equal(t, 3*nd, len(m.DuplicatedVertices(false)))
	assert.Equal(t, 3*(m.NumVertices()+nd), len(m.DuplicatedVertices(true)))
	assert.Equal(t, m.GetVertices(), m.DuplicatedVertices(true)[:3*m.NumVertices()])
}

func TestSetFacesFromPeriodic(t *testing.T) {
	coords := []float64{0.1, 0.1, 0.9, 0.1, 0.1, 0.9, 0.9, 0.9}
	var (
		a = periodicSquare(t, coords)
		b = periodicSquare(t, coords)
	)
	_, err := a.Delaunay(delaunay.NewIncremental(), false)
	assert.NoError(t, err)
	assert.NoError(t, b.SetFacesFromPeriodic(a))

	assert.Equal(t, a.Faces(), b.Faces())
	assert.Equal(t, a.PeriodicFaces(true), b.PeriodicFaces(true))
	assert.Equal(t, a.TrimmedFaces(false), b.TrimmedFaces(false))
	assert.Equal(t, a.DuplicateProvenance(), b.DuplicateProvenance())
	// Ghost positions are regenerated, not copied
	assert.InDeltaSlice(t, a.DuplicatedVertices(false), b.DuplicatedVertices(false), 1.e-15)
}

func TestPeriodicRequiresBBox(t *testing.T) {
	m, err := NewTriMeshPeriodic([]float64{0.5, 0.5}, 2)
	assert.NoError(t, err)
	_, err = m.Delaunay(delaunay.NewIncremental(), false)
	assert.ErrorIs(t, err, ErrNoBBox)
	_, err = m.KDE(kde.Gaussian{Sigma: 0.1}, "rho", nil, false)
	assert.ErrorIs(t, err, ErrNoBBox)
	assert.ErrorIs(t, m.WrapVertices(2), ErrNoBBox)
}

func TestSetBBoxValidation(t *testing.T) {
	m, err := NewTriMeshPeriodic([]float64{0.5, 0.5}, 2)
	assert.NoError(t, err)
	assert.ErrorIs(t, m.SetBBox([]float64{0, 0, 1}), geometry.ErrShapeMismatch)
	assert.ErrorIs(t, m.SetBBox([]float64{0, 0, 0, 1}), geometry.ErrShapeMismatch)
	assert.NoError(t, m.SetBBox([]float64{0, 0, 1, 1}))

	box0, box1, ok := m.BBox()
	assert.True(t, ok)
	assert.Equal(t, r3.Vector{}, box0)
	assert.Equal(t, r3.Vector{X: 1, Y: 1}, box1)
}

func TestPeriodicDelaunayRejectsOutOfDomain(t *testing.T) {
	m, err := NewTriMeshPeriodic([]float64{0.5, 0.5, 1.5, 0.5}, 2)
	assert.NoError(t, err)
	assert.NoError(t, m.SetBBox([]float64{0, 0, 1, 1}))
	_, err = m.Delaunay(delaunay.NewIncremental(), false)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestWrapVertices(t *testing.T) {
	m, err := NewTriMeshPeriodic([]float64{1.5, -0.25, 0.5, 0.5}, 2)
	assert.NoError(t, err)
	assert.NoError(t, m.SetBBox([]float64{0, 0, 1, 1}))
	assert.NoError(t, m.WrapVertices(2))

	v := m.Vertices()
	assert.InDelta(t, 0.5, v[0].X, 1.e-15)
	assert.InDelta(t, 0.75, v[0].Y, 1.e-15)
	assert.InDelta(t, 0.5, v[1].X, 1.e-15)

	assert.ErrorIs(t, m.WrapVertices(5), geometry.ErrShapeMismatch)
}

func TestPeriodicKDESeamContribution(t *testing.T) {
	var (
		m       = periodicSquare(t, []float64{0.1, 0.5, 0.9, 0.5})
		k       = kde.Gaussian{Sigma: 0.1}
		samples = []r3.Vector{{X: 0.05, Y: 0.5}}
	)
	rho, err := m.KDE(k, "rho", samples, false)
	assert.NoError(t, err)
	assert.Equal(t, rho, m.Field("rho"))

	// Across the seam the sample sits 0.15 away from vertex 1; the plain
	// Euclidean estimate sees only the 0.85 gap
	plain := kde.Estimator{Kernel: k, Samples: samples}
	flat := plain.Evaluate(m.Vertices())
	assert.Greater(t, rho[1], flat[1]*10)
	assert.InDelta(t, flat[0], rho[0], flat[0]*1.e-3)
}

func TestPeriodicKDEAt(t *testing.T) {
	var (
		m       = periodicSquare(t, []float64{0.1, 0.5, 0.9, 0.5})
		k       = kde.Gaussian{Sigma: 0.1}
		samples = []r3.Vector{{X: 0.05, Y: 0.5}}
	)
	rho, err := m.KDEAt(k, "partial", samples, []int32{1}, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(rho))
	field := m.Field("partial")
	assert.Equal(t, 0., field[0])
	assert.Equal(t, rho[0], field[1])

	_, err = m.KDEAt(k, "oops", samples, []int32{2}, false)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}
