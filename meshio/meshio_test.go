package meshio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/notargets/surfmesh/trimesh"
)

func squareMesh(t *testing.T, dim int) (m *trimesh.TriMesh) {
	var (
		err    error
		coords []float64
	)
	if dim == 2 {
		coords = []float64{0, 0, 1, 0, 0, 1, 1, 1}
	} else {
		coords = []float64{0, 0, 0.5, 1, 0, 0.25, 0, 1, 0, 1, 1, 0.75}
	}
	m, err = trimesh.NewTriMesh(coords, dim)
	assert.NoError(t, err)
	assert.NoError(t, m.SetFacesLinear([]int32{0, 1, 2, 1, 3, 2}))
	return
}

func TestOFFRoundTrip(t *testing.T) {
	var (
		m   = squareMesh(t, 3)
		buf bytes.Buffer
	)
	assert.NoError(t, WriteOFF(&buf, m))

	got, err := ReadOFF(&buf, false)
	assert.NoError(t, err)
	assert.Empty(t, cmp.Diff(m.GetVertices(), got.GetVertices()))
	assert.Empty(t, cmp.Diff(m.GetFaces(), got.GetFaces()))
}

func TestOFFWrites2DWithZeroZ(t *testing.T) {
	var (
		m   = squareMesh(t, 2)
		buf bytes.Buffer
	)
	assert.NoError(t, WriteOFF(&buf, m))
	assert.Contains(t, buf.String(), "OFF\n4 2 0\n")
	assert.Contains(t, buf.String(), "0 0 0\n")

	got, err := ReadOFF(&buf, false)
	assert.NoError(t, err)
	for _, v := range got.Vertices() {
		assert.Equal(t, 0., v.Z)
	}
}

func TestOFFCommentsAndBlanks(t *testing.T) {
	in := strings.NewReader(`OFF
# a comment
3 1 0

0 0 0
1 0 0
0 1 0
3 0 1 2
`)
	m, err := ReadOFF(in, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, m.NumVertices())
	assert.Equal(t, 1, m.NumFaces())
}

func TestOFFRejectsNonTriangular(t *testing.T) {
	in := strings.NewReader("OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n")
	_, err := ReadOFF(in, false)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOFFRejectsBadHeader(t *testing.T) {
	_, err := ReadOFF(strings.NewReader("PLY\n"), false)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOFFTruncated(t *testing.T) {
	_, err := ReadOFF(strings.NewReader("OFF\n3 1 0\n0 0 0\n"), false)
	assert.Error(t, err)
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, dim := range []int{2, 3} {
		var (
			m   = squareMesh(t, dim)
			buf bytes.Buffer
		)
		assert.NoError(t, WriteBinary(&buf, m))

		got, err := ReadBinary(&buf, false)
		assert.NoError(t, err)
		assert.Equal(t, uint8(dim), got.Dim())
		assert.Empty(t, cmp.Diff(m.GetFaces(), got.GetFaces()))
		// Coordinates pass through float32
		want, have := m.GetVertices(), got.GetVertices()
		for i := range want {
			assert.InDelta(t, want[i], have[i], 1.e-6)
		}
	}
}

func TestBinaryRejectsForeignMagic(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte("JUNKJUNKJUNK")), false)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBinaryTruncated(t *testing.T) {
	var (
		m   = squareMesh(t, 3)
		buf bytes.Buffer
	)
	assert.NoError(t, WriteBinary(&buf, m))
	_, err := ReadBinary(bytes.NewReader(buf.Bytes()[:20]), false)
	assert.Error(t, err)
}

func TestWriteVTP(t *testing.T) {
	var (
		m   = squareMesh(t, 2)
		buf bytes.Buffer
	)
	assert.NoError(t, m.SetField("density", []float64{1, 2, 3, 4}))
	assert.NoError(t, WriteVTP(&buf, m))

	out := buf.String()
	assert.Contains(t, out, `<VTKFile type="PolyData"`)
	assert.Contains(t, out, `NumberOfPoints="4" NumberOfPolys="2"`)
	assert.Contains(t, out, `Name="connectivity"`)
	assert.Contains(t, out, `Name="offsets"`)
	assert.Contains(t, out, `Name="density"`)
	assert.Contains(t, out, "</VTKFile>")
}

func TestWriteSVG(t *testing.T) {
	var (
		m   = squareMesh(t, 2)
		buf bytes.Buffer
	)
	WriteSVG(&buf, m, 400)
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Equal(t, 2, strings.Count(out, "<polygon"))
	assert.Equal(t, 4, strings.Count(out, "<circle"))
}
