package meshio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/trimesh"
)

/*
Binary checkpoint layout, little-endian:

	4 bytes  magic "MSRF"
	1 byte   dimensionality (2 or 3)
	uint32   vertex count N
	uint32   face count M
	N x 3    float32 vertex coordinates
	M x 3    uint32 face indices
*/

var binaryMagic = [4]byte{'M', 'S', 'R', 'F'}

// WriteBinary dumps the mesh geometry and connectivity. Fields are not
// written; they are cheap to recompute.
func WriteBinary(w io.Writer, m *trimesh.TriMesh) (err error) {
	bw := bufio.NewWriter(w)
	if _, err = bw.Write(binaryMagic[:]); err != nil {
		return
	}
	if err = bw.WriteByte(m.Dim()); err != nil {
		return
	}
	var (
		verts = m.Vertices()
		faces = m.Faces()
	)
	if err = binary.Write(bw, binary.LittleEndian, uint32(len(verts))); err != nil {
		return
	}
	if err = binary.Write(bw, binary.LittleEndian, uint32(len(faces))); err != nil {
		return
	}
	for _, v := range verts {
		coords := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		if err = binary.Write(bw, binary.LittleEndian, coords); err != nil {
			return
		}
	}
	for _, f := range faces {
		idx := [3]uint32{uint32(f[0]), uint32(f[1]), uint32(f[2])}
		if err = binary.Write(bw, binary.LittleEndian, idx); err != nil {
			return
		}
	}
	return bw.Flush()
}

// ReadBinary reads a mesh written by WriteBinary.
func ReadBinary(r io.Reader, verbose bool) (m *trimesh.TriMesh, err error) {
	br := bufio.NewReader(r)
	var magic [4]byte
	if _, err = io.ReadFull(br, magic[:]); err != nil {
		return
	}
	if magic != binaryMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic[:])
	}
	dim, err := br.ReadByte()
	if err != nil {
		return
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w: dimensionality %d", ErrUnsupportedFormat, dim)
	}
	var nv, nf uint32
	if err = binary.Read(br, binary.LittleEndian, &nv); err != nil {
		return
	}
	if err = binary.Read(br, binary.LittleEndian, &nf); err != nil {
		return
	}

	verts := make([]r3.Vector, 0, nv)
	for i := uint32(0); i < nv; i++ {
		var v [3]float32
		if err = binary.Read(br, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		verts = append(verts, r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
	}
	m = trimesh.NewTriMeshFromVertices(verts, dim)

	faces := make([]int32, 0, 3*nf)
	for i := uint32(0); i < nf; i++ {
		var f [3]uint32
		if err = binary.Read(br, binary.LittleEndian, &f); err != nil {
			return nil, err
		}
		faces = append(faces, int32(f[0]), int32(f[1]), int32(f[2]))
	}
	if err = m.SetFacesLinear(faces); err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("read binary mesh: dim %d, %d vertices, %d faces\n", dim, nv, nf)
	}
	return
}

// WriteBinaryFile dumps the mesh to a file.
func WriteBinaryFile(filename string, m *trimesh.TriMesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close()
	return WriteBinary(file, m)
}

// ReadBinaryFile reads a binary mesh file.
func ReadBinaryFile(filename string, verbose bool) (m *trimesh.TriMesh, err error) {
	if verbose {
		fmt.Printf("Reading binary mesh file named: %s\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()
	return ReadBinary(file, verbose)
}
