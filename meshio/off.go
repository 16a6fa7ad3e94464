/*
Package meshio reads and writes surface meshes: OFF for interchange, a
compact binary dump for checkpoints, VTP PolyData for visualization
pipelines and SVG for quick inspection of planar triangulations.
*/
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/surfmesh/trimesh"
)

// ErrUnsupportedFormat flags input this package cannot represent, such as
// an OFF file with non-triangular faces or a foreign magic number.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// nextLine returns the next non-empty, non-comment line.
func nextLine(reader *bufio.Reader) (line string, err error) {
	for {
		line, err = reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			if err != nil {
				return "", io.ErrUnexpectedEOF
			}
			continue
		}
		return line, nil
	}
}

// ReadOFF parses an ASCII OFF mesh. Only triangular faces are supported;
// anything else fails with ErrUnsupportedFormat.
func ReadOFF(r io.Reader, verbose bool) (m *trimesh.TriMesh, err error) {
	reader := bufio.NewReader(r)
	header, err := nextLine(reader)
	if err != nil {
		return
	}
	if header != "OFF" {
		return nil, fmt.Errorf("%w: header %q, want OFF", ErrUnsupportedFormat, header)
	}
	counts, err := nextLine(reader)
	if err != nil {
		return
	}
	var nv, nf, ne int
	if _, err = fmt.Sscanf(counts, "%d %d %d", &nv, &nf, &ne); err != nil {
		return nil, fmt.Errorf("bad OFF count line %q: %w", counts, err)
	}

	coords := make([]float64, 0, 3*nv)
	for i := 0; i < nv; i++ {
		line, lerr := nextLine(reader)
		if lerr != nil {
			return nil, lerr
		}
		var x, y, z float64
		if _, err = fmt.Sscanf(line, "%f %f %f", &x, &y, &z); err != nil {
			return nil, fmt.Errorf("bad OFF vertex line %q: %w", line, err)
		}
		coords = append(coords, x, y, z)
	}
	if m, err = trimesh.NewTriMesh(coords, 3); err != nil {
		return nil, err
	}

	faces := make([]int32, 0, 3*nf)
	for i := 0; i < nf; i++ {
		line, lerr := nextLine(reader)
		if lerr != nil {
			return nil, lerr
		}
		var k, a, b, c int32
		if _, err = fmt.Sscanf(line, "%d %d %d %d", &k, &a, &b, &c); err != nil {
			return nil, fmt.Errorf("bad OFF face line %q: %w", line, err)
		}
		if k != 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices", ErrUnsupportedFormat, i, k)
		}
		faces = append(faces, a, b, c)
	}
	if err = m.SetFacesLinear(faces); err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("read OFF mesh: %d vertices, %d faces\n", nv, nf)
	}
	return
}

// WriteOFF writes the mesh as ASCII OFF. 2D meshes are written with z=0.
func WriteOFF(w io.Writer, m *trimesh.TriMesh) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "OFF\n%d %d 0\n", m.NumVertices(), m.NumFaces())
	for _, v := range m.Vertices() {
		fmt.Fprintf(bw, "%.17g %.17g %.17g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces() {
		fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2])
	}
	return bw.Flush()
}

// ReadOFFFile opens and parses an OFF file.
func ReadOFFFile(filename string, verbose bool) (m *trimesh.TriMesh, err error) {
	if verbose {
		fmt.Printf("Reading OFF file named: %s\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()
	return ReadOFF(file, verbose)
}

// WriteOFFFile writes the mesh to an OFF file.
func WriteOFFFile(filename string, m *trimesh.TriMesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close()
	return WriteOFF(file, m)
}
