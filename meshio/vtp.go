package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/surfmesh/trimesh"
)

// WriteVTP writes the mesh as an ASCII VTK PolyData (.vtp) file, with
// every attached scalar field as a PointData array.
func WriteVTP(w io.Writer, m *trimesh.TriMesh) (err error) {
	var (
		bw    = bufio.NewWriter(w)
		verts = m.Vertices()
		faces = m.Faces()
	)
	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(bw, "  <PolyData>\n")
	fmt.Fprintf(bw, "    <Piece NumberOfPoints=\"%d\" NumberOfPolys=\"%d\">\n",
		len(verts), len(faces))

	fmt.Fprintf(bw, "      <Points>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range verts {
		fmt.Fprintf(bw, "          %.17g %.17g %.17g\n", v.X, v.Y, v.Z)
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "      </Points>\n")

	fmt.Fprintf(bw, "      <Polys>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, f := range faces {
		fmt.Fprintf(bw, "          %d %d %d\n", f[0], f[1], f[2])
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := range faces {
		fmt.Fprintf(bw, "          %d\n", 3*(i+1))
	}
	fmt.Fprintf(bw, "        </DataArray>\n")
	fmt.Fprintf(bw, "      </Polys>\n")

	if names := m.FieldNames(); len(names) != 0 {
		fmt.Fprintf(bw, "      <PointData>\n")
		for _, name := range names {
			fmt.Fprintf(bw, "        <DataArray type=\"Float64\" Name=\"%s\" format=\"ascii\">\n", name)
			for _, val := range m.Field(name) {
				fmt.Fprintf(bw, "          %.17g\n", val)
			}
			fmt.Fprintf(bw, "        </DataArray>\n")
		}
		fmt.Fprintf(bw, "      </PointData>\n")
	}

	fmt.Fprintf(bw, "    </Piece>\n")
	fmt.Fprintf(bw, "  </PolyData>\n")
	fmt.Fprintf(bw, "</VTKFile>\n")
	return bw.Flush()
}

// WriteVTPFile writes the mesh to a .vtp file.
func WriteVTPFile(filename string, m *trimesh.TriMesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close()
	return WriteVTP(file, m)
}
