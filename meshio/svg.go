package meshio

import (
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/notargets/surfmesh/trimesh"
)

const (
	svgMargin = 20

	faceStyle   = "fill:rgb(235,235,245);stroke:rgb(60,60,60);stroke-width:1"
	vertexStyle = "fill:rgb(200,30,30)"
)

// WriteSVG renders the xy projection of the triangulation. The mesh is
// scaled to fit a width x width canvas with a fixed margin; vertices are
// drawn as dots on top of the faces.
func WriteSVG(w io.Writer, m *trimesh.TriMesh, width int) {
	var (
		verts                  = m.Vertices()
		minX, minY, maxX, maxY = math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	)
	for _, v := range verts {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 || math.IsInf(span, -1) {
		span = 1
	}
	scale := float64(width-2*svgMargin) / span
	toScreen := func(x, y float64) (int, int) {
		// SVG y grows downward
		return svgMargin + int(scale*(x-minX)), width - svgMargin - int(scale*(y-minY))
	}

	canvas := svg.New(w)
	canvas.Start(width, width)
	canvas.Rect(0, 0, width, width, "fill:rgb(255,255,255)")
	var (
		xp = make([]int, 3)
		yp = make([]int, 3)
	)
	for _, f := range m.Faces() {
		for i, v := range f {
			xp[i], yp[i] = toScreen(verts[v].X, verts[v].Y)
		}
		canvas.Polygon(xp, yp, faceStyle)
	}
	for _, v := range verts {
		x, y := toScreen(v.X, v.Y)
		canvas.Circle(x, y, 2, vertexStyle)
	}
	canvas.End()
}

// WriteSVGFile renders the mesh to an SVG file.
func WriteSVGFile(filename string, m *trimesh.TriMesh, width int) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close()
	WriteSVG(file, m, width)
	return
}
