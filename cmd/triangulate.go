/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/surfmesh/delaunay"
	"github.com/notargets/surfmesh/meshio"
	"github.com/notargets/surfmesh/params"
	"github.com/notargets/surfmesh/trimesh"
)

type TriangulateModel struct {
	PointsFile string
	ParamsFile string
	OutputFile string
	Verbose    bool
}

// triangulateCmd represents the triangulate command
var triangulateCmd = &cobra.Command{
	Use:   "triangulate",
	Short: "Delaunay triangulation of a point set, planar or periodic",
	Long: `
Triangulates a point set read from an OFF or whitespace-separated text
file. With Periodic set in the parameters file the domain is treated as a
torus over the given bounding box,

surfmesh triangulate `,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("triangulate called")
		if p := startProfile(cmd); p != nil {
			defer p.Stop()
		}
		mt := &TriangulateModel{}
		if mt.PointsFile, err = cmd.Flags().GetString("pointsFile"); err != nil {
			panic(err)
		}
		if mt.ParamsFile, err = cmd.Flags().GetString("parametersFile"); err != nil {
			panic(err)
		}
		if mt.OutputFile, err = cmd.Flags().GetString("outputFile"); err != nil {
			panic(err)
		}
		mt.Verbose, _ = cmd.Flags().GetBool("verbose")
		pp := processParams(mt.ParamsFile, mt.Verbose)
		RunTriangulate(mt, pp)
	},
}

func init() {
	rootCmd.AddCommand(triangulateCmd)
	triangulateCmd.Flags().StringP("pointsFile", "F", "", "Point set to triangulate, OFF or text with one point per line")
	triangulateCmd.Flags().StringP("parametersFile", "I", "", "YAML file for pipeline parameters like:\n\t- Periodic / BBox\n\t- OutputFormat")
	triangulateCmd.Flags().StringP("outputFile", "o", "mesh.vtp", "output file, format per OutputFormat")
	triangulateCmd.Flags().BoolP("verbose", "v", false, "print progress during the run")
}

func processParams(filename string, verbose bool) (pp *params.PipelineParameters) {
	pp = params.NewPipelineParameters()
	if len(filename) == 0 {
		return
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = pp.Parse(data); err != nil {
		fmt.Printf("error parsing parameters file %s: %s\n", filename, err.Error())
		os.Exit(1)
	}
	if err = pp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if verbose {
		pp.Print()
	}
	return
}

// readPoints loads a linearized coordinate array from an OFF mesh or a
// text file with dim whitespace-separated coordinates per line.
func readPoints(filename string, dim int, verbose bool) (coords []float64) {
	if len(filename) == 0 {
		fmt.Printf("error: must supply a points file (-F, --pointsFile)\n")
		os.Exit(1)
	}
	if strings.HasSuffix(filename, ".off") {
		m, err := meshio.ReadOFFFile(filename, verbose)
		if err != nil {
			fmt.Printf("error reading %s: %s\n", filename, err.Error())
			os.Exit(1)
		}
		for _, v := range m.Vertices() {
			if dim == 2 {
				coords = append(coords, v.X, v.Y)
			} else {
				coords = append(coords, v.X, v.Y, v.Z)
			}
		}
		return
	}
	file, err := os.Open(filename)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < dim {
			fmt.Printf("error: line %d of %s has %d coordinates, need %d\n",
				lineNo, filename, len(fields), dim)
			os.Exit(1)
		}
		for d := 0; d < dim; d++ {
			val, perr := strconv.ParseFloat(fields[d], 64)
			if perr != nil {
				fmt.Printf("error: line %d of %s: %s\n", lineNo, filename, perr.Error())
				os.Exit(1)
			}
			coords = append(coords, val)
		}
	}
	if verbose {
		fmt.Printf("read %d points from %s\n", len(coords)/dim, filename)
	}
	return
}

func writeMesh(filename string, m *trimesh.TriMesh, pp *params.PipelineParameters) {
	var err error
	switch pp.OutputFormat {
	case "off":
		err = meshio.WriteOFFFile(filename, m)
	case "vtp":
		err = meshio.WriteVTPFile(filename, m)
	case "svg":
		err = meshio.WriteSVGFile(filename, m, pp.SVGWidth)
	case "binary":
		err = meshio.WriteBinaryFile(filename, m)
	}
	if err != nil {
		fmt.Printf("error writing %s: %s\n", filename, err.Error())
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d vertices, %d faces\n", filename, m.NumVertices(), m.NumFaces())
}

// buildMesh triangulates the input points, periodically when requested,
// and returns the base mesh plus the periodic variant when one was built.
func buildMesh(mt *TriangulateModel, pp *params.PipelineParameters) (m *trimesh.TriMesh, pm *trimesh.TriMeshPeriodic) {
	coords := readPoints(mt.PointsFile, pp.Dim, mt.Verbose)
	var err error
	if pp.Periodic {
		if pm, err = trimesh.NewTriMeshPeriodic(coords, pp.Dim); err == nil {
			if err = pm.SetBBox(pp.BBox); err == nil {
				_, err = pm.Delaunay(delaunay.NewShewchuk(), mt.Verbose)
			}
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		m = &pm.TriMesh
		return
	}
	if m, err = trimesh.NewTriMesh(coords, pp.Dim); err == nil {
		_, err = m.Delaunay(delaunay.NewShewchuk(), mt.Verbose)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunTriangulate(mt *TriangulateModel, pp *params.PipelineParameters) {
	m, _ := buildMesh(mt, pp)
	writeMesh(mt.OutputFile, m, pp)
}
