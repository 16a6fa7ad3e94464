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
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/notargets/surfmesh/kde"
	"github.com/notargets/surfmesh/params"
)

type DensityModel struct {
	TriangulateModel
	SamplesFile string
}

// densityCmd represents the density command
var densityCmd = &cobra.Command{
	Use:   "density",
	Short: "Kernel density estimate of a sample set over a triangulated surface",
	Long: `
Triangulates the input points, evaluates the density of a second sample
set at every mesh vertex and writes the mesh with the density attached as
a point field. On a periodic domain each sample contributes through all of
its lattice images,

surfmesh density `,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("density called")
		if p := startProfile(cmd); p != nil {
			defer p.Stop()
		}
		md := &DensityModel{}
		if md.PointsFile, err = cmd.Flags().GetString("pointsFile"); err != nil {
			panic(err)
		}
		if md.SamplesFile, err = cmd.Flags().GetString("samplesFile"); err != nil {
			panic(err)
		}
		if md.ParamsFile, err = cmd.Flags().GetString("parametersFile"); err != nil {
			panic(err)
		}
		if md.OutputFile, err = cmd.Flags().GetString("outputFile"); err != nil {
			panic(err)
		}
		md.Verbose, _ = cmd.Flags().GetBool("verbose")
		pp := processParams(md.ParamsFile, md.Verbose)
		RunDensity(md, pp)
	},
}

func init() {
	rootCmd.AddCommand(densityCmd)
	densityCmd.Flags().StringP("pointsFile", "F", "", "Point set to triangulate, OFF or text with one point per line")
	densityCmd.Flags().StringP("samplesFile", "S", "", "Sample set whose density is estimated at the mesh vertices")
	densityCmd.Flags().StringP("parametersFile", "I", "", "YAML file for pipeline parameters like:\n\t- Kernel / Sigma / Bandwidth\n\t- Periodic / BBox")
	densityCmd.Flags().StringP("outputFile", "o", "density.vtp", "output file, format per OutputFormat")
	densityCmd.Flags().BoolP("verbose", "v", false, "print progress during the run")
}

func kernelFromParams(pp *params.PipelineParameters) kde.DensityKernel {
	if pp.Kernel == "epanechnikov" {
		return kde.Epanechnikov{H: pp.Bandwidth}
	}
	return kde.Gaussian{Sigma: pp.Sigma}
}

func RunDensity(md *DensityModel, pp *params.PipelineParameters) {
	if len(md.SamplesFile) == 0 {
		fmt.Printf("error: must supply a samples file (-S, --samplesFile)\n")
		os.Exit(1)
	}
	var (
		coords  = readPoints(md.SamplesFile, pp.Dim, md.Verbose)
		samples = make([]r3.Vector, 0, len(coords)/pp.Dim)
		k       = kernelFromParams(pp)
	)
	for i := 0; i+pp.Dim <= len(coords); i += pp.Dim {
		v := r3.Vector{X: coords[i], Y: coords[i+1]}
		if pp.Dim == 3 {
			v.Z = coords[i+2]
		}
		samples = append(samples, v)
	}

	m, pm := buildMesh(&md.TriangulateModel, pp)
	var err error
	if pm != nil {
		_, err = pm.KDE(k, pp.DensityField, samples, md.Verbose)
	} else {
		_, err = m.KDE(k, pp.DensityField, samples, md.Verbose)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	writeMesh(md.OutputFile, m, pp)
}
