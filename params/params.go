package params

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type PipelineParameters struct {
	Title        string    `yaml:"Title"`
	Dim          int       `yaml:"Dim"`
	Periodic     bool      `yaml:"Periodic"`
	BBox         []float64 `yaml:"BBox"` // x0 y0 x1 y1, or two xyz triples
	Kernel       string    `yaml:"Kernel"`
	Sigma        float64   `yaml:"Sigma"`
	Bandwidth    float64   `yaml:"Bandwidth"`
	DensityField string    `yaml:"DensityField"`
	OutputFormat string    `yaml:"OutputFormat"`
	SVGWidth     int       `yaml:"SVGWidth"`
	Verbose      bool      `yaml:"Verbose"`
}

// NewPipelineParameters fills in the defaults a YAML file may override.
func NewPipelineParameters() *PipelineParameters {
	return &PipelineParameters{
		Title:        "surfmesh",
		Dim:          2,
		Kernel:       "gaussian",
		Sigma:        0.1,
		Bandwidth:    0.3,
		DensityField: "density",
		OutputFormat: "vtp",
		SVGWidth:     800,
	}
}

func (pp *PipelineParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

func (pp *PipelineParameters) Validate() (err error) {
	if pp.Dim != 2 && pp.Dim != 3 {
		return fmt.Errorf("Dim must be 2 or 3, have %d", pp.Dim)
	}
	switch pp.Kernel {
	case "gaussian", "epanechnikov":
	default:
		return fmt.Errorf("unknown Kernel %q", pp.Kernel)
	}
	switch pp.OutputFormat {
	case "off", "vtp", "svg", "binary":
	default:
		return fmt.Errorf("unknown OutputFormat %q", pp.OutputFormat)
	}
	if pp.Periodic {
		switch len(pp.BBox) {
		case 4, 6:
		default:
			return fmt.Errorf("Periodic needs a BBox of 4 or 6 scalars, have %d", len(pp.BBox))
		}
	}
	return
}

func (pp *PipelineParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("[%d]\t\t\t= Dim\n", pp.Dim)
	fmt.Printf("[%v]\t\t\t= Periodic\n", pp.Periodic)
	if pp.Periodic {
		fmt.Printf("%v\t= BBox\n", pp.BBox)
	}
	fmt.Printf("[%s]\t\t= Kernel\n", pp.Kernel)
	fmt.Printf("%8.5f\t\t= Sigma\n", pp.Sigma)
	fmt.Printf("%8.5f\t\t= Bandwidth\n", pp.Bandwidth)
	fmt.Printf("[%s]\t\t= DensityField\n", pp.DensityField)
	fmt.Printf("[%s]\t\t= OutputFormat\n", pp.OutputFormat)
}
