package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
Title: bilayer run
Dim: 3
Periodic: true
BBox: [0, 0, 0, 100, 100, 50]
Kernel: epanechnikov
Bandwidth: 5.0
Verbose: true
`
	pp := NewPipelineParameters()
	assert.NoError(t, pp.Parse([]byte(input)))
	assert.NoError(t, pp.Validate())

	assert.Equal(t, "bilayer run", pp.Title)
	assert.Equal(t, 3, pp.Dim)
	assert.True(t, pp.Periodic)
	assert.Equal(t, []float64{0, 0, 0, 100, 100, 50}, pp.BBox)
	assert.Equal(t, "epanechnikov", pp.Kernel)
	assert.Equal(t, 5.0, pp.Bandwidth)
	// Untouched keys keep their defaults
	assert.Equal(t, "density", pp.DensityField)
	assert.Equal(t, "vtp", pp.OutputFormat)
}

func TestValidate(t *testing.T) {
	pp := NewPipelineParameters()
	assert.NoError(t, pp.Validate())

	pp.Dim = 4
	assert.Error(t, pp.Validate())
	pp.Dim = 2

	pp.Kernel = "tophat"
	assert.Error(t, pp.Validate())
	pp.Kernel = "gaussian"

	pp.OutputFormat = "stl"
	assert.Error(t, pp.Validate())
	pp.OutputFormat = "off"

	pp.Periodic = true
	assert.Error(t, pp.Validate())
	pp.BBox = []float64{0, 0, 1, 1}
	assert.NoError(t, pp.Validate())
}

func TestParseRejectsGarbage(t *testing.T) {
	pp := NewPipelineParameters()
	assert.Error(t, pp.Parse([]byte("Dim: [not, an, int]")))
}
