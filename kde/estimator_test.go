package kde

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianAgainstDirectSum(t *testing.T) {
	var (
		k       = Gaussian{Sigma: 0.25}
		samples = []r3.Vector{
			{X: 0.1, Y: 0.2}, {X: 0.7, Y: 0.3}, {X: 0.4, Y: 0.9},
		}
		targets = []r3.Vector{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}}
		e       = Estimator{Kernel: k, Samples: samples}
	)
	rho := e.Evaluate(targets)
	require.Len(t, rho, 2)
	for i, tgt := range targets {
		want := 0.
		for _, s := range samples {
			want += k.Eval(tgt.Sub(s).Norm2())
		}
		want /= float64(len(samples))
		assert.InDelta(t, want, rho[i], 1.e-14)
	}
}

// The density through a seam must pick up the sample image on the far
// side: with box [0,1)^2 and one sample at (0.95,0.5), the target at
// (0.1,0.1) sees the image at (-0.05,0.5).
func TestPeriodicSeamContribution(t *testing.T) {
	var (
		k       = Gaussian{Sigma: 0.1}
		sample  = r3.Vector{X: 0.95, Y: 0.5}
		targets = []r3.Vector{
			{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}, {X: 0.1, Y: 0.9}, {X: 0.9, Y: 0.9},
		}
		box0 = r3.Vector{X: 0, Y: 0}
		box1 = r3.Vector{X: 1, Y: 1}
		e    = Estimator{Kernel: k, Samples: []r3.Vector{sample}}
	)
	rho := e.EvaluatePeriodic(targets, box0, box1)

	// Direct nine-image summation
	for i, tgt := range targets {
		want := 0.
		for sx := -1; sx <= 1; sx++ {
			for sy := -1; sy <= 1; sy++ {
				img := sample.Add(r3.Vector{X: float64(sx), Y: float64(sy)})
				want += k.Eval(tgt.Sub(img).Norm2())
			}
		}
		assert.InDelta(t, want, rho[i], 1.e-14)
	}

	// The wrapped image dominates the direct path for the (0.1,0.1) target
	direct := k.Eval(targets[0].Sub(sample).Norm2())
	viaImage := k.Eval(targets[0].Sub(r3.Vector{X: -0.05, Y: 0.5}).Norm2())
	assert.Greater(t, viaImage, direct)
	assert.Greater(t, rho[0], direct)
}

func TestEpanechnikovCompactSupport(t *testing.T) {
	var (
		k       = Epanechnikov{H: 0.5}
		samples = []r3.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.2, Y: 0.1}}
		targets = []r3.Vector{{X: 0, Y: 0}, {X: 2, Y: 2}}
		e       = Estimator{Kernel: k, Samples: samples}
	)
	assert.Equal(t, 0., k.Eval(0.25))
	assert.Equal(t, 0.75, k.Eval(0))

	rho := e.Evaluate(targets)
	// Target far outside every support radius
	assert.Equal(t, 0., rho[1])
	// kd-tree path agrees with brute force
	want := 0.
	for _, s := range samples {
		want += k.Eval(targets[0].Sub(s).Norm2())
	}
	want /= float64(len(samples))
	assert.InDelta(t, want, rho[0], 1.e-14)
}

func TestNoSamples(t *testing.T) {
	e := Estimator{Kernel: Gaussian{Sigma: 1}}
	rho := e.Evaluate([]r3.Vector{{X: 1}})
	assert.Equal(t, []float64{0}, rho)
	assert.False(t, math.IsNaN(rho[0]))
}
