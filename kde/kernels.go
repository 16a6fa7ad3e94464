/*
Package kde evaluates kernel density estimates at mesh vertices against a
set of sample points. The periodic variant sums contributions from all nine
xy lattice images of each sample.
*/
package kde

import "math"

// DensityKernel evaluates a radial kernel from a squared distance.
// Support returns the cutoff radius beyond which Eval is zero, or +Inf for
// kernels with unbounded support. Normalized kernels are divided by the
// sample count so the field integrates like a probability density.
type DensityKernel interface {
	Eval(distSq float64) float64
	Support() float64
	Normalized() bool
}

// Gaussian is exp(-r^2 / 2 sigma^2) with unbounded support, so estimates
// against it are exact sums over every sample.
type Gaussian struct {
	Sigma float64
}

func (g Gaussian) Eval(distSq float64) float64 {
	return math.Exp(-distSq / (2 * g.Sigma * g.Sigma))
}

func (g Gaussian) Support() float64 { return math.Inf(1) }
func (g Gaussian) Normalized() bool { return true }

// Epanechnikov is the compact parabolic kernel 3/4 (1 - (r/h)^2) on [0,h).
type Epanechnikov struct {
	H float64
}

func (e Epanechnikov) Eval(distSq float64) float64 {
	u := distSq / (e.H * e.H)
	if u >= 1 {
		return 0
	}
	return 0.75 * (1 - u)
}

func (e Epanechnikov) Support() float64 { return e.H }
func (e Epanechnikov) Normalized() bool { return true }
