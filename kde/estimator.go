package kde

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/notargets/surfmesh/spatial"
)

// Estimator accumulates per-target kernel contributions from Samples.
// Compactly supported kernels query a kd-tree within the support radius;
// unbounded kernels fall back to the exact sum over every sample.
type Estimator struct {
	Kernel  DensityKernel
	Samples []r3.Vector
	Verbose bool
}

// Evaluate returns the density at each target using Euclidean distance.
func (e *Estimator) Evaluate(targets []r3.Vector) (rho []float64) {
	rho = e.accumulate(targets, e.Samples)
	e.normalize(rho)
	return
}

// EvaluatePeriodic sums over the nine xy lattice images of every sample,
// with lattice vectors taken from the box extents. This matches the
// sum-over-images semantics; the minimum-image distance is only a shortcut
// for compact kernels and is not used here.
func (e *Estimator) EvaluatePeriodic(targets []r3.Vector, box0, box1 r3.Vector) (rho []float64) {
	var (
		lx     = box1.X - box0.X
		ly     = box1.Y - box0.Y
		images = make([]r3.Vector, 0, 9*len(e.Samples))
	)
	for sx := -1; sx <= 1; sx++ {
		for sy := -1; sy <= 1; sy++ {
			shift := r3.Vector{X: float64(sx) * lx, Y: float64(sy) * ly}
			for _, s := range e.Samples {
				images = append(images, s.Add(shift))
			}
		}
	}
	rho = e.accumulate(targets, images)
	e.normalize(rho)
	return
}

func (e *Estimator) accumulate(targets, samples []r3.Vector) (rho []float64) {
	rho = make([]float64, len(targets))
	if len(samples) == 0 {
		return
	}
	h := e.Kernel.Support()
	if math.IsInf(h, 1) {
		for i, t := range targets {
			sum := 0.
			for _, s := range samples {
				sum += e.Kernel.Eval(t.Sub(s).Norm2())
			}
			rho[i] = sum
		}
		return
	}
	ix := spatial.NewIndex(samples)
	for i, t := range targets {
		sum := 0.
		for _, id := range ix.Within(h, t) {
			sum += e.Kernel.Eval(t.Sub(samples[id]).Norm2())
		}
		rho[i] = sum
	}
	return
}

func (e *Estimator) normalize(rho []float64) {
	if !e.Kernel.Normalized() || len(e.Samples) == 0 {
		return
	}
	inv := 1. / float64(len(e.Samples))
	for i := range rho {
		rho[i] *= inv
	}
	if e.Verbose {
		fmt.Printf("kde: %d samples, %d targets\n", len(e.Samples), len(rho))
	}
}
