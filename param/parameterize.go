/*
Package param maps a surface mesh with disk topology onto a planar
parameter domain. Harmonic pins the boundary loop to the unit circle by
arclength and relaxes interior vertices to the uniform-Laplacian (Tutte)
equilibrium; XY is the trivial planar parameterization.
*/
package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/surfmesh/geometry"
)

// ErrNotDisk flags a mesh whose boundary does not form a single loop, so
// no disk parameterization exists.
var ErrNotDisk = errors.New("mesh is not a topological disk")

// Parameterizer assigns each vertex a 2D parameter coordinate. boundary is
// the unordered boundary edge list with each pair sorted ascending.
type Parameterizer interface {
	Parameterize(verts []r3.Vector, faces []geometry.Face,
		boundary [][2]int32, verbose bool) ([]r2.Point, error)
}

// Harmonic relaxes interior vertices against a fixed circular boundary.
type Harmonic struct {
	MaxSweeps int     // 0 selects the default
	Tol       float64 // 0 selects the default
}

const (
	defaultSweeps = 4000
	defaultTol    = 1.e-12
)

func NewHarmonic() *Harmonic {
	return &Harmonic{}
}

func (h *Harmonic) Parameterize(verts []r3.Vector, faces []geometry.Face,
	boundary [][2]int32, verbose bool) (uv []r2.Point, err error) {
	var (
		n      = len(verts)
		sweeps = h.MaxSweeps
		tol    = h.Tol
	)
	if sweeps == 0 {
		sweeps = defaultSweeps
	}
	if tol == 0 {
		tol = defaultTol
	}
	loop, err := assembleLoop(boundary)
	if err != nil {
		return
	}

	uv = make([]r2.Point, n)
	onBoundary := make([]bool, n)

	// Pin the loop to the unit circle, spaced by 3D arclength
	total := 0.
	for i, v := range loop {
		w := loop[(i+1)%len(loop)]
		total += verts[w].Sub(verts[v]).Norm()
	}
	if total == 0 {
		err = fmt.Errorf("%w: boundary loop has zero length", ErrNotDisk)
		return
	}
	arc := 0.
	for i, v := range loop {
		theta := 2 * math.Pi * arc / total
		uv[v] = r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}
		onBoundary[v] = true
		w := loop[(i+1)%len(loop)]
		arc += verts[w].Sub(verts[v]).Norm()
	}

	// Uniform-weight adjacency rows for interior vertices
	var (
		dok  = sparse.NewDOK(n, n)
		deg  = make([]float64, n)
		seen = make(map[geometry.EdgeKey]struct{})
	)
	addEdge := func(a, b int32) {
		ek := geometry.NewEdgeKey(a, b)
		if _, ok := seen[ek]; ok {
			return
		}
		seen[ek] = struct{}{}
		if !onBoundary[a] {
			dok.Set(int(a), int(b), 1)
			deg[a]++
		}
		if !onBoundary[b] {
			dok.Set(int(b), int(a), 1)
			deg[b]++
		}
	}
	interior := 0
	for i := 0; i < n; i++ {
		if !onBoundary[i] {
			interior++
		}
	}
	for _, f := range faces {
		addEdge(f[0], f[1])
		addEdge(f[1], f[2])
		addEdge(f[2], f[0])
	}
	if interior == 0 {
		return
	}
	csr := dok.ToCSR()

	// Jacobi sweeps toward the Tutte equilibrium. The uniform Laplacian is
	// diagonally dominant with fixed boundary rows, so this converges.
	var (
		u     = make([]float64, n)
		v     = make([]float64, n)
		numU  = make([]float64, n)
		numV  = make([]float64, n)
		delta = make([]float64, 2*n)
	)
	for i := range uv {
		u[i], v[i] = uv[i].X, uv[i].Y
	}
	for s := 0; s < sweeps; s++ {
		for i := range numU {
			numU[i], numV[i] = 0, 0
		}
		csr.DoNonZero(func(i, j int, w float64) {
			numU[i] += w * u[j]
			numV[i] += w * v[j]
		})
		for i := 0; i < n; i++ {
			if onBoundary[i] || deg[i] == 0 {
				delta[2*i], delta[2*i+1] = 0, 0
				continue
			}
			nu, nv := numU[i]/deg[i], numV[i]/deg[i]
			delta[2*i], delta[2*i+1] = nu-u[i], nv-v[i]
			u[i], v[i] = nu, nv
		}
		maxDelta := floats.Norm(delta, math.Inf(1))
		if maxDelta < tol {
			if verbose {
				fmt.Printf("parameterize: converged after %d sweeps (delta %.3e)\n", s+1, maxDelta)
			}
			break
		}
	}
	for i := range uv {
		if !onBoundary[i] {
			uv[i] = r2.Point{X: u[i], Y: v[i]}
		}
	}
	return
}

// assembleLoop orders the unordered boundary pairs into a single closed
// loop, starting at the smallest vertex id and walking toward its smaller
// neighbor so the result is reproducible.
func assembleLoop(boundary [][2]int32) (loop []int32, err error) {
	if len(boundary) < 3 {
		err = fmt.Errorf("%w: %d boundary edges", ErrNotDisk, len(boundary))
		return
	}
	adj := make(map[int32][]int32)
	start := boundary[0][0]
	for _, e := range boundary {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
		if e[0] < start {
			start = e[0]
		}
	}
	for v, nb := range adj {
		if len(nb) != 2 {
			err = fmt.Errorf("%w: boundary vertex %d has %d boundary neighbors", ErrNotDisk, v, len(nb))
			return
		}
	}
	cur := start
	next := adj[start][0]
	if adj[start][1] < next {
		next = adj[start][1]
	}
	for {
		loop = append(loop, cur)
		if next == start {
			break
		}
		nb := adj[next]
		step := nb[0]
		if step == cur {
			step = nb[1]
		}
		cur, next = next, step
		if len(loop) > len(adj) {
			err = fmt.Errorf("%w: boundary walk did not close", ErrNotDisk)
			return nil, err
		}
	}
	if len(loop) != len(adj) {
		err = fmt.Errorf("%w: %d of %d boundary vertices lie on the outer loop",
			ErrNotDisk, len(loop), len(adj))
		return nil, err
	}
	return
}

// XY parameterizes by dropping z, for meshes already aligned with the
// domain plane.
type XY struct{}

func NewXY() XY {
	return XY{}
}

func (XY) Parameterize(verts []r3.Vector, _ []geometry.Face,
	_ [][2]int32, _ bool) (uv []r2.Point, err error) {
	uv = make([]r2.Point, len(verts))
	for i, v := range verts {
		uv[i] = r2.Point{X: v.X, Y: v.Y}
	}
	return
}
