package delaunay

import (
	"fmt"
	"math"
	"sort"
)

// Incremental is a Bowyer-Watson triangulator. Points are inserted in input
// order into a super-triangle; triangles whose circumcircle contains the new
// point are removed and the star-shaped cavity is retriangulated. Output is
// canonicalized (smallest vertex first, faces sorted lexicographically) so
// repeated runs over the same input produce identical face lists.
type Incremental struct{}

func NewIncremental() Incremental {
	return Incremental{}
}

type btri struct {
	v    [3]int32
	cx   float64
	cy   float64
	rsq  float64
	dead bool
}

func circum(ax, ay, bx, by, cx, cy float64) (ux, uy, rsq float64, ok bool) {
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if d == 0 {
		return
	}
	asq := ax*ax + ay*ay
	bsq := bx*bx + by*by
	csq := cx*cx + cy*cy
	ux = (asq*(by-cy) + bsq*(cy-ay) + csq*(ay-by)) / d
	uy = (asq*(cx-bx) + bsq*(ax-cx) + csq*(bx-ax)) / d
	dx := ax - ux
	dy := ay - uy
	rsq = dx*dx + dy*dy
	ok = true
	return
}

func (Incremental) Triangulate(pts [][2]float64) (faces [][3]int32, err error) {
	var (
		n = len(pts)
	)
	if n < 3 {
		err = fmt.Errorf("%w: %d points, need at least 3", ErrFatalTriangulation, n)
		return
	}

	// Super-triangle comfortably enclosing the bounding box
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	dmax := math.Max(maxX-minX, maxY-minY)
	if dmax == 0 {
		err = fmt.Errorf("%w: all points coincide", ErrFatalTriangulation)
		return
	}
	midX, midY := 0.5*(minX+maxX), 0.5*(minY+maxY)
	work := make([][2]float64, n, n+3)
	copy(work, pts)
	work = append(work,
		[2]float64{midX - 20*dmax, midY - dmax},
		[2]float64{midX + 20*dmax, midY - dmax},
		[2]float64{midX, midY + 20*dmax},
	)

	mkTri := func(a, b, c int32) (t btri, ok bool) {
		pa, pb, pc := work[a], work[b], work[c]
		// Keep counter-clockwise winding
		if (pb[0]-pa[0])*(pc[1]-pa[1])-(pc[0]-pa[0])*(pb[1]-pa[1]) < 0 {
			b, c = c, b
			pb, pc = pc, pb
		}
		t.v = [3]int32{a, b, c}
		t.cx, t.cy, t.rsq, ok = circum(pa[0], pa[1], pb[0], pb[1], pc[0], pc[1])
		return
	}

	super, ok := mkTri(int32(n), int32(n+1), int32(n+2))
	if !ok {
		panic("degenerate super-triangle")
	}
	tris := []btri{super}

	type dedge struct{ a, b int32 }
	for ip := 0; ip < n; ip++ {
		var (
			px, py = work[ip][0], work[ip][1]
			cavity []dedge
			seen   = make(map[dedge]int)
		)
		for it := range tris {
			t := &tris[it]
			if t.dead {
				continue
			}
			dx, dy := px-t.cx, py-t.cy
			if dx*dx+dy*dy < t.rsq {
				t.dead = true
				for e := 0; e < 3; e++ {
					a, b := t.v[e], t.v[(e+1)%3]
					// Undirected count; shared cavity edges cancel
					key := dedge{a, b}
					if a > b {
						key = dedge{b, a}
					}
					seen[key]++
					cavity = append(cavity, dedge{a, b})
				}
			}
		}
		// Compact the dead triangles before appending the fan
		alive := tris[:0]
		for _, t := range tris {
			if !t.dead {
				alive = append(alive, t)
			}
		}
		tris = alive
		for _, e := range cavity {
			key := dedge{e.a, e.b}
			if e.a > e.b {
				key = dedge{e.b, e.a}
			}
			if seen[key] != 1 {
				continue
			}
			t, ok := mkTri(e.a, e.b, int32(ip))
			if !ok {
				// Collinear sliver on the cavity rim; dropping it would
				// leave a hole, so the input is beyond float predicates
				err = fmt.Errorf("%w: collinear cavity edge at point %d", ErrFatalTriangulation, ip)
				return nil, err
			}
			tris = append(tris, t)
		}
	}

	for _, t := range tris {
		if t.dead {
			continue
		}
		if t.v[0] >= int32(n) || t.v[1] >= int32(n) || t.v[2] >= int32(n) {
			continue // touches the super-triangle
		}
		faces = append(faces, t.v)
	}
	if len(faces) == 0 {
		err = fmt.Errorf("%w: no faces survive, input likely collinear", ErrFatalTriangulation)
		return
	}

	// Canonical order for reproducibility
	for i, f := range faces {
		k := 0
		if f[1] < f[k] {
			k = 1
		}
		if f[2] < f[k] {
			k = 2
		}
		faces[i] = [3]int32{f[k], f[(k+1)%3], f[(k+2)%3]}
	}
	sort.Slice(faces, func(i, j int) bool {
		for d := 0; d < 3; d++ {
			if faces[i][d] != faces[j][d] {
				return faces[i][d] < faces[j][d]
			}
		}
		return false
	})
	if err = validate(pts, faces); err != nil {
		return nil, err
	}
	return
}
