package trimesh

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// DuplicateVertex records the provenance of one ghost vertex: the original
// it copies and the lattice shift per axis, each in {-1,0,+1} with the zero
// shift excluded. Its position is the original translated by the shift
// times the box extents.
type DuplicateVertex struct {
	Orig  int32
	Shift [3]int8
}

// replicate produces the ghost copies of verts around the half-open box
// [box0,box1). 2D wrap emits 8N duplicates, 3D wrap 26N. Duplicates are
// ordered by lexicographic shift, then by original id, so downstream face
// indices are reproducible. A vertex outside the box fails the call.
func replicate(verts []r3.Vector, box0, box1 r3.Vector, wrapZ bool) (dups []r3.Vector, prov []DuplicateVertex, err error) {
	var (
		lx, ly, lz = box1.X - box0.X, box1.Y - box0.Y, box1.Z - box0.Z
		n          = len(verts)
	)
	for i, v := range verts {
		if v.X < box0.X || v.X >= box1.X || v.Y < box0.Y || v.Y >= box1.Y {
			err = fmt.Errorf("%w: vertex %d at (%g,%g,%g) outside [%g,%g)x[%g,%g)",
				ErrOutOfDomain, i, v.X, v.Y, v.Z, box0.X, box1.X, box0.Y, box1.Y)
			return
		}
		if wrapZ && (v.Z < box0.Z || v.Z >= box1.Z) {
			err = fmt.Errorf("%w: vertex %d z=%g outside [%g,%g)", ErrOutOfDomain, i, v.Z, box0.Z, box1.Z)
			return
		}
	}

	zlo, zhi := int8(0), int8(0)
	if wrapZ {
		zlo, zhi = -1, 1
	}
	copies := 8 * n
	if wrapZ {
		copies = 26 * n
	}
	dups = make([]r3.Vector, 0, copies)
	prov = make([]DuplicateVertex, 0, copies)
	for sx := int8(-1); sx <= 1; sx++ {
		for sy := int8(-1); sy <= 1; sy++ {
			for sz := zlo; sz <= zhi; sz++ {
				if sx == 0 && sy == 0 && sz == 0 {
					continue
				}
				shift := r3.Vector{
					X: float64(sx) * lx,
					Y: float64(sy) * ly,
					Z: float64(sz) * lz,
				}
				for id, v := range verts {
					dups = append(dups, v.Add(shift))
					prov = append(prov, DuplicateVertex{
						Orig:  int32(id),
						Shift: [3]int8{sx, sy, sz},
					})
				}
			}
		}
	}
	return
}

// wrap folds a coordinate into [lo,hi).
func wrap(x, lo, hi float64) float64 {
	l := hi - lo
	for x < lo {
		x += l
	}
	for x >= hi {
		x -= l
	}
	return x
}
