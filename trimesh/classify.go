package trimesh

import (
	"fmt"

	"github.com/notargets/surfmesh/delaunay"
	"github.com/notargets/surfmesh/geometry"
)

/*
Face classification for the periodic triangulation. The triangulated point
cloud concatenates the N originals (indices [0,N)) with the replicated
ghosts (index N+k for duplicate k). Every output face falls into one of:

  - interior: all three vertices original
  - periodic: at least one ghost, and the ghost-to-original remap keeps
    three distinct ids; the face crosses a domain seam
  - trimmed: the remap collapses the triple, or the face is a geometric
    duplicate of an interior or earlier periodic face in the tiled plane

Geometric duplicates share the same canonically rotated remapped triple;
among them the copy whose concatenated-index triple is lexicographically
smallest survives.
*/

type classified struct {
	interior     []geometry.Face
	periodic     []geometry.Face // concatenated-array indices
	periodicOrig []geometry.Face // same faces remapped to originals
	trimmed      []geometry.Face
}

func classifyFaces(faces []geometry.Face, n int32, prov []DuplicateVertex) (cl classified, err error) {
	origOf := func(i int32) int32 {
		if i < n {
			return i
		}
		return prov[i-n].Orig
	}

	// rotation position of the smallest remapped id, orientation preserved
	rotate := func(f geometry.Face) (concat, orig geometry.Face) {
		var remap geometry.Face
		for i, v := range f {
			remap[i] = origOf(v)
		}
		k := 0
		if remap[1] < remap[k] {
			k = 1
		}
		if remap[2] < remap[k] {
			k = 2
		}
		for i := 0; i < 3; i++ {
			concat[i] = f[(k+i)%3]
			orig[i] = remap[(k+i)%3]
		}
		return
	}

	var (
		interiorKeys = make(map[geometry.Face]struct{})
		candidates   []geometry.Face
	)
	for _, f := range faces {
		o0, o1, o2 := origOf(f[0]), origOf(f[1]), origOf(f[2])
		switch {
		case o0 == o1 || o1 == o2 || o2 == o0:
			cl.trimmed = append(cl.trimmed, f)
		case f[0] < n && f[1] < n && f[2] < n:
			cl.interior = append(cl.interior, f)
			_, orig := rotate(f)
			interiorKeys[orig] = struct{}{}
		default:
			candidates = append(candidates, f)
		}
	}

	// Deduplicate seam-crossing faces against the interior set and among
	// themselves
	best := make(map[geometry.Face]geometry.Face, len(candidates))
	for _, f := range candidates {
		concat, orig := rotate(f)
		if _, ok := interiorKeys[orig]; ok {
			cl.trimmed = append(cl.trimmed, f)
			continue
		}
		if cur, ok := best[orig]; !ok || concat.Less(cur) {
			if ok {
				cl.trimmed = append(cl.trimmed, cur)
			}
			best[orig] = concat
		} else {
			cl.trimmed = append(cl.trimmed, f)
		}
	}
	// Emit periodic faces in first-seen candidate order for determinism
	emitted := make(map[geometry.Face]struct{}, len(best))
	for _, f := range candidates {
		_, orig := rotate(f)
		concat, ok := best[orig]
		if !ok {
			continue
		}
		if _, done := emitted[orig]; done {
			continue
		}
		emitted[orig] = struct{}{}
		cl.periodic = append(cl.periodic, concat)
		cl.periodicOrig = append(cl.periodicOrig, orig)
	}

	// A surviving periodic face must anchor at least one original vertex
	for i, f := range cl.periodic {
		if f[0] >= n && f[1] >= n && f[2] >= n {
			err = fmt.Errorf("%w: periodic face %v (originals %v) lies entirely outside the domain",
				delaunay.ErrFatalTriangulation, f, cl.periodicOrig[i])
			return
		}
	}
	return
}
