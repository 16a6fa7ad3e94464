/*
Package spatial indexes a fixed point cloud for radius and nearest-neighbor
queries, backed by gonum's kd-tree.
*/
package spatial

import (
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

type point struct {
	pos r3.Vector
	id  int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p point) Dims() int { return 3 }

func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	dx, dy, dz := p.pos.X-q.pos.X, p.pos.Y-q.pos.Y, p.pos.Z-q.pos.Z
	return dx*dx + dy*dy + dz*dz
}

type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                      { return len(p) }
func (p points) Pivot(d kdtree.Dim) int        { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.points[i].pos.X < p.points[j].pos.X
	case 1:
		return p.points[i].pos.Y < p.points[j].pos.Y
	default:
		return p.points[i].pos.Z < p.points[j].pos.Z
	}
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Index is an immutable spatial index over a point cloud. The ids returned
// by queries are positions in the slice given to NewIndex.
type Index struct {
	tree *kdtree.Tree
	n    int
}

func NewIndex(pts []r3.Vector) (ix *Index) {
	ix = &Index{n: len(pts)}
	if len(pts) == 0 {
		return
	}
	ps := make(points, len(pts))
	for i, p := range pts {
		ps[i] = point{pos: p, id: i}
	}
	ix.tree = kdtree.New(ps, true)
	return
}

func (ix *Index) Len() int { return ix.n }

// Within returns the ids of all points within radius r of q, ascending.
func (ix *Index) Within(r float64, q r3.Vector) (ids []int) {
	if ix.tree == nil {
		return
	}
	keep := kdtree.NewDistKeeper(r * r)
	ix.tree.NearestSet(keep, point{pos: q})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		ids = append(ids, c.Comparable.(point).id)
	}
	sort.Ints(ids)
	return
}

// Nearest returns the id of the point closest to q and the squared distance.
// id is -1 for an empty index.
func (ix *Index) Nearest(q r3.Vector) (id int, distSq float64) {
	if ix.tree == nil {
		return -1, 0
	}
	got, d := ix.tree.Nearest(point{pos: q})
	return got.(point).id, d
}

// KNearest returns the ids of the k points closest to q, ascending by id.
func (ix *Index) KNearest(q r3.Vector, k int) (ids []int) {
	if ix.tree == nil || k <= 0 {
		return
	}
	keep := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keep, point{pos: q})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		ids = append(ids, c.Comparable.(point).id)
	}
	sort.Ints(ids)
	return
}
