package trimesh

import (
	"fmt"
	"sort"

	"github.com/notargets/surfmesh/geometry"
)

/*
Topology caches. Each is computed lazily from the face list and kept until
the faces are replaced. Vertex-face adjacency is the primitive the others
build on; across-edge detection intersects the adjacency lists of the two
edge endpoints, the same scheme DG connectivity uses with a -1 boundary
sentinel.
*/

// VertexNeighbors returns, per vertex, the vertices sharing at least one
// face with it. Order is insertion order: faces are scanned in index order
// and within a face the two other vertices follow the traversal after v.
func (m *TriMesh) VertexNeighbors() (nbrs [][]int32, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.vNeighbors != nil {
		return m.vNeighbors, nil
	}
	var (
		n    = len(m.verts)
		seen = make([]map[int32]struct{}, n)
	)
	nbrs = make([][]int32, n)
	for i := range seen {
		seen[i] = make(map[int32]struct{})
	}
	add := func(v, w int32) {
		if _, ok := seen[v][w]; ok {
			return
		}
		seen[v][w] = struct{}{}
		nbrs[v] = append(nbrs[v], w)
	}
	for _, f := range m.faces {
		for i := 0; i < 3; i++ {
			v := f[i]
			add(v, f[(i+1)%3])
			add(v, f[(i+2)%3])
		}
	}
	m.vNeighbors = nbrs
	return
}

// AdjacentFaces returns, per vertex, the indices of the faces containing
// it, ascending.
func (m *TriMesh) AdjacentFaces() (adj [][]int32, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.vAdjFaces != nil {
		return m.vAdjFaces, nil
	}
	adj = make([][]int32, len(m.verts))
	for fi, f := range m.faces {
		for _, v := range f {
			adj[v] = append(adj[v], int32(fi))
		}
	}
	m.vAdjFaces = adj
	return
}

// AcrossEdge returns, for each face and each local edge i (the edge
// opposite vertex i), the index of the face sharing that edge, or -1 on
// the boundary. More than one candidate neighbor marks the mesh invalid
// with ErrNonManifold.
func (m *TriMesh) AcrossEdge() (across [][3]int32, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.acrossEdge != nil {
		return m.acrossEdge, nil
	}
	adj, err := m.AdjacentFaces()
	if err != nil {
		return
	}
	across = make([][3]int32, len(m.faces))
	for fi, f := range m.faces {
		for i := 0; i < 3; i++ {
			a, b := f.OppositeEdge(i)
			neighbor := int32(-1)
			// Intersect the two vertex-face lists, excluding this face
			for _, fa := range adj[a] {
				if fa == int32(fi) {
					continue
				}
				for _, fb := range adj[b] {
					if fa != fb {
						continue
					}
					if neighbor >= 0 && neighbor != fa {
						m.invalid = true
						err = fmt.Errorf("%w: edge (%d,%d) shared by faces %d, %d and %d",
							ErrNonManifold, a, b, fi, neighbor, fa)
						return nil, err
					}
					neighbor = fa
				}
			}
			across[fi][i] = neighbor
		}
	}
	m.acrossEdge = across
	return
}

// BoundaryEdges returns every directed edge whose reverse occurs in no
// face, as unordered pairs {a,b} with a < b, ascending lexicographically.
// A directed edge occurring in two faces means inconsistent orientation or
// a non-manifold fan and marks the mesh invalid.
func (m *TriMesh) BoundaryEdges() (edges [][2]int32, err error) {
	if err = m.check(); err != nil {
		return
	}
	if m.boundaryDone {
		return m.boundary, nil
	}
	directed := make(map[geometry.EdgeKey]int32, 3*len(m.faces))
	for fi, f := range m.faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			ek := geometry.NewDirectedEdgeKey(a, b)
			if prev, ok := directed[ek]; ok {
				m.invalid = true
				err = fmt.Errorf("%w: directed edge (%d,%d) in faces %d and %d",
					ErrNonManifold, a, b, prev, fi)
				return nil, err
			}
			directed[ek] = int32(fi)
		}
	}
	for ek := range directed {
		if _, ok := directed[ek.Reversed()]; ok {
			continue
		}
		a, b := ek.Vertices()
		// Directed keys unpack in traversal order; report sorted pairs
		if a > b {
			a, b = b, a
		}
		edges = append(edges, [2]int32{a, b})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	m.boundary = edges
	m.boundaryDone = true
	return
}
