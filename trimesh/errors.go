package trimesh

import "errors"

var (
	// ErrOutOfDomain flags a vertex outside the periodic bounding box.
	ErrOutOfDomain = errors.New("vertex outside periodic domain")

	// ErrNonManifold flags topology with an edge shared by more than two
	// faces. The mesh is marked invalid and further topology queries fail.
	ErrNonManifold = errors.New("non-manifold topology")

	// ErrMeshInvalid is returned by operations on a mesh that previously
	// hit a fatal invariant violation.
	ErrMeshInvalid = errors.New("mesh marked invalid")

	// ErrNoBBox flags periodic operations before SetBBox.
	ErrNoBBox = errors.New("periodic bounding box not set")
)
