package bvh

import "github.com/achilleasa/hairbvh/curve"

// NodeRef is an opaque reference into whatever arena implementation backs
// a build -- produced only by Arena.EncodeLeaf/EncodeNode, never
// constructed directly by the recursive builder. NullRef marks the empty
// tree.
type NodeRef uint64

// NullRef is the reference returned for an empty build.
const NullRef NodeRef = ^NodeRef(0)

// Arena is the external allocator the recursive builder writes nodes and
// leaves into. The reference implementation is arena.Arena -- a minimal
// in-memory default, not a production pointer-packing scheme.
type Arena interface {
	// Init sizes the arena ahead of a build, typically to a small
	// multiple of the primitive count.
	Init(capacityHint int)

	// AllocPrimitiveBlock reserves space for n curves for a leaf and
	// returns an opaque block index; threadIndex is accepted (so
	// concurrent subtree builds can use distinct arenas/indices) but
	// unused by the reference implementation.
	AllocPrimitiveBlock(threadIndex, n int) int

	// SetPrimitive stores curve c at slot within the block returned by
	// AllocPrimitiveBlock.
	SetPrimitive(block, slot int, c curve.Curve)

	// AllocAlignedNode and AllocUnalignedNode reserve one inner node of
	// the respective kind and return its index.
	AllocAlignedNode(threadIndex int) int
	AllocUnalignedNode(threadIndex int) int

	// SetAlignedChild and SetUnalignedChild populate child slot i
	// (0 <= i < N) of a previously allocated node.
	SetAlignedChild(node, slot int, box curve.BBox, child NodeRef)
	SetUnalignedChild(node, slot int, naabb curve.NAABB, child NodeRef)

	// EncodeLeaf and EncodeNode produce the tagged reference a parent
	// stores for a child.
	EncodeLeaf(block, n int) NodeRef
	EncodeNode(node int, aligned bool) NodeRef
}
