// Package arena provides the default in-memory implementation of the BVH
// collaborator the builder writes into: growable slices of nodes and leaf
// primitive blocks, with NodeRef as a tagged 64-bit word. This is a
// reference/test default, not the production pointer-packing scheme a real
// downstream renderer would use.
package arena

import (
	"fmt"

	"github.com/achilleasa/hairbvh/bvh"
	"github.com/achilleasa/hairbvh/curve"
)

// leafTag distinguishes a leaf reference from an inner-node reference in
// the high bit of a bvh.NodeRef; unalignedTag (the next bit) marks an
// unaligned inner node; the remaining bits index into the corresponding
// slice.
const leafTag = uint64(1) << 63
const unalignedTag = uint64(1) << 62

// AlignedNode is an inner node whose up to N children each carry a plain
// axis-aligned box.
type AlignedNode struct {
	Boxes    []curve.BBox
	Children []bvh.NodeRef
}

// UnalignedNode is an inner node whose up to N children each carry their
// own oriented box.
type UnalignedNode struct {
	Boxes    []curve.NAABB
	Children []bvh.NodeRef
}

// LeafBlock is a contiguous run of curves referenced by a single leaf.
type LeafBlock struct {
	Curves []curve.Curve
}

// Arena is the concrete, single-writer-per-thread-index default. ThreadIndex
// is accepted on every allocating call (so parallel subtree builds would
// each use a distinct Arena or a thread-safe variant) but unused here: this
// implementation demonstrates the shape of the interface, not a concurrent
// allocator.
type Arena struct {
	alignedNodes   []AlignedNode
	unalignedNodes []UnalignedNode
	leaves         []LeafBlock

	Root        bvh.NodeRef
	Bounds      curve.BBox
	NumVertices int
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

func (a *Arena) Init(capacityHint int) {
	if capacityHint < 0 {
		capacityHint = 0
	}
	a.alignedNodes = make([]AlignedNode, 0, capacityHint)
	a.unalignedNodes = make([]UnalignedNode, 0, capacityHint)
	a.leaves = make([]LeafBlock, 0, capacityHint)
}

func (a *Arena) AllocPrimitiveBlock(threadIndex, n int) int {
	a.leaves = append(a.leaves, LeafBlock{Curves: make([]curve.Curve, n)})
	return len(a.leaves) - 1
}

func (a *Arena) SetPrimitive(block, slot int, c curve.Curve) {
	a.leaves[block].Curves[slot] = c
}

func (a *Arena) AllocAlignedNode(threadIndex int) int {
	a.alignedNodes = append(a.alignedNodes, AlignedNode{})
	return len(a.alignedNodes) - 1
}

func (a *Arena) AllocUnalignedNode(threadIndex int) int {
	a.unalignedNodes = append(a.unalignedNodes, UnalignedNode{})
	return len(a.unalignedNodes) - 1
}

func (a *Arena) SetAlignedChild(node, slot int, box curve.BBox, child bvh.NodeRef) {
	n := &a.alignedNodes[node]
	grow(&n.Boxes, slot+1)
	grow(&n.Children, slot+1)
	n.Boxes[slot] = box
	n.Children[slot] = child
}

func (a *Arena) SetUnalignedChild(node, slot int, naabb curve.NAABB, child bvh.NodeRef) {
	n := &a.unalignedNodes[node]
	grow(&n.Boxes, slot+1)
	grow(&n.Children, slot+1)
	n.Boxes[slot] = naabb
	n.Children[slot] = child
}

func (a *Arena) EncodeLeaf(block, n int) bvh.NodeRef {
	return bvh.NodeRef(leafTag | uint64(block))
}

func (a *Arena) EncodeNode(node int, aligned bool) bvh.NodeRef {
	if aligned {
		return bvh.NodeRef(uint64(node))
	}
	return bvh.NodeRef(unalignedTag | uint64(node))
}

// IsLeaf, IsUnaligned, Index decode a NodeRef produced by this Arena.
func IsLeaf(ref bvh.NodeRef) bool      { return uint64(ref)&leafTag != 0 }
func IsUnaligned(ref bvh.NodeRef) bool { return !IsLeaf(ref) && uint64(ref)&unalignedTag != 0 }
func Index(ref bvh.NodeRef) int {
	return int(uint64(ref) &^ (leafTag | unalignedTag))
}

// AlignedNodeAt, UnalignedNodeAt, LeafAt fetch the decoded node/leaf for ref,
// panicking if ref does not refer to that kind -- callers (tests, the CLI
// driver) are expected to branch on IsLeaf/IsUnaligned first.
func (a *Arena) AlignedNodeAt(ref bvh.NodeRef) AlignedNode {
	if IsLeaf(ref) || IsUnaligned(ref) {
		panic(fmt.Sprintf("arena: ref %x is not an aligned node", uint64(ref)))
	}
	return a.alignedNodes[Index(ref)]
}

func (a *Arena) UnalignedNodeAt(ref bvh.NodeRef) UnalignedNode {
	if IsLeaf(ref) || !IsUnaligned(ref) {
		panic(fmt.Sprintf("arena: ref %x is not an unaligned node", uint64(ref)))
	}
	return a.unalignedNodes[Index(ref)]
}

func (a *Arena) LeafAt(ref bvh.NodeRef) LeafBlock {
	if !IsLeaf(ref) {
		panic(fmt.Sprintf("arena: ref %x is not a leaf", uint64(ref)))
	}
	return a.leaves[Index(ref)]
}

func grow[T any](s *[]T, n int) {
	for len(*s) < n {
		var zero T
		*s = append(*s, zero)
	}
}
