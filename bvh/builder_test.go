package bvh

import (
	"testing"

	"github.com/achilleasa/hairbvh/curve"
)

// fakeLeaf/fakeAligned/fakeUnaligned mirror arena.Arena's shapes closely
// enough to exercise Build end-to-end without importing the arena package
// (which itself imports bvh, so a real import here would cycle).
type fakeLeaf struct {
	curves []curve.Curve
}

type fakeAligned struct {
	boxes    []curve.BBox
	children []NodeRef
}

type fakeUnaligned struct {
	boxes    []curve.NAABB
	children []NodeRef
}

type fakeArena struct {
	leaves    []fakeLeaf
	aligned   []fakeAligned
	unaligned []fakeUnaligned
}

const fakeLeafTag = uint64(1) << 63
const fakeUnalignedTag = uint64(1) << 62

func (a *fakeArena) Init(capacityHint int) {}

func (a *fakeArena) AllocPrimitiveBlock(threadIndex, n int) int {
	a.leaves = append(a.leaves, fakeLeaf{curves: make([]curve.Curve, n)})
	return len(a.leaves) - 1
}

func (a *fakeArena) SetPrimitive(block, slot int, c curve.Curve) {
	a.leaves[block].curves[slot] = c
}

func (a *fakeArena) AllocAlignedNode(threadIndex int) int {
	a.aligned = append(a.aligned, fakeAligned{})
	return len(a.aligned) - 1
}

func (a *fakeArena) AllocUnalignedNode(threadIndex int) int {
	a.unaligned = append(a.unaligned, fakeUnaligned{})
	return len(a.unaligned) - 1
}

func (a *fakeArena) SetAlignedChild(node, slot int, box curve.BBox, child NodeRef) {
	n := &a.aligned[node]
	for len(n.boxes) <= slot {
		n.boxes = append(n.boxes, curve.BBox{})
		n.children = append(n.children, NullRef)
	}
	n.boxes[slot] = box
	n.children[slot] = child
}

func (a *fakeArena) SetUnalignedChild(node, slot int, naabb curve.NAABB, child NodeRef) {
	n := &a.unaligned[node]
	for len(n.boxes) <= slot {
		n.boxes = append(n.boxes, curve.NAABB{})
		n.children = append(n.children, NullRef)
	}
	n.boxes[slot] = naabb
	n.children[slot] = child
}

func (a *fakeArena) EncodeLeaf(block, n int) NodeRef {
	return NodeRef(fakeLeafTag | uint64(block))
}

func (a *fakeArena) EncodeNode(node int, aligned bool) NodeRef {
	if aligned {
		return NodeRef(uint64(node))
	}
	return NodeRef(fakeUnalignedTag | uint64(node))
}

func (a *fakeArena) isLeaf(ref NodeRef) bool      { return uint64(ref)&fakeLeafTag != 0 }
func (a *fakeArena) isUnaligned(ref NodeRef) bool { return !a.isLeaf(ref) && uint64(ref)&fakeUnalignedTag != 0 }
func (a *fakeArena) index(ref NodeRef) int {
	return int(uint64(ref) &^ (fakeLeafTag | fakeUnalignedTag))
}

func (a *fakeArena) countLeafCurves(ref NodeRef) int {
	if ref == NullRef {
		return 0
	}
	if a.isLeaf(ref) {
		return len(a.leaves[a.index(ref)].curves)
	}
	total := 0
	if a.isUnaligned(ref) {
		for _, child := range a.unaligned[a.index(ref)].children {
			total += a.countLeafCurves(child)
		}
	} else {
		for _, child := range a.aligned[a.index(ref)].children {
			total += a.countLeafCurves(child)
		}
	}
	return total
}

func TestBuildEmptyBufferReturnsNullRef(t *testing.T) {
	ctx := newTestContext()
	buf := curve.NewBuffer(0, 3)
	ar := &fakeArena{}

	root := Build(ctx, buf, ar, 0)
	if root != NullRef {
		t.Fatalf("expected an empty input to build to NullRef, got %x", uint64(root))
	}
}

func TestBuildLeafForSmallInput(t *testing.T) {
	ctx := newTestContext()
	buf := lineOfCurves(1)
	ar := &fakeArena{}

	root := Build(ctx, buf, ar, 0)
	if !ar.isLeaf(root) {
		t.Fatalf("expected a single curve to build directly to a leaf")
	}
	leaf := ar.leaves[ar.index(root)]
	if len(leaf.curves) != 1 {
		t.Fatalf("expected the leaf to hold exactly 1 curve, got %d", len(leaf.curves))
	}
}

func TestBuildCoversEveryInputCurve(t *testing.T) {
	ctx := newTestContext()
	buf := lineOfCurves(37)
	totalBefore := buf.Len()
	ar := &fakeArena{}

	root := Build(ctx, buf, ar, 0)

	got := ar.countLeafCurves(root)
	if got != totalBefore {
		t.Fatalf("expected every input curve to land in exactly one leaf: got %d, want %d", got, totalBefore)
	}
}

func TestBuildRespectsMaxLeafBlocksWithOverflowWarning(t *testing.T) {
	ctx := newTestContext()
	ctx.Config.MinLeafSize = 100 // force everything into a single leaf
	ctx.Config.MaxLeafBlocks = 3
	buf := lineOfCurves(10)
	ar := &fakeArena{}

	root := Build(ctx, buf, ar, 0)
	if !ar.isLeaf(root) {
		t.Fatalf("expected a forced single leaf")
	}
	leaf := ar.leaves[ar.index(root)]
	if len(leaf.curves) != 3 {
		t.Fatalf("expected the leaf to be clamped to MaxLeafBlocks=3, got %d", len(leaf.curves))
	}
	if ctx.Stats.LeafOverflows != 1 {
		t.Fatalf("expected a recorded leaf overflow, got %d", ctx.Stats.LeafOverflows)
	}
}

func TestBuildIsDeterministicForAFixedSeed(t *testing.T) {
	buf1 := lineOfCurves(40)
	buf2 := lineOfCurves(40)

	ctx1 := NewContext(DefaultConfig(), 42)
	ctx2 := NewContext(DefaultConfig(), 42)
	ar1 := &fakeArena{}
	ar2 := &fakeArena{}

	root1 := Build(ctx1, buf1, ar1, 0)
	root2 := Build(ctx2, buf2, ar2, 0)

	if ctx1.Stats != ctx2.Stats {
		t.Fatalf("expected identical splitter statistics for the same seed and input, got %+v vs %+v", ctx1.Stats, ctx2.Stats)
	}
	if root1 != root2 {
		t.Fatalf("expected identical root references for the same seed and input")
	}
}
