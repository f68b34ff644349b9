package arena

import (
	"testing"

	"github.com/achilleasa/hairbvh/bvh"
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

func testCurve() curve.Curve {
	return curve.New(
		types.XYZW(0, 0, 0, 0.1),
		types.XYZW(1, 0, 0, 0.1),
		types.XYZW(2, 0, 0, 0.1),
		types.XYZW(3, 0, 0, 0.1),
		0, 0,
	)
}

func TestPrimitiveBlockRoundTrip(t *testing.T) {
	a := New()
	a.Init(4)

	block := a.AllocPrimitiveBlock(0, 2)
	c0, c1 := testCurve(), testCurve()
	a.SetPrimitive(block, 0, c0)
	a.SetPrimitive(block, 1, c1)

	ref := a.EncodeLeaf(block, 2)
	if !IsLeaf(ref) {
		t.Fatalf("expected EncodeLeaf to produce a leaf reference")
	}
	if IsUnaligned(ref) {
		t.Fatalf("a leaf reference must never also read as unaligned")
	}

	leaf := a.LeafAt(ref)
	if len(leaf.Curves) != 2 {
		t.Fatalf("expected 2 curves in the leaf, got %d", len(leaf.Curves))
	}
}

func TestAlignedNodeRoundTrip(t *testing.T) {
	a := New()
	a.Init(4)

	node := a.AllocAlignedNode(0)
	box := curve.AlignedBounds(bufferOf(testCurve()), 0, 1)
	childRef := a.EncodeLeaf(a.AllocPrimitiveBlock(0, 1), 1)
	a.SetAlignedChild(node, 0, box, childRef)
	a.SetAlignedChild(node, 2, box, childRef) // sparse slot: exercises grow()

	ref := a.EncodeNode(node, true)
	if IsLeaf(ref) || IsUnaligned(ref) {
		t.Fatalf("expected an aligned inner-node reference")
	}

	decoded := a.AlignedNodeAt(ref)
	if len(decoded.Children) != 3 {
		t.Fatalf("expected grow() to have padded up to slot 2, got len %d", len(decoded.Children))
	}
	if decoded.Children[0] != childRef || decoded.Children[2] != childRef {
		t.Fatalf("expected slots 0 and 2 to hold the set child reference")
	}
	if decoded.Children[1] != bvh.NodeRef(0) {
		t.Fatalf("expected the unset slot 1 to be left zero-valued")
	}
}

func TestUnalignedNodeRoundTrip(t *testing.T) {
	a := New()
	a.Init(4)

	node := a.AllocUnalignedNode(0)
	naabb := curve.NAABB{Frame: types.Identity}
	childRef := a.EncodeLeaf(a.AllocPrimitiveBlock(0, 1), 1)
	a.SetUnalignedChild(node, 0, naabb, childRef)

	ref := a.EncodeNode(node, false)
	if !IsUnaligned(ref) {
		t.Fatalf("expected EncodeNode(aligned=false) to set the unaligned tag")
	}

	decoded := a.UnalignedNodeAt(ref)
	if decoded.Children[0] != childRef {
		t.Fatalf("expected the stored child reference to round-trip")
	}
}

func TestAlignedNodeAtPanicsOnLeafRef(t *testing.T) {
	a := New()
	a.Init(4)
	ref := a.EncodeLeaf(a.AllocPrimitiveBlock(0, 1), 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected AlignedNodeAt to panic on a leaf reference")
		}
	}()
	a.AlignedNodeAt(ref)
}

func TestUnalignedNodeAtPanicsOnAlignedRef(t *testing.T) {
	a := New()
	a.Init(4)
	node := a.AllocAlignedNode(0)
	ref := a.EncodeNode(node, true)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected UnalignedNodeAt to panic on an aligned-node reference")
		}
	}()
	a.UnalignedNodeAt(ref)
}

func TestLeafAtPanicsOnNodeRef(t *testing.T) {
	a := New()
	a.Init(4)
	node := a.AllocAlignedNode(0)
	ref := a.EncodeNode(node, true)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected LeafAt to panic on a non-leaf reference")
		}
	}()
	a.LeafAt(ref)
}

func bufferOf(c curve.Curve) *curve.Buffer {
	buf := curve.NewBuffer(0, 3)
	buf.Append(c)
	return buf
}
