package curve

import (
	"testing"

	"github.com/achilleasa/hairbvh/types"
)

// fixedRand always returns 0, picking the first curve in a range as every
// candidate -- enough to exercise UnalignedBounds deterministically without
// depending on the rng package's sequence.
type fixedRand struct{ n int }

func (f *fixedRand) Intn(n int) int { return f.n % n }

func TestAlignedBoundsUnionsCurves(t *testing.T) {
	buf := NewBuffer(2, 3)
	buf.Append(New(types.XYZW(0, 0, 0, 0.1), types.XYZW(1, 0, 0, 0.1), types.XYZW(2, 0, 0, 0.1), types.XYZW(3, 0, 0, 0.1), 0, 0))
	buf.Append(New(types.XYZW(-5, 0, 0, 0.1), types.XYZW(-4, 0, 0, 0.1), types.XYZW(-3, 0, 0, 0.1), types.XYZW(-2, 0, 0, 0.1), 0, 1))

	box := AlignedBounds(buf, 0, 2)
	if box.Lower[0] > -5.1 || box.Upper[0] < 3.1 {
		t.Fatalf("expected union to span both curves, got [%v,%v)", box.Lower, box.Upper)
	}
	if box.HalfArea <= 0 {
		t.Fatalf("expected positive accumulated half-area, got %v", box.HalfArea)
	}
}

func TestBBoxExtendAccumulatesHalfArea(t *testing.T) {
	b := EmptyBBox()
	if !b.Empty() {
		t.Fatalf("expected a freshly constructed box to be empty")
	}

	b.Extend(types.XYZ(0, 0, 0), types.XYZ(1, 1, 1))
	firstArea := b.HalfArea
	b.Extend(types.XYZ(5, 5, 5), types.XYZ(6, 6, 6))
	if b.HalfArea <= firstArea {
		t.Fatalf("expected HalfArea to accumulate across Extend calls, got %v then %v", firstArea, b.HalfArea)
	}
	if b.Lower != types.XYZ(0, 0, 0) || b.Upper != types.XYZ(6, 6, 6) {
		t.Fatalf("expected geometric extent to grow to the union, got [%v,%v)", b.Lower, b.Upper)
	}
}

func TestBBoxContains(t *testing.T) {
	outer := BBox{Lower: types.XYZ(0, 0, 0), Upper: types.XYZ(10, 10, 10)}
	inner := BBox{Lower: types.XYZ(1, 1, 1), Upper: types.XYZ(2, 2, 2)}
	outside := BBox{Lower: types.XYZ(-1, 0, 0), Upper: types.XYZ(5, 5, 5)}

	if !outer.Contains(inner, 1e-6) {
		t.Fatalf("expected outer to contain inner")
	}
	if outer.Contains(outside, 1e-6) {
		t.Fatalf("expected outer to not contain a box straddling its boundary")
	}
}

func TestUnalignedBoundsNonEmptyForSingleCurve(t *testing.T) {
	buf := NewBuffer(1, 3)
	buf.Append(New(types.XYZW(0, 0, 0, 0.1), types.XYZW(1, 0, 0, 0.1), types.XYZW(2, 0, 0, 0.1), types.XYZW(3, 0, 0, 0.1), 0, 0))

	naabb := UnalignedBounds(buf, 0, 1, &fixedRand{n: 0})
	if naabb.Box.Empty() {
		t.Fatalf("expected a non-empty oriented box for a single curve")
	}
}

func TestUnalignedBoundsEmptyRange(t *testing.T) {
	buf := NewBuffer(1, 3)
	buf.Append(testCurve(0))

	naabb := UnalignedBounds(buf, 0, 0, &fixedRand{n: 0})
	if !naabb.Box.Empty() {
		t.Fatalf("expected an empty range to produce an empty box")
	}
	if naabb.Frame != types.Identity {
		t.Fatalf("expected an empty range to fall back to the identity frame")
	}
}
