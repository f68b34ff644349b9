package curve

import (
	"math"

	"github.com/achilleasa/hairbvh/types"
)

// Rand is the minimal deterministic-PRNG surface the bounds engine needs;
// satisfied by rng.Source. Declared locally (rather than imported) so this
// package does not depend on the concrete generator -- only bvh.Context
// needs to know which one is wired in.
type Rand interface {
	Intn(n int) int
}

// BBox is an axis-aligned box expressed in some (possibly non-world)
// frame, carrying not just its geometric extent but the accumulated
// half-surface-area of the curves that were folded into it. That sum, not
// the box's own geometric area, is what the SAH cost formulas consume: a
// single box around a bundle of thin, near-parallel hair segments wildly
// underestimates their combined surface, so the cost model instead sums
// each curve's own local half-area.
type BBox struct {
	Lower, Upper types.Vec3
	HalfArea     float32
}

// EmptyBBox returns the additive identity for Extend: a box that every
// real extent strictly tightens.
func EmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Lower: types.XYZ(inf, inf, inf),
		Upper: types.XYZ(-inf, -inf, -inf),
	}
}

// Empty reports whether the box has never been extended.
func (b BBox) Empty() bool {
	return b.Upper[0] < b.Lower[0]
}

// Extend folds a single curve's local extent (as returned by Curve.Bounds)
// into the box: the geometric union grows, and the extent's own half-area
// is added to the accumulator.
func (b *BBox) Extend(lo, hi types.Vec3) {
	if b.Empty() {
		b.Lower, b.Upper = lo, hi
	} else {
		b.Lower = types.MinVec3(b.Lower, lo)
		b.Upper = types.MaxVec3(b.Upper, hi)
	}
	b.HalfArea += halfAreaOfExtent(lo, hi)
}

// Union merges another box's geometric extent and accumulated half-area
// into this one -- used when the subdivision-object splitter reconstructs
// child bounds from per-bin accumulators without a second pass.
func (b *BBox) Union(o BBox) {
	if o.Empty() {
		return
	}
	if b.Empty() {
		*b = o
		return
	}
	b.Lower = types.MinVec3(b.Lower, o.Lower)
	b.Upper = types.MaxVec3(b.Upper, o.Upper)
	b.HalfArea += o.HalfArea
}

// Contains reports whether o fits within b, within epsilon -- the
// geometric-containment invariant (property 2) checked between a node and
// each of its children.
func (b BBox) Contains(o BBox, epsilon float32) bool {
	if o.Empty() {
		return true
	}
	for i := 0; i < 3; i++ {
		if o.Lower[i] < b.Lower[i]-epsilon || o.Upper[i] > b.Upper[i]+epsilon {
			return false
		}
	}
	return true
}

func halfAreaOfExtent(lo, hi types.Vec3) float32 {
	d := hi.Sub(lo)
	if d[0] < 0 || d[1] < 0 || d[2] < 0 {
		return 0
	}
	return d[0]*d[1] + d[1]*d[2] + d[2]*d[0]
}

// NAABB is an oriented bounding box: a frame paired with the axis-aligned
// box that bounds curves once expressed in that frame's basis.
type NAABB struct {
	Frame types.Frame
	Box   BBox
}

// AlignedBounds computes the world-frame union of the control-hull boxes
// of curves[begin:end].
func AlignedBounds(buf *Buffer, begin, end int) BBox {
	return boundsInFrame(buf, begin, end, types.Identity)
}

// AlignedBoundsInFrame computes the same union but with every curve first
// transformed by space, used e.g. to measure a candidate child's bounds in
// its parent's oriented frame.
func AlignedBoundsInFrame(buf *Buffer, begin, end int, space types.Frame) NAABB {
	return NAABB{Frame: space, Box: boundsInFrame(buf, begin, end, space)}
}

func boundsInFrame(buf *Buffer, begin, end int, space types.Frame) BBox {
	box := EmptyBBox()
	for i := begin; i < end; i++ {
		lo, hi := buf.Get(i).Bounds(space)
		box.Extend(lo, hi)
	}
	return box
}

// UnalignedBounds runs the oriented-bounds search: four uniformly random
// curves from the range each propose a frame (their own tangent as z), and
// the frame producing the smallest accumulated half-area wins. Ties favour
// the later candidate (<=). An empty range returns an empty oriented box in
// the identity frame.
func UnalignedBounds(buf *Buffer, begin, end int, r Rand) NAABB {
	if end <= begin {
		return NAABB{Frame: types.Identity, Box: EmptyBBox()}
	}

	n := end - begin
	best := NAABB{Frame: types.Identity, Box: EmptyBBox()}
	bestArea := float32(math.Inf(1))

	for k := 0; k < 4; k++ {
		idx := begin + r.Intn(n)
		c := buf.Get(idx)

		tangent := c.Tangent()
		var frame types.Frame
		if tangent.Len() < floatCmpEpsilon {
			frame = types.Identity
		} else {
			frame = types.FrameFromZ(tangent.Normalize())
		}

		box := boundsInFrame(buf, begin, end, frame)
		if box.HalfArea <= bestArea {
			bestArea = box.HalfArea
			best = NAABB{Frame: frame, Box: box}
		}
	}

	return best
}
