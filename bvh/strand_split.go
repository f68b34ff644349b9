package bvh

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// findStrandSplit bipartitions by similarity to two representative tangent
// directions. axis0 is the first curve's tangent; axis1 is the tangent of
// whichever curve in the range is most orthogonal to axis0 (the one
// minimising |cos|). If every other curve has a degenerate (near-zero)
// tangent, axis1 is synthesized from axis0's own orthonormal frame rather
// than left undefined.
func findStrandSplit(ctx *Context, buf *curve.Buffer, begin, end int) Split {
	if end-begin < 2 {
		return infeasible(SplitStrand)
	}

	axis0Raw := buf.Get(begin).Tangent()
	if axis0Raw.Len() < floatCmpEpsilon {
		return infeasible(SplitStrand)
	}
	axis0 := axis0Raw.Normalize()

	minAbsCos := float32(2) // > any valid |cos|
	var axis1 types.Vec3
	found := false
	for i := begin + 1; i < end; i++ {
		t := buf.Get(i).Tangent()
		if t.Len() < floatCmpEpsilon {
			continue
		}
		tn := t.Normalize()
		absCos := abs32(tn.Dot(axis0))
		if absCos < minAbsCos {
			minAbsCos = absCos
			axis1 = tn
			found = true
		}
	}
	if !found {
		axis1 = types.FrameFromZ(axis0).VX
	}

	lFrame := types.FrameFromZ(axis0)
	rFrame := types.FrameFromZ(axis1)
	lBox := curve.EmptyBBox()
	rBox := curve.EmptyBBox()
	lCount, rCount := 0, 0

	for i := begin; i < end; i++ {
		c := buf.Get(i)
		left := strandGoesLeft(c, axis0, axis1)
		if left {
			lo, hi := c.Bounds(lFrame)
			lBox.Extend(lo, hi)
			lCount++
		} else {
			lo, hi := c.Bounds(rFrame)
			rBox.Extend(lo, hi)
			rCount++
		}
	}

	if lCount == 0 || rCount == 0 {
		return infeasible(SplitStrand)
	}

	sah := lBox.HalfArea*ceilDiv(lCount, ctx.Config.N) + rBox.HalfArea*ceilDiv(rCount, ctx.Config.N)
	return Split{
		Kind:        SplitStrand,
		Dim:         0,
		ModifiedSAH: sah,
		Num0:        lCount,
		Num1:        rCount,
		Axis0:       axis0,
		Axis1:       axis1,
	}
}

func strandGoesLeft(c curve.Curve, axis0, axis1 types.Vec3) bool {
	t := c.Tangent()
	if t.Len() < floatCmpEpsilon {
		return true
	}
	tn := t.Normalize()
	w0 := abs32(tn.Dot(axis0))
	w1 := abs32(tn.Dot(axis1))
	return w0 >= w1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// partitionStrandSplit runs a two-pointer swap pass classifying each curve
// by strandGoesLeft, the same predicate findStrandSplit used to count
// Num0/Num1.
func partitionStrandSplit(buf *curve.Buffer, begin, end int, split Split) int {
	left := begin
	right := end
	for left < right {
		c := buf.Get(left)
		if strandGoesLeft(c, split.Axis0, split.Axis1) {
			left++
			continue
		}
		right--
		buf.Swap(left, right)
	}
	return left
}
