package bvh

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// findObjectSplit implements classic binned-SAH centroid splitting in the
// given frame. Shared between the aligned variant (frame = identity) and
// the unaligned variant (frame = a candidate from UnalignedBounds) -- one
// procedure parameterized by space.
func findObjectSplit(ctx *Context, buf *curve.Buffer, begin, end int, frame types.Frame, kind SplitKind) Split {
	n := end - begin
	if n < 2 {
		return infeasible(kind)
	}

	bins := ctx.Config.Bins

	cmin, cmax := centroidBounds(buf, begin, end, frame)
	diag := cmax.Sub(cmin)

	var ofs, scale [3]float32
	for axis := 0; axis < 3; axis++ {
		ofs[axis] = cmin[axis]
		if diag[axis] > floatCmpEpsilon {
			scale[axis] = float32(bins) * 0.99 / diag[axis]
		}
	}

	binBox := make([][]curve.BBox, 3)
	binCount := make([][]int, 3)
	for axis := 0; axis < 3; axis++ {
		binBox[axis] = make([]curve.BBox, bins)
		for i := range binBox[axis] {
			binBox[axis][i] = curve.EmptyBBox()
		}
		binCount[axis] = make([]int, bins)
	}

	for i := begin; i < end; i++ {
		c := buf.Get(i)
		center := c.Center(frame)
		lo, hi := c.Bounds(frame)
		for axis := 0; axis < 3; axis++ {
			if scale[axis] == 0 {
				continue
			}
			b := int((center[axis] - ofs[axis]) * scale[axis])
			if b < 0 {
				b = 0
			} else if b >= bins {
				b = bins - 1
			}
			binBox[axis][b].Extend(lo, hi)
			binCount[axis][b]++
		}
	}

	best := infeasible(kind)
	for axis := 0; axis < 3; axis++ {
		if scale[axis] == 0 {
			continue
		}

		lBounds := make([]curve.BBox, bins+1)
		rBounds := make([]curve.BBox, bins+1)
		lCount := make([]int, bins+1)
		rCount := make([]int, bins+1)
		lBounds[0] = curve.EmptyBBox()
		rBounds[bins] = curve.EmptyBBox()

		for i := 0; i < bins; i++ {
			lBounds[i+1] = lBounds[i]
			lBounds[i+1].Union(binBox[axis][i])
			lCount[i+1] = lCount[i] + binCount[axis][i]
		}
		for i := bins - 1; i >= 0; i-- {
			rBounds[i] = rBounds[i+1]
			rBounds[i].Union(binBox[axis][i])
			rCount[i] = rCount[i+1] + binCount[axis][i]
		}

		for i := 1; i < bins; i++ {
			l0, l1 := lCount[i], rCount[i]
			if l0 == 0 || l1 == 0 {
				continue
			}
			sah := lBounds[i].HalfArea*ceilDiv(l0, ctx.Config.N) + rBounds[i].HalfArea*ceilDiv(l1, ctx.Config.N)
			if sah <= best.ModifiedSAH {
				best = Split{
					Kind:        kind,
					Dim:         axis,
					ModifiedSAH: sah,
					Num0:        l0,
					Num1:        l1,
					Frame:       frame,
					Ofs:         ofs[axis],
					Scale:       scale[axis],
					BestBin:     i,
				}
			}
		}
	}

	return best
}

func ceilDiv(a, b int) float32 {
	return float32((a + b - 1) / b)
}

func centroidBounds(buf *curve.Buffer, begin, end int, frame types.Frame) (lower, upper types.Vec3) {
	first := true
	for i := begin; i < end; i++ {
		c := buf.Get(i).Center(frame)
		if first {
			lower, upper = c, c
			first = false
			continue
		}
		lower = types.MinVec3(lower, c)
		upper = types.MaxVec3(upper, c)
	}
	return lower, upper
}

// binIndex re-derives the bin a curve's centroid falls in along split.Dim,
// using the same ofs/scale the find step computed -- the partition step
// needs this to decide which side a curve belongs to without recomputing
// histograms.
func binIndex(c curve.Curve, frame types.Frame, dim int, ofs, scale float32, bins int) int {
	center := c.Center(frame)
	b := int((center[dim] - ofs) * scale)
	if b < 0 {
		b = 0
	} else if b >= bins {
		b = bins - 1
	}
	return b
}

const floatCmpEpsilon = 1e-6

// partitionObjectSplit runs an in-place two-pointer partition: a curve
// belongs to the left side iff its centroid's bin (recomputed from
// split.Ofs/Scale) is less than split.BestBin.
func partitionObjectSplit(buf *curve.Buffer, begin, end int, frame types.Frame, split Split, bins int) int {
	left := begin
	right := end
	for left < right {
		c := buf.Get(left)
		b := binIndex(c, frame, split.Dim, split.Ofs, split.Scale, bins)
		if b < split.BestBin {
			left++
			continue
		}
		right--
		buf.Swap(left, right)
	}
	return left
}
