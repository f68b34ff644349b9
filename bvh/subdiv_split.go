package bvh

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// findSubdivSplit runs the same binned SAH sweep as findObjectSplit, except
// every curve in the range contributes two histogram entries -- its two
// halves under a single de Casteljau subdivision at t=0.5 -- so thin,
// long segments that straddle a bin boundary are represented by bounds
// tighter than the whole curve's.
func findSubdivSplit(ctx *Context, buf *curve.Buffer, begin, end int, frame types.Frame, kind SplitKind) Split {
	n := end - begin
	if n < 1 {
		return infeasible(kind)
	}

	bins := ctx.Config.Bins

	var cmin, cmax types.Vec3
	first := true
	halves := make([]curve.Curve, 0, 2*n)
	for i := begin; i < end; i++ {
		var l, r curve.Curve
		buf.Get(i).Subdivide(&l, &r)
		halves = append(halves, l, r)
	}
	for _, h := range halves {
		c := h.Center(frame)
		if first {
			cmin, cmax = c, c
			first = false
			continue
		}
		cmin = types.MinVec3(cmin, c)
		cmax = types.MaxVec3(cmax, c)
	}
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

	for _, h := range halves {
		center := h.Center(frame)
		lo, hi := h.Bounds(frame)
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
					LBox:        lBounds[i],
					RBox:        rBounds[i],
				}
			}
		}
	}

	return best
}

// partitionSubdivSplit runs a two-step partition: first every curve in
// [begin,end) is materialised into its two de Casteljau halves -- the left
// half overwrites the curve in place, the right halves are written from end
// onward (overwriting whatever lies past end, appending past the buffer's
// length) -- growing the range to 2*(end-begin)+begin; then the resulting range is
// partitioned exactly as in partitionObjectSplit, using the bin mapping
// computed over those same halves.
func partitionSubdivSplit(buf *curve.Buffer, begin, end int, frame types.Frame, split Split, bins int) (newEnd, mid int) {
	n := end - begin
	rightAppend := make([]curve.Curve, 0, n)
	for i := 0; i < n; i++ {
		idx := begin + i
		var l, r curve.Curve
		buf.Get(idx).Subdivide(&l, &r)
		buf.Set(idx, l)
		rightAppend = append(rightAppend, r)
	}
	for i, r := range rightAppend {
		if idx := end + i; idx < buf.Len() {
			buf.Set(idx, r)
		} else {
			buf.Append(r)
		}
	}
	newEnd = begin + 2*n

	left := begin
	right := newEnd
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
	return newEnd, left
}
