package bvh

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// findSpatialSplit considers, for each axis of frame, a plane through the
// centroid of the range's geometric bounds; curves wholly on one side
// contribute there, straddlers are clipped via Curve.Split and contribute
// to both sides. Scored with the plain (non modified-SAH) product -- see
// DESIGN.md for why this splitter does not divide by the branching factor
// the way the binned splitters do.
func findSpatialSplit(ctx *Context, buf *curve.Buffer, begin, end int, frame types.Frame, kind SplitKind) Split {
	if end-begin < 2 {
		return infeasible(kind)
	}

	geom := curve.AlignedBoundsInFrame(buf, begin, end, frame)
	centroidLocal := geom.Box.Lower.Add(geom.Box.Upper).Mul(0.5)

	best := infeasible(kind)
	for axis := 0; axis < 3; axis++ {
		normal := frame.Axis(axis)
		plane := curve.Plane{Normal: normal, Offset: -centroidLocal[axis]}

		lBox, rBox := curve.EmptyBBox(), curve.EmptyBBox()
		lCount, rCount := 0, 0

		for i := begin; i < end; i++ {
			c := buf.Get(i)
			d0 := plane.SignedDistance(c.P0.Vec3())
			d3 := plane.SignedDistance(c.P3.Vec3())

			switch {
			case d0 >= 0 && d3 >= 0:
				lo, hi := c.Bounds(frame)
				lBox.Extend(lo, hi)
				lCount++
			case d0 < 0 && d3 < 0:
				lo, hi := c.Bounds(frame)
				rBox.Extend(lo, hi)
				rCount++
			default:
				var lft, rgt curve.Curve
				if c.Split(plane, &lft, &rgt) {
					lo, hi := lft.Bounds(frame)
					lBox.Extend(lo, hi)
					lCount++
					lo, hi = rgt.Bounds(frame)
					rBox.Extend(lo, hi)
					rCount++
				} else {
					lo, hi := c.Bounds(frame)
					lBox.Extend(lo, hi)
					lCount++
				}
			}
		}

		if lCount == 0 || rCount == 0 {
			continue
		}

		sah := lBox.HalfArea*float32(lCount) + rBox.HalfArea*float32(rCount)
		if sah <= best.ModifiedSAH {
			best = Split{
				Kind:        kind,
				Dim:         axis,
				ModifiedSAH: sah,
				Num0:        lCount,
				Num1:        rCount,
				Plane:       plane,
				LBox:        lBox,
				RBox:        rBox,
			}
		}
	}

	return best
}

// partitionSpatialSplit runs a single Lomuto-style forward pass.
// Positive-side curves (including splitter-failure
// fallbacks) are swapped to the front; straddlers are materialised in
// place (positive half overwrites the current slot, negative half is
// written at the range's current end -- overwriting whatever lies there, or
// appending past the buffer's length -- growing the range the loop is still
// scanning); negative-side
// curves are left where they sit. At the end [begin,left) is the positive
// side and [left,newEnd) the negative side.
func partitionSpatialSplit(buf *curve.Buffer, begin, end int, plane curve.Plane) (newEnd, mid int) {
	left := begin
	curEnd := end

	i := begin
	for i < curEnd {
		c := buf.Get(i)
		d0 := plane.SignedDistance(c.P0.Vec3())
		d3 := plane.SignedDistance(c.P3.Vec3())

		positive := true
		switch {
		case d0 >= 0 && d3 >= 0:
			positive = true
		case d0 < 0 && d3 < 0:
			positive = false
		default:
			var lft, rgt curve.Curve
			if c.Split(plane, &lft, &rgt) {
				buf.Set(i, lft)
				if curEnd < buf.Len() {
					buf.Set(curEnd, rgt)
				} else {
					buf.Append(rgt)
				}
				curEnd++
				positive = true
			} else {
				positive = true
			}
		}

		if positive {
			buf.Swap(i, left)
			left++
		}
		i++
	}

	return curEnd, left
}
