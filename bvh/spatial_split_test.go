package bvh

import (
	"testing"

	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

func TestFindSpatialSplitFeasibleForSpreadOutRange(t *testing.T) {
	ctx := newTestContext()
	buf := lineOfCurves(6)

	split := findSpatialSplit(ctx, buf, 0, buf.Len(), types.Identity, SplitAlignedSpatial)
	if !feasible(split) {
		t.Fatalf("expected a feasible spatial split across a spread-out range")
	}
}

func TestPartitionSpatialSplitGrowsBufferOnStraddle(t *testing.T) {
	buf := curve.NewBuffer(1, 3)
	// A single long curve straddling x=0.5 so Split must clip it.
	buf.Append(curve.New(
		types.XYZW(0, 0, 0, 0.05),
		types.XYZW(0.3, 0, 0, 0.05),
		types.XYZW(0.6, 0, 0, 0.05),
		types.XYZW(1, 0, 0, 0.05),
		0, 0,
	))

	plane := curve.PlaneThroughPoint(types.XYZ(1, 0, 0), types.XYZ(0.5, 0, 0))
	newEnd, mid := partitionSpatialSplit(buf, 0, 1, plane)

	if newEnd != 2 {
		t.Fatalf("expected the straddling curve to be clipped into two, growing the range to 2, got %d", newEnd)
	}
	if mid != 1 {
		t.Fatalf("expected exactly one curve on the positive side, got mid=%d", mid)
	}
}
