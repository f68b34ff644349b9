package bvh

import (
	"math"

	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// SplitKind tags which of the six splitters (each run in an aligned and/or
// unaligned frame where applicable) produced a Split descriptor.
type SplitKind int

const (
	SplitNone SplitKind = iota
	SplitAlignedObject
	SplitAlignedSpatial
	SplitAlignedSubdiv
	SplitUnalignedObject
	SplitUnalignedSpatial
	SplitUnalignedSubdiv
	SplitStrand
	SplitFallback
)

func (k SplitKind) String() string {
	switch k {
	case SplitAlignedObject:
		return "aligned-object"
	case SplitAlignedSpatial:
		return "aligned-spatial"
	case SplitAlignedSubdiv:
		return "aligned-subdiv"
	case SplitUnalignedObject:
		return "unaligned-object"
	case SplitUnalignedSpatial:
		return "unaligned-spatial"
	case SplitUnalignedSubdiv:
		return "unaligned-subdiv"
	case SplitStrand:
		return "strand"
	case SplitFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Split is a tagged union: one variant's worth of fields is populated
// depending on Kind, everything else left zero.
// Unifying it into one struct (rather than an interface per splitter)
// keeps the selector a flat, ordered list of candidates to compare.
type Split struct {
	Kind SplitKind

	// Dim is the winning axis; -1 marks an infeasible candidate (no
	// qualifying bin, or every axis degenerate).
	Dim int

	// ModifiedSAH is halfArea(L)*ceil(n0/N) + halfArea(R)*ceil(n1/N)
	// (the spatial splitter uses the plain counts n0 and n1 instead),
	// i.e. the split's own cost without the node traversal term -- the
	// selector adds travCost(frame)*halfArea(node_bounds) before
	// comparing.
	ModifiedSAH float32

	Num0, Num1 int

	// Frame is the coordinate frame the find step binned/classified in
	// -- identity for every aligned variant, a searched frame for every
	// unaligned variant. The partition step needs it to re-derive bin
	// indices without rescanning the full histogram.
	Frame types.Frame

	Left, Right curve.NAABB

	// Binned-splitter (object/subdiv) partition parameters.
	Ofs, Scale float32
	BestBin    int

	// LBox/RBox hold each side's bounds as accumulated by the find step.
	// The subdivision-object and spatial splitters fill them in; only the
	// subdivision-object splitter's apply step uses them, reconstructing
	// child bounds from its per-bin accumulators instead of re-scanning
	// the buffer after partitioning.
	LBox, RBox curve.BBox

	// Spatial-splitter partition parameter.
	Plane curve.Plane

	// Strand-splitter partition parameters.
	Axis0, Axis1 types.Vec3
}

// infeasible is the sentinel every Find* function returns when it cannot
// produce two non-empty sides.
func infeasible(kind SplitKind) Split {
	return Split{Kind: kind, Dim: -1, ModifiedSAH: posInf}
}

var posInf = float32(math.Inf(1))
