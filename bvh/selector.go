package bvh

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// result is what split() commits: the partitioned midpoint, the (possibly
// grown) end of the range, and each side's bounds as the caller will store
// them on the pending child.
type result struct {
	mid, newEnd int
	left, right curve.NAABB
	kind        SplitKind
}

func feasible(s Split) bool {
	return s.Num0 > 0 && s.Num1 > 0
}

// split evaluates every enabled splitter in the fixed order aligned-object,
// aligned-spatial, aligned-subdiv, unaligned-object, unaligned-spatial,
// unaligned-subdiv, strand; keeps the first candidate seen at the lowest
// total cost (strict improvement only, so ties favour whichever was
// evaluated first); falls back to the median split if nothing qualifies.
// isAligned is read once at entry (see DESIGN.md) to pick which
// traversal-cost weight and node-bounds term apply to every candidate in
// this call, and is flipped to false only if the winner is an
// unaligned-object or strand split.
func (ctx *Context) split(buf *curve.Buffer, begin, end int, isAligned *bool) result {
	alignedBox := curve.AlignedBounds(buf, begin, end)
	unalignedNAABB := curve.UnalignedBounds(buf, begin, end, ctx.Rand)

	var travCost, nodeHalfArea float32
	if *isAligned {
		travCost = ctx.Config.TravCostAligned
		nodeHalfArea = alignedBox.HalfArea
	} else {
		travCost = ctx.Config.TravCostUnaligned
		nodeHalfArea = unalignedNAABB.Box.HalfArea
	}
	baseline := travCost * nodeHalfArea

	type candidate struct {
		split Split
		total float32
	}
	var best *candidate

	consider := func(s Split) {
		if !feasible(s) {
			return
		}
		total := baseline + s.ModifiedSAH
		if best == nil || total < best.total {
			best = &candidate{split: s, total: total}
		}
	}

	cfg := ctx.Config
	if cfg.EnableObjectSplits && cfg.EnableAlignedSplits {
		consider(findObjectSplit(ctx, buf, begin, end, types.Identity, SplitAlignedObject))
	}
	if cfg.EnableSpatialSplits && cfg.EnableAlignedSplits {
		consider(findSpatialSplit(ctx, buf, begin, end, types.Identity, SplitAlignedSpatial))
	}
	if cfg.EnableSubdivSplits && cfg.EnableAlignedSplits {
		consider(findSubdivSplit(ctx, buf, begin, end, types.Identity, SplitAlignedSubdiv))
	}
	if cfg.EnableObjectSplits && cfg.EnableUnalignedSplits {
		consider(findObjectSplit(ctx, buf, begin, end, unalignedNAABB.Frame, SplitUnalignedObject))
	}
	if cfg.EnableSpatialSplits && cfg.EnableUnalignedSplits {
		consider(findSpatialSplit(ctx, buf, begin, end, unalignedNAABB.Frame, SplitUnalignedSpatial))
	}
	if cfg.EnableSubdivSplits && cfg.EnableUnalignedSplits {
		consider(findSubdivSplit(ctx, buf, begin, end, unalignedNAABB.Frame, SplitUnalignedSubdiv))
	}
	if cfg.EnableStrandSplits {
		consider(findStrandSplit(ctx, buf, begin, end))
	}

	if best == nil {
		ctx.Stats.FallbackSplits++
		fb := findFallbackSplit(begin, end)
		mid := fb.Num0 + begin
		lBox := curve.AlignedBounds(buf, begin, mid)
		rBox := curve.AlignedBounds(buf, mid, end)
		return result{
			mid: mid, newEnd: end,
			left:  curve.NAABB{Frame: types.Identity, Box: lBox},
			right: curve.NAABB{Frame: types.Identity, Box: rBox},
			kind:  SplitFallback,
		}
	}

	ctx.Stats.record(best.split.Kind)
	r := ctx.apply(buf, begin, end, best.split)

	if best.split.Kind == SplitUnalignedObject || best.split.Kind == SplitStrand {
		*isAligned = false
	}

	return r
}

// apply partitions the buffer for the winning splitter and derives each
// side's bounds per splitter kind.
func (ctx *Context) apply(buf *curve.Buffer, begin, end int, s Split) result {
	switch s.Kind {
	case SplitAlignedObject:
		mid := partitionObjectSplit(buf, begin, end, s.Frame, s, ctx.Config.Bins)
		lBox := curve.AlignedBounds(buf, begin, mid)
		rBox := curve.AlignedBounds(buf, mid, end)
		return result{mid: mid, newEnd: end,
			left:  curve.NAABB{Frame: types.Identity, Box: lBox},
			right: curve.NAABB{Frame: types.Identity, Box: rBox},
			kind:  s.Kind}

	case SplitUnalignedObject:
		mid := partitionObjectSplit(buf, begin, end, s.Frame, s, ctx.Config.Bins)
		left := curve.UnalignedBounds(buf, begin, mid, ctx.Rand)
		right := curve.UnalignedBounds(buf, mid, end, ctx.Rand)
		return result{mid: mid, newEnd: end, left: left, right: right, kind: s.Kind}

	case SplitAlignedSpatial:
		newEnd, mid := partitionSpatialSplit(buf, begin, end, s.Plane)
		lBox := curve.AlignedBounds(buf, begin, mid)
		rBox := curve.AlignedBounds(buf, mid, newEnd)
		return result{mid: mid, newEnd: newEnd,
			left:  curve.NAABB{Frame: types.Identity, Box: lBox},
			right: curve.NAABB{Frame: types.Identity, Box: rBox},
			kind:  s.Kind}

	case SplitUnalignedSpatial:
		newEnd, mid := partitionSpatialSplit(buf, begin, end, s.Plane)
		left := curve.UnalignedBounds(buf, begin, mid, ctx.Rand)
		right := curve.UnalignedBounds(buf, mid, newEnd, ctx.Rand)
		return result{mid: mid, newEnd: newEnd, left: left, right: right, kind: s.Kind}

	case SplitAlignedSubdiv:
		newEnd, mid := partitionSubdivSplit(buf, begin, end, s.Frame, s, ctx.Config.Bins)
		return result{mid: mid, newEnd: newEnd,
			left:  curve.NAABB{Frame: types.Identity, Box: s.LBox},
			right: curve.NAABB{Frame: types.Identity, Box: s.RBox},
			kind:  s.Kind}

	case SplitUnalignedSubdiv:
		newEnd, mid := partitionSubdivSplit(buf, begin, end, s.Frame, s, ctx.Config.Bins)
		return result{mid: mid, newEnd: newEnd,
			left:  curve.NAABB{Frame: s.Frame, Box: s.LBox},
			right: curve.NAABB{Frame: s.Frame, Box: s.RBox},
			kind:  s.Kind}

	case SplitStrand:
		mid := partitionStrandSplit(buf, begin, end, s)
		left := curve.UnalignedBounds(buf, begin, mid, ctx.Rand)
		right := curve.UnalignedBounds(buf, mid, end, ctx.Rand)
		return result{mid: mid, newEnd: end, left: left, right: right, kind: s.Kind}

	default:
		// Unreachable: selector only applies candidates it evaluated.
		panic("bvh: apply called with unhandled split kind")
	}
}
