package bvh

import (
	"time"

	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// pendingChild is one not-yet-recursed slot of the node currently being
// expanded by recurse: a contiguous buffer range plus the bounds last
// computed for it (used to pick the next child to split and, once
// expansion stops, to populate the emitted node).
type pendingChild struct {
	begin, end int
	bounds     curve.NAABB
}

// Build recursively partitions every curve currently in buf and returns the
// root reference, after zero-initializing statistics carried by ctx. An
// empty buffer returns NullRef without allocating anything beyond Init.
func Build(ctx *Context, buf *curve.Buffer, arena Arena, threadIndex int) NodeRef {
	ctx.Stats = Stats{}
	if buf.Len() == 0 {
		arena.Init(0)
		return NullRef
	}

	arena.Init(3 * buf.Len())
	ctx.Logger.Noticef("bvh: build starting, %d curves", buf.Len())
	start := time.Now()

	root := recurse(ctx, buf, 0, 0, buf.Len(), arena, threadIndex)

	ctx.Logger.Noticef(
		"bvh: build finished in %d ms (nodes: %d, leafs: %d, maxDepth: %d)",
		time.Since(start).Milliseconds(),
		ctx.Stats.AlignedNodes+ctx.Stats.UnalignedNodes, ctx.Stats.Leafs, ctx.Stats.MaxDepth,
	)
	return root
}

func recurse(ctx *Context, buf *curve.Buffer, depth, begin, end int, arena Arena, threadIndex int) NodeRef {
	if depth > ctx.Stats.MaxDepth {
		ctx.Stats.MaxDepth = depth
	}

	if end-begin <= ctx.Config.MinLeafSize || depth > ctx.Config.MaxBuildDepth {
		return ctx.emitLeaf(buf, begin, end, arena, threadIndex)
	}

	pending := []pendingChild{{
		begin: begin, end: end,
		bounds: curve.NAABB{Frame: types.Identity, Box: curve.AlignedBounds(buf, begin, end)},
	}}
	isAligned := true

	for len(pending) < ctx.Config.N {
		idx, ok := pickLargestExpandable(pending, ctx.Config.MinLeafSize)
		if !ok {
			break
		}

		if ctx.Config.EnableSpatialSplits || ctx.Config.EnableSubdivSplits {
			idx = moveToEnd(buf, pending, idx)
		}
		chosen := pending[idx]

		r := ctx.split(buf, chosen.begin, chosen.end, &isAligned)

		pending[idx] = pendingChild{begin: chosen.begin, end: r.mid, bounds: r.left}
		pending = append(pending, pendingChild{begin: r.mid, end: r.newEnd, bounds: r.right})
	}

	childRefs := make([]NodeRef, len(pending))
	for i := len(pending) - 1; i >= 0; i-- {
		childRefs[i] = recurse(ctx, buf, depth+1, pending[i].begin, pending[i].end, arena, threadIndex)
	}

	if isAligned {
		node := arena.AllocAlignedNode(threadIndex)
		for i, p := range pending {
			arena.SetAlignedChild(node, i, p.bounds.Box, childRefs[i])
		}
		ctx.Stats.AlignedNodes++
		return arena.EncodeNode(node, true)
	}

	node := arena.AllocUnalignedNode(threadIndex)
	for i, p := range pending {
		arena.SetUnalignedChild(node, i, p.bounds, childRefs[i])
	}
	ctx.Stats.UnalignedNodes++
	return arena.EncodeNode(node, false)
}

func (ctx *Context) emitLeaf(buf *curve.Buffer, begin, end int, arena Arena, threadIndex int) NodeRef {
	n := end - begin
	if n > ctx.Config.MaxLeafBlocks {
		ctx.Logger.Warningf(
			"bvh: leaf [%d,%d) holds %d curves, clamping to maxLeafBlocks=%d (%d dropped)",
			begin, end, n, ctx.Config.MaxLeafBlocks, n-ctx.Config.MaxLeafBlocks,
		)
		ctx.Stats.LeafOverflows++
		n = ctx.Config.MaxLeafBlocks
	}

	block := arena.AllocPrimitiveBlock(threadIndex, n)
	for i := 0; i < n; i++ {
		arena.SetPrimitive(block, i, buf.Get(begin+i))
	}
	ctx.Stats.Leafs++
	return arena.EncodeLeaf(block, n)
}

// pickLargestExpandable returns the index of the pending child with the
// largest half-area among those whose size exceeds minLeafSize. Its second
// return is false if no pending child qualifies.
func pickLargestExpandable(pending []pendingChild, minLeafSize int) (int, bool) {
	best := -1
	var bestArea float32
	for i, p := range pending {
		if p.end-p.begin <= minLeafSize {
			continue
		}
		area := p.bounds.Box.HalfArea
		if best == -1 || area > bestArea {
			best = i
			bestArea = area
		}
	}
	return best, best != -1
}

// moveToEnd rearranges both the pending array and the underlying buffer so
// that the child at idx occupies the highest-index range among all pending
// children, and becomes the last entry of pending. This is what lets a
// spatial/subdivision split grow the buffer (end - begin > original size)
// without overwriting a sibling's range: the sibling always sits to the
// left of whatever is currently being grown. Returns the chosen child's new
// index (always len(pending)-1).
func moveToEnd(buf *curve.Buffer, pending []pendingChild, idx int) int {
	tailEnd := pending[len(pending)-1].end
	chosen := pending[idx]
	chosenLen := chosen.end - chosen.begin

	if chosen.end != tailEnd {
		rotateRange(buf, chosen.begin, chosen.end, tailEnd)
		for j := idx + 1; j < len(pending); j++ {
			pending[j].begin -= chosenLen
			pending[j].end -= chosenLen
		}
		chosen.begin = tailEnd - chosenLen
		chosen.end = tailEnd
	}

	copy(pending[idx:], pending[idx+1:])
	pending[len(pending)-1] = chosen
	return len(pending) - 1
}

// rotateRange rotates [begin,end) in place so that [mid,end) comes before
// [begin,mid): the standard reverse-reverse-reverse block swap, applied
// here to relocate a range within the curve buffer without needing
// same-sized blocks.
func rotateRange(buf *curve.Buffer, begin, mid, end int) {
	reverseRange(buf, begin, mid)
	reverseRange(buf, mid, end)
	reverseRange(buf, begin, end)
}

func reverseRange(buf *curve.Buffer, begin, end int) {
	for i, j := begin, end-1; i < j; i, j = i+1, j-1 {
		buf.Swap(i, j)
	}
}
