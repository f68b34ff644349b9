package curve

import "fmt"

// Buffer is the mutable flat sequence of curve segments the builder
// operates on: a growable slice with in-place partition-by-swap semantics,
// generalized to also support the append-during-partition growth that the
// subdivision-object and spatial-center splitters require.
type Buffer struct {
	segments []Curve
}

// NewBuffer allocates a buffer reserving capacity for reserveFactor times
// initialCount segments, to absorb pre-subdivision growth plus spatial-split
// duplication without further reallocation once recursion starts.
func NewBuffer(initialCount int, reserveFactor int) *Buffer {
	if reserveFactor < 3 {
		reserveFactor = 3
	}
	return &Buffer{segments: make([]Curve, 0, initialCount*reserveFactor)}
}

// Len returns the number of segments currently stored.
func (b *Buffer) Len() int { return len(b.segments) }

// Append adds a curve to the end of the buffer, growing it, and returns the
// index it was stored at.
func (b *Buffer) Append(c Curve) int {
	b.segments = append(b.segments, c)
	return len(b.segments) - 1
}

// Get returns the curve at index i.
func (b *Buffer) Get(i int) Curve { return b.segments[i] }

// Set overwrites the curve at index i.
func (b *Buffer) Set(i int, c Curve) { b.segments[i] = c }

// Swap exchanges the curves at indices i and j.
func (b *Buffer) Swap(i, j int) { b.segments[i], b.segments[j] = b.segments[j], b.segments[i] }

// Range returns the slice of curves covering [begin,end). The returned
// slice aliases the buffer's backing array; callers must not retain it
// across an Append that could trigger a reallocation above the reserved
// capacity (the builder never does, by construction).
func (b *Buffer) Range(begin, end int) []Curve {
	if begin < 0 || end > len(b.segments) || begin > end {
		panic(fmt.Sprintf("curve: invalid range [%d,%d) over buffer of length %d", begin, end, len(b.segments)))
	}
	return b.segments[begin:end]
}

// Cap returns the reserved capacity, exposed so callers (and tests) can
// assert the no-realloc-during-recursion invariant holds.
func (b *Buffer) Cap() int { return cap(b.segments) }
