package curve

// PreSubdivide uniformly refines every curve currently in the buffer to
// depth 3 (de Casteljau applied three levels, depth-first), producing eight
// segments per input. The first of the eight overwrites the original curve
// in place; the remaining seven are appended. Runs exactly once, before
// recursion begins, over the buffer's length at the time of the call --
// segments appended by this pass are not themselves re-subdivided.
func PreSubdivide(buf *Buffer) {
	n := buf.Len()
	for i := 0; i < n; i++ {
		children := subdivideToDepth(buf.Get(i), 3)
		buf.Set(i, children[0])
		for _, c := range children[1:] {
			buf.Append(c)
		}
	}
}

func subdivideToDepth(c Curve, depth int) []Curve {
	if depth == 0 {
		return []Curve{c}
	}
	var left, right Curve
	c.Subdivide(&left, &right)
	out := subdivideToDepth(left, depth-1)
	out = append(out, subdivideToDepth(right, depth-1)...)
	return out
}
