// Package curve defines the hair primitive operated on by the BVH builder:
// a cubic Bezier segment with per-control-point radius (p0..p3, each
// carrying its radius in the W lane, plus a geometry/primitive id pair).
package curve

import "github.com/achilleasa/hairbvh/types"

// Curve is a cubic Bezier segment in 3D. Control points carry their radius
// in the W lane. T0/T1 track the parametric interval of this segment within
// the original, unsplit input curve -- refinement narrows the interval but
// never reorders it.
type Curve struct {
	P0, P1, P2, P3 types.Vec4

	T0, T1 float32

	GeomID, PrimID uint32
}

// New builds a curve covering the full [0,1] parametric range, as produced
// directly by ingestion before any refinement.
func New(p0, p1, p2, p3 types.Vec4, geomID, primID uint32) Curve {
	return Curve{P0: p0, P1: p1, P2: p2, P3: p3, T0: 0, T1: 1, GeomID: geomID, PrimID: primID}
}

// Tangent returns the (unnormalized) chord p3-p0, used by the strand
// splitter and by the oriented-frame search as the curve's representative
// direction.
func (c Curve) Tangent() types.Vec3 {
	return c.P3.Vec3().Sub(c.P0.Vec3())
}

func lerp4(a, b types.Vec4, t float32) types.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// deCasteljau evaluates the de Casteljau construction at parameter t (in
// this segment's local [0,1] parameter space) and returns the two control
// polygons it produces: [0,t] and [t,1].
func (c Curve) deCasteljau(t float32) (left, right [4]types.Vec4) {
	p01 := lerp4(c.P0, c.P1, t)
	p12 := lerp4(c.P1, c.P2, t)
	p23 := lerp4(c.P2, c.P3, t)
	p012 := lerp4(p01, p12, t)
	p123 := lerp4(p12, p23, t)
	p0123 := lerp4(p012, p123, t)

	left = [4]types.Vec4{c.P0, p01, p012, p0123}
	right = [4]types.Vec4{p0123, p123, p23, c.P3}
	return left, right
}

// Subdivide splits the curve at its midpoint (t=0.5 in local parameter
// space) via de Casteljau refinement, writing the two halves into outLeft
// and outRight. This is the operation the pre-subdivision pass applies
// three levels deep, and that the subdivision-object splitter applies once
// per curve during binning.
func (c Curve) Subdivide(outLeft, outRight *Curve) {
	left, right := c.deCasteljau(0.5)
	tmid := (c.T0 + c.T1) * 0.5

	*outLeft = Curve{P0: left[0], P1: left[1], P2: left[2], P3: left[3], T0: c.T0, T1: tmid, GeomID: c.GeomID, PrimID: c.PrimID}
	*outRight = Curve{P0: right[0], P1: right[1], P2: right[2], P3: right[3], T0: tmid, T1: c.T1, GeomID: c.GeomID, PrimID: c.PrimID}
}

// Split clips the curve against a plane, writing the part on the plane's
// positive side (SignedDistance >= 0) into outLeft and the part on its
// negative side into outRight, whichever end of the curve each part
// contains. The exact split parameter is estimated by linear
// interpolation of the endpoints' signed distances to the plane -- a
// reasonable approximation for the thin, low-curvature segments produced
// by pre-subdivision, and the clipping strategy the spatial-center splitter
// relies on. Returns false if the curve does not actually straddle the
// plane (both endpoints on the same side, or a degenerate near-zero
// denominator), in which case outLeft/outRight are left untouched and the
// caller should treat the curve as unsplit.
func (c Curve) Split(plane Plane, outLeft, outRight *Curve) bool {
	d0 := plane.SignedDistance(c.P0.Vec3())
	d3 := plane.SignedDistance(c.P3.Vec3())

	if (d0 >= 0) == (d3 >= 0) {
		return false
	}

	denom := d0 - d3
	if denom > -floatCmpEpsilon && denom < floatCmpEpsilon {
		return false
	}

	t := d0 / denom
	if t < floatCmpEpsilon {
		t = floatCmpEpsilon
	} else if t > 1-floatCmpEpsilon {
		t = 1 - floatCmpEpsilon
	}

	left, right := c.deCasteljau(t)
	tmid := c.T0 + (c.T1-c.T0)*t

	near, far := left, right
	if d0 >= 0 {
		*outLeft = Curve{P0: near[0], P1: near[1], P2: near[2], P3: near[3], T0: c.T0, T1: tmid, GeomID: c.GeomID, PrimID: c.PrimID}
		*outRight = Curve{P0: far[0], P1: far[1], P2: far[2], P3: far[3], T0: tmid, T1: c.T1, GeomID: c.GeomID, PrimID: c.PrimID}
	} else {
		*outLeft = Curve{P0: far[0], P1: far[1], P2: far[2], P3: far[3], T0: tmid, T1: c.T1, GeomID: c.GeomID, PrimID: c.PrimID}
		*outRight = Curve{P0: near[0], P1: near[1], P2: near[2], P3: near[3], T0: c.T0, T1: tmid, GeomID: c.GeomID, PrimID: c.PrimID}
	}
	return true
}

// floatCmpEpsilon mirrors types.floatCmpEpsilon; duplicated locally since
// the types package does not export it.
const floatCmpEpsilon = 1e-6

// Bounds returns the curve's axis-aligned extent expressed in the given
// frame: every control point is rotated into the frame and then inflated by
// its own radius, since radius is invariant under an orthonormal change of
// basis. This conservatively bounds the curve (which lies within the convex
// hull of its control points) without evaluating the curve itself.
func (c Curve) Bounds(frame types.Frame) (lower, upper types.Vec3) {
	pts := [4]types.Vec4{c.P0, c.P1, c.P2, c.P3}

	first := true
	for _, p := range pts {
		pos := frame.XformPoint(p.Vec3())
		r := p.W()
		rv := types.XYZ(r, r, r)
		lo := pos.Sub(rv)
		hi := pos.Add(rv)
		if first {
			lower, upper = lo, hi
			first = false
			continue
		}
		lower = types.MinVec3(lower, lo)
		upper = types.MaxVec3(upper, hi)
	}
	return lower, upper
}

// Center returns the midpoint of the curve's bounds in the given frame --
// the centroid used by every binned splitter to place a curve in a
// histogram bucket.
func (c Curve) Center(frame types.Frame) types.Vec3 {
	lower, upper := c.Bounds(frame)
	return lower.Add(upper).Mul(0.5)
}
