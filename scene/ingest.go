package scene

import (
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/types"
)

// Ingest converts a scene into a curve buffer: every enabled curve-set
// geometry contributes one curve segment per entry, with t0=0, t1=1 and
// geomID/primID set to the geometry's index and the curve's index within
// it. Non-curve-set geometries, and disabled ones, are skipped. Returns
// the populated buffer (reserving reserveFactor*curveCount capacity, per
// the data model's >=3x requirement) and the union bounds of every
// ingested curve.
func Ingest(s *Scene, reserveFactor int) (*curve.Buffer, curve.BBox) {
	total := 0
	for _, g := range s.Geometries {
		if g.Enabled && g.Type == CurveSetGeometry {
			total += g.Curves.NumCurves()
		}
	}

	buf := curve.NewBuffer(total, reserveFactor)
	bounds := curve.EmptyBBox()

	for geomID, g := range s.Geometries {
		if !g.Enabled || g.Type != CurveSetGeometry {
			continue
		}
		for primID := 0; primID < g.Curves.NumCurves(); primID++ {
			p0, p1, p2, p3 := g.Curves.ControlPoints(primID)
			c := curve.New(p0, p1, p2, p3, uint32(geomID), uint32(primID))
			buf.Append(c)
			lo, hi := c.Bounds(types.Identity)
			bounds.Extend(lo, hi)
		}
	}

	return buf, bounds
}
