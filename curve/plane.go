package curve

import "github.com/achilleasa/hairbvh/types"

// Plane is a half-space boundary: the set of points p with
// Normal.Dot(p) + Offset == 0. Used by the spatial-center splitter to clip
// straddling curves.
type Plane struct {
	Normal types.Vec3
	Offset float32
}

// PlaneThroughPoint builds the plane with the given normal passing through
// point.
func PlaneThroughPoint(normal types.Vec3, point types.Vec3) Plane {
	return Plane{Normal: normal, Offset: -normal.Dot(point)}
}

// SignedDistance returns the signed distance of p from the plane (positive
// on the side the normal points to).
func (p Plane) SignedDistance(v types.Vec3) float32 {
	return p.Normal.Dot(v) + p.Offset
}
