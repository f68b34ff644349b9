// Package scene provides the builder's ingestion-side collaborator: a
// minimal in-memory representation of a scene carrying curve-set geometry
// (plus other geometry kinds the hair builder simply skips).
package scene

import (
	"fmt"

	"github.com/achilleasa/hairbvh/types"
)

// GeometryType tags what kind of geometry a Geometry entry carries. Only
// CurveSetGeometry is consumed by the builder; a real scene format also
// carries meshes and lights the hair builder has no business touching.
type GeometryType uint8

const (
	CurveSetGeometry GeometryType = iota
	MeshGeometry
	LightGeometry
)

// CurveSet is a flat vertex table (position + radius in the w lane) plus
// per-curve start offsets into it: curve j's four control points are
// Vertices[Curves[j]], Vertices[Curves[j]+1], Vertices[Curves[j]+2],
// Vertices[Curves[j]+3].
type CurveSet struct {
	Vertices []types.Vec4
	Curves   []int
}

// NumCurves returns the number of curves in the set.
func (cs *CurveSet) NumCurves() int { return len(cs.Curves) }

// ControlPoints returns curve j's four control points.
func (cs *CurveSet) ControlPoints(j int) (p0, p1, p2, p3 types.Vec4) {
	start := cs.Curves[j]
	return cs.Vertices[start], cs.Vertices[start+1], cs.Vertices[start+2], cs.Vertices[start+3]
}

// Geometry is one entry of a Scene: a type tag, an enabled flag, and the
// concrete payload for the type it names. Only CurveSet is populated for
// CurveSetGeometry entries; the others are placeholders a richer scene
// format would fill in.
type Geometry struct {
	Type    GeometryType
	Enabled bool
	Curves  *CurveSet
}

// Scene is the flat list of geometries the builder ingests from.
type Scene struct {
	Geometries []*Geometry
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{Geometries: make([]*Geometry, 0)}
}

// AddCurveSet appends a new enabled curve-set geometry and returns it for
// the caller (a parser, typically) to populate.
func (s *Scene) AddCurveSet(cs *CurveSet) (*Geometry, error) {
	if cs == nil {
		return nil, fmt.Errorf("scene: nil curve set")
	}
	g := &Geometry{Type: CurveSetGeometry, Enabled: true, Curves: cs}
	s.Geometries = append(s.Geometries, g)
	return g, nil
}

// Size returns the number of geometries in the scene.
func (s *Scene) Size() int { return len(s.Geometries) }

// Get returns the i-th geometry.
func (s *Scene) Get(i int) *Geometry { return s.Geometries[i] }
