package scene

import (
	"testing"

	"github.com/achilleasa/hairbvh/types"
)

func straightCurveSet(n int) *CurveSet {
	cs := &CurveSet{}
	for i := 0; i < n; i++ {
		start := len(cs.Vertices)
		x := float32(i) * 2
		cs.Vertices = append(cs.Vertices,
			types.XYZW(x, 0, 0, 0.1),
			types.XYZW(x+0.5, 0, 0, 0.1),
			types.XYZW(x+1, 0, 0, 0.1),
			types.XYZW(x+1.5, 0, 0, 0.1),
		)
		cs.Curves = append(cs.Curves, start)
	}
	return cs
}

func TestNewSceneIsEmpty(t *testing.T) {
	s := NewScene()
	if s.Size() != 0 {
		t.Fatalf("expected a fresh scene to be empty, got size %d", s.Size())
	}
}

func TestAddCurveSetRejectsNil(t *testing.T) {
	s := NewScene()
	if _, err := s.AddCurveSet(nil); err == nil {
		t.Fatalf("expected AddCurveSet(nil) to return an error")
	}
}

func TestAddCurveSetAppendsEnabledGeometry(t *testing.T) {
	s := NewScene()
	cs := straightCurveSet(3)

	g, err := s.AddCurveSet(cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("expected the scene to carry 1 geometry, got %d", s.Size())
	}
	if !g.Enabled || g.Type != CurveSetGeometry {
		t.Fatalf("expected an enabled curve-set geometry, got %+v", g)
	}
	if s.Get(0) != g {
		t.Fatalf("expected Get(0) to return the appended geometry")
	}
}

func TestCurveSetControlPoints(t *testing.T) {
	cs := straightCurveSet(2)
	if cs.NumCurves() != 2 {
		t.Fatalf("expected 2 curves, got %d", cs.NumCurves())
	}
	p0, p1, p2, p3 := cs.ControlPoints(1)
	if p0[0] != 2 || p1[0] != 2.5 || p2[0] != 3 || p3[0] != 3.5 {
		t.Fatalf("unexpected control points for curve 1: %v %v %v %v", p0, p1, p2, p3)
	}
}
