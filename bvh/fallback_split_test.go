package bvh

import "testing"

func TestFindFallbackSplitIsMedian(t *testing.T) {
	split := findFallbackSplit(10, 20)
	if split.Kind != SplitFallback {
		t.Fatalf("expected SplitFallback, got %v", split.Kind)
	}
	if split.Num0 != 5 || split.Num1 != 5 {
		t.Fatalf("expected an even 10-curve range to split 5/5, got %d/%d", split.Num0, split.Num1)
	}
}

func TestFindFallbackSplitAlwaysFeasibleAboveMinLeafSize(t *testing.T) {
	for n := 2; n < 20; n++ {
		split := findFallbackSplit(0, n)
		if !feasible(split) {
			t.Fatalf("expected a range of size %d to produce a feasible fallback split", n)
		}
	}
}
