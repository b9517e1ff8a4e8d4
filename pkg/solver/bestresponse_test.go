package solver

import (
	"context"
	"testing"
)

func TestBestResponseValueMatchesUniformInitialStrategy(t *testing.T) {
	root := buildStubTree(t)
	rootReach := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	// Before any iteration, avg_strategy equals the uniform initial
	// strategy, so BestResponseValue must reproduce the same per-state
	// expectation the first upward pass would compute.
	got, err := BestResponseValue(root, rootReach)
	if err != nil {
		t.Fatalf("BestResponseValue: %v", err)
	}

	want := []float64{8.0 / 3, 13.0 / 6, 7.0 / 3}
	for s := range want {
		if !almostEqual(got[s], want[s]) {
			t.Errorf("BestResponseValue()[%d] = %v, want %v", s, got[s], want[s])
		}
	}
}

func TestBestResponseValueAfterTraining(t *testing.T) {
	root := buildStubTree(t)
	eng := NewEngine(root)
	if err := eng.Run(context.Background(), DefaultRunConfig(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rootReach := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	got, err := BestResponseValue(root, rootReach)
	if err != nil {
		t.Fatalf("BestResponseValue: %v", err)
	}
	for s, v := range got {
		if v < 1 || v > 4 {
			t.Errorf("BestResponseValue()[%d] = %v, want a value within the terminal payout range [1,4]", s, v)
		}
	}
}
