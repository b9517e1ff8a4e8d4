package cfrtree

import "testing"

func mustTerminal(t *testing.T, name string, payouts []float64) *TerminalNode {
	t.Helper()
	term, err := NewTerminalNode(name, payouts)
	if err != nil {
		t.Fatalf("NewTerminalNode(%q): %v", name, err)
	}
	return term
}

func TestNewDecisionNodeUniformInitialState(t *testing.T) {
	infosets := [][]int{{0}, {1}, {2}}
	children := []Node{
		mustTerminal(t, "a", []float64{3, 2, 3}),
		mustTerminal(t, "b", []float64{1, 2.5, 2}),
		mustTerminal(t, "c", []float64{4, 2, 2}),
	}

	root, err := NewDecisionNode("root", infosets, 1, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, children)
	if err != nil {
		t.Fatalf("NewDecisionNode: %v", err)
	}

	if root.NumActions() != 3 || root.NumInfosets() != 3 || root.NumStates() != 3 {
		t.Fatalf("unexpected dims: A=%d I=%d S=%d", root.NumActions(), root.NumInfosets(), root.NumStates())
	}
	if root.IterCount() != 1 {
		t.Fatalf("iter_count should start at 1, got %d", root.IterCount())
	}
	if root.Sign() != 1 {
		t.Fatalf("sign = %v, want 1", root.Sign())
	}

	strategy, ok := root.Strategy()
	if !ok {
		t.Fatalf("expected decision node to expose a strategy matrix")
	}
	for a := 0; a < 3; a++ {
		for i := 0; i < 3; i++ {
			if got, want := strategy.At(a, i), 1.0/3.0; got != want {
				t.Errorf("strategy[%d,%d] = %v, want %v", a, i, got, want)
			}
		}
	}

	for _, v := range root.totalProb {
		if v != 0 {
			t.Fatalf("total_probabilities must start at zero, got %v", root.totalProb)
		}
	}
}

func TestNewDecisionNodeRejectsInvalidPartition(t *testing.T) {
	children := []Node{
		mustTerminal(t, "a", []float64{1, 1}),
		mustTerminal(t, "b", []float64{1, 1}),
	}

	cases := []struct {
		name     string
		infosets [][]int
	}{
		{"gap in coverage", [][]int{{0}}},
		{"overlapping sets", [][]int{{0, 1}, {1}}},
		{"out of range index", [][]int{{0}, {5}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDecisionNode("n", tc.infosets, 1, nil, children); err == nil {
				t.Fatalf("expected construction to fail for %s", tc.name)
			}
		})
	}
}

func TestNewDecisionNodeRejectsBadSign(t *testing.T) {
	children := []Node{mustTerminal(t, "a", []float64{1})}
	if _, err := NewDecisionNode("n", [][]int{{0}}, 0, nil, children); err == nil {
		t.Fatalf("expected construction to fail for sign=0")
	}
}

func TestNewDecisionNodeRejectsNoChildren(t *testing.T) {
	if _, err := NewDecisionNode("n", [][]int{{0}}, 1, nil, nil); err == nil {
		t.Fatalf("expected construction to fail with no children")
	}
}

func TestNewDecisionNodeRejectsMismatchedChildStateCount(t *testing.T) {
	children := []Node{
		mustTerminal(t, "a", []float64{1, 1}),
		mustTerminal(t, "b", []float64{1, 1, 1}),
	}
	if _, err := NewDecisionNode("n", [][]int{{0}, {1}}, 1, nil, children); err == nil {
		t.Fatalf("expected construction to fail when children disagree on S")
	}
}

func TestNewTerminalNodeRejectsEmptyPayouts(t *testing.T) {
	if _, err := NewTerminalNode("t", nil); err == nil {
		t.Fatalf("expected construction to fail for empty payouts")
	}
}
