// Package cfrtree implements the vectorized CFR game tree: a rooted,
// singly-owned tree of decision and terminal nodes, and the three depth-first
// traversals (probability propagation, expected-value backup, strategy
// update) that together perform one CFR iteration.
//
// The tree has no parent back-references and no sharing between subtrees;
// a decision node exclusively owns its children. Building the tree is the
// job of an external collaborator (see pkg/kuhn and pkg/pushfold) — this
// package only knows how to construct well-formed nodes and walk them.
package cfrtree

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Node is the capability set shared by decision and terminal nodes.
type Node interface {
	// Name returns a human-readable label for the node.
	Name() string

	// StateProbabilities returns the current reach probability of each raw
	// state at this node, length S.
	StateProbabilities() []float64

	// SetStateProbabilities overwrites the reach probabilities in place.
	SetStateProbabilities(pi []float64)

	// Payouts returns, for a terminal node, its fixed per-state payouts; for
	// a decision node, its current per-state expected value (evs) — the
	// value its parent consumes during the upward pass. The returned slice
	// is a live view, not a copy; callers must not retain it across a pass
	// that mutates the node.
	Payouts() []float64

	// Strategy returns the current A×I strategy matrix, and true, for a
	// decision node; (nil, false) for a terminal node.
	Strategy() (*mat.Dense, bool)

	// AvgStrategy returns the running average A×I strategy matrix, and
	// true, for a decision node; (nil, false) for a terminal node.
	AvgStrategy() (*mat.Dense, bool)

	// Children returns the owned child subtrees, in action order, and true,
	// for a decision node; (nil, false) for a terminal node.
	Children() ([]Node, bool)

	// UpdateProbabilities runs the downward pass rooted at this node.
	UpdateProbabilities() error

	// UpdateEV runs the upward pass rooted at this node.
	UpdateEV() error

	// UpdateStrategy runs the strategy-update pass rooted at this node.
	UpdateStrategy() error
}

// TerminalNode is a leaf whose per-state payout vector is fixed at
// construction. All three update operations are no-ops.
type TerminalNode struct {
	name    string
	statePr []float64
	payouts []float64
}

// NewTerminalNode builds a terminal node with the given fixed, zero-sum
// per-state payouts. state_probabilities starts as the zero vector and is
// overwritten by the first downward pass.
func NewTerminalNode(name string, payouts []float64) (*TerminalNode, error) {
	if len(payouts) == 0 {
		return nil, fmt.Errorf("cfrtree: terminal node %q: payouts must be non-empty", name)
	}
	return &TerminalNode{
		name:    name,
		statePr: make([]float64, len(payouts)),
		payouts: append([]float64(nil), payouts...),
	}, nil
}

func (t *TerminalNode) Name() string                      { return t.name }
func (t *TerminalNode) StateProbabilities() []float64      { return t.statePr }
func (t *TerminalNode) SetStateProbabilities(pi []float64) { t.statePr = pi }
func (t *TerminalNode) Payouts() []float64                 { return t.payouts }
func (t *TerminalNode) Strategy() (*mat.Dense, bool)       { return nil, false }
func (t *TerminalNode) AvgStrategy() (*mat.Dense, bool)    { return nil, false }
func (t *TerminalNode) Children() ([]Node, bool)           { return nil, false }
func (t *TerminalNode) UpdateProbabilities() error         { return nil }
func (t *TerminalNode) UpdateEV() error                    { return nil }
func (t *TerminalNode) UpdateStrategy() error              { return nil }

// DecisionNode is a node where one player chooses among a fixed list of
// actions. It groups raw states into information sets and carries strategy,
// average strategy, cumulative regret, and per-iteration bookkeeping.
type DecisionNode struct {
	name    string
	statePr []float64 // length S

	infosets      [][]int // partition of {0..S-1}, length I
	stateToInfo   []int   // reverse map, length S
	totalProb     []float64 // length I
	evs           []float64 // length S
	strategy      *mat.Dense // A x I
	avgStrategy   *mat.Dense // A x I
	regrets       *mat.Dense // A x I
	sign          float64
	iterCount     int
	children      []Node
}

// NewDecisionNode builds a decision node over the given information-set
// partition and owned children. priorStateProbabilities may be nil (the node
// starts with zero reach, the common case for every node but the root); when
// non-nil it seeds the node's reach probabilities directly (used for the
// tree root, which has no parent to push reach down to it).
func NewDecisionNode(name string, infosets [][]int, sign float64, priorStateProbabilities []float64, children []Node) (*DecisionNode, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("cfrtree: decision node %q: must have at least one action/child", name)
	}
	if sign != 1 && sign != -1 {
		return nil, fmt.Errorf("cfrtree: decision node %q: sign must be +1 or -1, got %v", name, sign)
	}

	numStates, stateToInfo, err := validatePartition(name, infosets)
	if err != nil {
		return nil, err
	}

	for ci, c := range children {
		if got := len(c.StateProbabilities()); got != numStates {
			return nil, fmt.Errorf("cfrtree: decision node %q: child %d (%s) has S=%d, want S=%d", name, ci, c.Name(), got, numStates)
		}
	}

	statePr := make([]float64, numStates)
	if priorStateProbabilities != nil {
		if len(priorStateProbabilities) != numStates {
			return nil, fmt.Errorf("cfrtree: decision node %q: prior state probabilities length %d != S=%d", name, len(priorStateProbabilities), numStates)
		}
		copy(statePr, priorStateProbabilities)
	}

	numActions := len(children)
	numInfosets := len(infosets)

	strategy := mat.NewDense(numActions, numInfosets, nil)
	avgStrategy := mat.NewDense(numActions, numInfosets, nil)
	uniform := 1.0 / float64(numActions)
	for a := 0; a < numActions; a++ {
		for i := 0; i < numInfosets; i++ {
			strategy.Set(a, i, uniform)
			avgStrategy.Set(a, i, uniform)
		}
	}

	return &DecisionNode{
		name:        name,
		statePr:     statePr,
		infosets:    infosets,
		stateToInfo: stateToInfo,
		totalProb:   make([]float64, numInfosets),
		evs:         make([]float64, numStates),
		strategy:    strategy,
		avgStrategy: avgStrategy,
		regrets:     mat.NewDense(numActions, numInfosets, nil),
		sign:        sign,
		iterCount:   1,
		children:    children,
	}, nil
}

// validatePartition checks that infosets is a valid partition of {0..S-1}
// and returns S along with the reverse state->info index map.
func validatePartition(name string, infosets [][]int) (int, []int, error) {
	if len(infosets) == 0 {
		return 0, nil, fmt.Errorf("cfrtree: decision node %q: must have at least one information set", name)
	}

	maxState := -1
	for _, set := range infosets {
		for _, s := range set {
			if s > maxState {
				maxState = s
			}
		}
	}
	numStates := maxState + 1
	if numStates == 0 {
		return 0, nil, fmt.Errorf("cfrtree: decision node %q: information sets contain no states", name)
	}

	seen := make([]bool, numStates)
	stateToInfo := make([]int, numStates)
	for i := range stateToInfo {
		stateToInfo[i] = -1
	}
	for i, set := range infosets {
		for _, s := range set {
			if s < 0 || s >= numStates {
				return 0, nil, fmt.Errorf("cfrtree: decision node %q: state index %d out of range", name, s)
			}
			if seen[s] {
				return 0, nil, fmt.Errorf("cfrtree: decision node %q: state %d appears in more than one information set", name, s)
			}
			seen[s] = true
			stateToInfo[s] = i
		}
	}
	for s, ok := range seen {
		if !ok {
			return 0, nil, fmt.Errorf("cfrtree: decision node %q: state %d is not covered by any information set", name, s)
		}
	}

	return numStates, stateToInfo, nil
}

func (d *DecisionNode) Name() string                 { return d.name }
func (d *DecisionNode) StateProbabilities() []float64 { return d.statePr }
func (d *DecisionNode) SetStateProbabilities(pi []float64) {
	d.statePr = pi
}
func (d *DecisionNode) Payouts() []float64 { return d.evs }
func (d *DecisionNode) Strategy() (*mat.Dense, bool) { return d.strategy, true }
func (d *DecisionNode) AvgStrategy() (*mat.Dense, bool) { return d.avgStrategy, true }
func (d *DecisionNode) Children() ([]Node, bool) { return d.children, true }

// NumStates, NumInfosets, and NumActions expose the node's fixed dimensions.
func (d *DecisionNode) NumStates() int    { return len(d.statePr) }
func (d *DecisionNode) NumInfosets() int  { return len(d.infosets) }
func (d *DecisionNode) NumActions() int   { a, _ := d.strategy.Dims(); return a }
func (d *DecisionNode) Sign() float64     { return d.sign }
func (d *DecisionNode) IterCount() int    { return d.iterCount }
func (d *DecisionNode) Infosets() [][]int { return d.infosets }
