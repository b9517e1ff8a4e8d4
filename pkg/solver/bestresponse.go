package solver

import (
	"fmt"

	"github.com/handrank/vcfr/internal/vecmath"
	"github.com/handrank/vcfr/pkg/cfrtree"
)

// infosetShape exposes the dimensions and partition a decision node needs for
// an external, read-only evaluation pass. Implemented by *cfrtree.DecisionNode;
// kept as a local interface so this package never reaches into cfrtree
// internals.
type infosetShape interface {
	Infosets() [][]int
	NumStates() int
	NumActions() int
}

// BestResponseValue walks a solved tree once using the *average* strategy
// (rather than the live, still-updating strategy) and returns the resulting
// per-state expected values at the root. It is not part of the core engine
// loop; it exists as a sanity check exercised from tests and the CLI's
// --check flag, which logs the prior-weighted root value it returns. It
// checks nothing itself; judging the values is left to the caller.
//
// rootReach gives the prior probability of each raw state at the root,
// matching the same vector the tree was originally built with.
func BestResponseValue(root cfrtree.Node, rootReach []float64) ([]float64, error) {
	return evalUnderAvgStrategy(root, rootReach)
}

func evalUnderAvgStrategy(n cfrtree.Node, pi []float64) ([]float64, error) {
	if children, ok := n.Children(); ok {
		shape, ok := n.(infosetShape)
		if !ok {
			return nil, fmt.Errorf("solver: decision node %q does not expose its infoset shape", n.Name())
		}
		avgStrategy, ok := n.AvgStrategy()
		if !ok {
			return nil, fmt.Errorf("solver: decision node %q has no average strategy", n.Name())
		}

		numStates := shape.NumStates()
		numActions := shape.NumActions()
		infosets := shape.Infosets()

		numerator := make([]float64, numStates)
		term := make([]float64, numStates)
		for a := 0; a < numActions; a++ {
			childPi := make([]float64, numStates)
			for i, set := range infosets {
				v := avgStrategy.At(a, i)
				for _, s := range set {
					childPi[s] = pi[s] * v
				}
			}

			childEV, err := evalUnderAvgStrategy(children[a], childPi)
			if err != nil {
				return nil, err
			}

			vecmath.MulElem(term, childEV, childPi)
			for s := 0; s < numStates; s++ {
				numerator[s] += term[s]
			}
		}

		out := make([]float64, numStates)
		vecmath.SafeDivElem(out, numerator, pi)
		return out, nil
	}

	return n.Payouts(), nil
}
