package cfrtree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/handrank/vcfr/internal/vecmath"
)

// UpdateProbabilities runs the downward pass: it seeds total_probabilities
// on the very first visit, expands the current strategy from the
// information-set dimension to the state dimension, and pushes the
// resulting per-action reach probabilities down to each child before
// recursing into them.
func (d *DecisionNode) UpdateProbabilities() error {
	if isZero(d.totalProb) {
		copy(d.totalProb, vecmath.InfosetReach(d.statePr, d.infosets))
	}

	expanded := d.expandStrategy()

	return forEachChild(d.children, func(a int, c Node) error {
		childPi := make([]float64, d.NumStates())
		vecmath.MulElem(childPi, d.statePr, expanded.RawRowView(a))
		c.SetStateProbabilities(childPi)
		return c.UpdateProbabilities()
	})
}

// expandStrategy builds the A×S matrix expanded[a,s] = strategy[a,i] for
// every state s in information set i. Every
// state in the same information set shares the acting player's strategy,
// since they cannot be distinguished.
func (d *DecisionNode) expandStrategy() *mat.Dense {
	numActions := d.NumActions()
	numStates := d.NumStates()
	out := mat.NewDense(numActions, numStates, nil)
	for a := 0; a < numActions; a++ {
		row := out.RawRowView(a)
		for i, set := range d.infosets {
			v := d.strategy.At(a, i)
			for _, s := range set {
				row[s] = v
			}
		}
	}
	return out
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
