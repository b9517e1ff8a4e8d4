package cfrtree

import "github.com/handrank/vcfr/internal/vecmath"

// UpdateEV runs the upward pass: every child computes its own EV first,
// then this node's per-state EV is the realization-weighted average of the
// children's EVs (a terminal child's own fixed payouts, a decision child's
// own evs), divided by this node's reach — with the standard 0/0
// convention (zero reach means zero EV, not NaN).
func (d *DecisionNode) UpdateEV() error {
	if err := forEachChild(d.children, func(_ int, c Node) error {
		return c.UpdateEV()
	}); err != nil {
		return err
	}

	numStates := d.NumStates()
	numerator := make([]float64, numStates)
	term := make([]float64, numStates)
	for _, c := range d.children {
		vecmath.MulElem(term, c.Payouts(), c.StateProbabilities())
		for s := 0; s < numStates; s++ {
			numerator[s] += term[s]
		}
	}

	vecmath.SafeDivElem(d.evs, numerator, d.statePr)
	return nil
}
