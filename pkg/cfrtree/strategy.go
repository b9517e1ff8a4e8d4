package cfrtree

import "github.com/handrank/vcfr/internal/vecmath"

// UpdateStrategy runs the strategy-update pass. It must run
// after both the downward and upward passes have completed for this
// iteration: it consumes state_probabilities (from the downward pass) and
// evs (from the upward pass) to compute counterfactual regret, applies
// regret matching to obtain the next strategy, folds the result into the
// running average strategy, and finally recurses into children.
func (d *DecisionNode) UpdateStrategy() error {
	piI := vecmath.InfosetReach(d.statePr, d.infosets)
	nodeEV := vecmath.InfosetEV(d.evs, d.statePr, d.infosets)

	numActions := d.NumActions()
	numInfosets := d.NumInfosets()

	// action_evs[a,i]: the EV of committing to action a at information set i,
	// evaluated using THIS node's infosets partition over the child's own
	// payouts and reach.
	actionEV := make([][]float64, numActions)
	for a, c := range d.children {
		actionEV[a] = vecmath.InfosetEV(c.Payouts(), c.StateProbabilities(), d.infosets)
	}

	// Immediate counterfactual regret and its running-mean accumulation.
	scale := float64(d.iterCount) / float64(d.iterCount+1)
	for a := 0; a < numActions; a++ {
		for i := 0; i < numInfosets; i++ {
			curRegret := (actionEV[a][i] - nodeEV[i]) * d.sign
			updated := d.regrets.At(a, i) + curRegret*piI[i]
			d.regrets.Set(a, i, updated*scale)
		}
	}

	// Regret matching, one information set (column) at a time.
	regretCol := make([]float64, numActions)
	strategyCol := make([]float64, numActions)
	for i := 0; i < numInfosets; i++ {
		for a := 0; a < numActions; a++ {
			regretCol[a] = d.regrets.At(a, i)
		}
		vecmath.RegretMatch(regretCol, vecmath.RegretEpsilon, strategyCol)
		for a := 0; a < numActions; a++ {
			d.strategy.Set(a, i, strategyCol[a])
		}
	}

	// Average-strategy update, weighted by reach.
	for i := 0; i < numInfosets; i++ {
		denom := vecmath.SafeDenom(d.totalProb[i] + piI[i])
		for a := 0; a < numActions; a++ {
			avg := d.avgStrategy.At(a, i)*d.totalProb[i] + d.strategy.At(a, i)*piI[i]
			d.avgStrategy.Set(a, i, avg/denom)
		}
	}

	for i := 0; i < numInfosets; i++ {
		d.totalProb[i] += piI[i]
	}
	d.iterCount++

	return forEachChild(d.children, func(_ int, c Node) error {
		return c.UpdateStrategy()
	})
}
