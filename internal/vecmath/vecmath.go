// Package vecmath holds the small elementwise and per-infoset reduction
// kernels shared by the three vCFR traversals. Keeping them here (instead of
// inline in pkg/cfrtree) lets the arithmetic be unit tested against its
// boundary behaviors (0/0 division, uniform regret matching fallback)
// independently of the tree-walking code.
package vecmath

import "gonum.org/v1/gonum/floats"

// RegretEpsilon is the smoothing constant added to positive regrets before
// normalisation. It keeps every action's probability strictly positive
// whenever at least one regret is positive.
const RegretEpsilon = 1e-8

// SafeDenom returns x unless it is exactly zero, in which case it returns 1.
// Used anywhere a reach probability or infoset weight could legitimately be
// zero and the corresponding numerator is guaranteed to be zero too.
func SafeDenom(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

// InfosetReach computes, for each information set, the sum of the raw-state
// reach probabilities belonging to it: π_I[i] = Σ_{s∈infosets[i]} π[s].
func InfosetReach(pi []float64, infosets [][]int) []float64 {
	out := make([]float64, len(infosets))
	for i, set := range infosets {
		sum := 0.0
		for _, s := range set {
			sum += pi[s]
		}
		out[i] = sum
	}
	return out
}

// InfosetEV computes the reach-weighted average of a per-state value vector
// within each information set: ev_I[i] = (Σ_{s∈infosets[i]} values[s]·pi[s]) /
// safe_denom(π_I[i]).
func InfosetEV(values, pi []float64, infosets [][]int) []float64 {
	out := make([]float64, len(infosets))
	for i, set := range infosets {
		num := 0.0
		denom := 0.0
		for _, s := range set {
			num += values[s] * pi[s]
			denom += pi[s]
		}
		out[i] = num / SafeDenom(denom)
	}
	return out
}

// SafeDivElem computes dst[i] = numerator[i] / denom[i], substituting 1 for a
// zero denominator: when π[s]=0 the numerator is also 0, so the convention
// yields 0 rather than NaN.
func SafeDivElem(dst, numerator, denom []float64) {
	for i := range dst {
		d := denom[i]
		if d == 0 {
			d = 1
		}
		dst[i] = numerator[i] / d
	}
}

// MulElem computes dst = a ⊙ b elementwise, delegating to gonum's floats
// kernel rather than a hand-rolled loop.
func MulElem(dst, a, b []float64) {
	floats.MulTo(dst, a, b)
}

// Sum delegates to gonum's floats.Sum.
func Sum(v []float64) float64 {
	return floats.Sum(v)
}

// RegretMatch maps a column of accumulated regrets to a probability
// distribution: proportional to the positive part, with RegretEpsilon
// smoothing, or uniform if every entry is non-positive.
func RegretMatch(regrets []float64, epsilon float64, dst []float64) {
	posSum := 0.0
	for _, r := range regrets {
		if r > 0 {
			posSum += r
		}
	}
	if posSum == 0 {
		u := 1.0 / float64(len(regrets))
		for i := range dst {
			dst[i] = u
		}
		return
	}

	total := 0.0
	for i, r := range regrets {
		v := 0.0
		if r > 0 {
			v = r
		}
		v += epsilon
		dst[i] = v
		total += v
	}
	for i := range dst {
		dst[i] /= total
	}
}
