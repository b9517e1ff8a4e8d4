package pushfold

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/handrank/vcfr/poker"
)

// EquityOracle returns the all-in equity of hand class i against hand class
// j: the probability that i's two hole cards win (counting a split pot as
// half a win) were both hands taken to showdown with no further action.
// Implementations must satisfy the symmetry requirement
// Equity(i, j) == 1 - Equity(j, i).
type EquityOracle interface {
	Equity(i, j int) float64
}

// ReferenceOracle is a deterministic equity table built from a coarse,
// monotone hand-strength score rather than a real hand evaluator: it never
// deals a card or runs a showdown, but its ordering of hand strength is
// faithful enough that a push/fold solve over it produces the qualitative
// shape a heads-up push/fold range should have (wide small-blind pushing
// range, narrower big-blind calling range). MonteCarloOracle is the
// evaluator-backed alternative for when real showdown equities, not a
// strength proxy, are wanted.
//
// The symmetry invariant is enforced structurally rather than by trusting
// the constructor: only the upper triangle (i<j) is ever stored, and a
// lookup with i>j returns 1 minus the stored value. There is no code path
// through which equities[i][j] and equities[j][i] could be set
// inconsistently.
type ReferenceOracle struct {
	classes []HandClass
	scores  []float64
	// upper[i][j-i-1] holds Equity(i, j) for i < j.
	upper [][]float64
}

// NewReferenceOracle builds a reference oracle over the given hand classes,
// ordered as returned by AllHandClasses.
func NewReferenceOracle(classes []HandClass) *ReferenceOracle {
	n := len(classes)
	scores := make([]float64, n)
	for i, h := range classes {
		scores[i] = strengthScore(h)
	}

	upper := make([][]float64, n)
	for i := 0; i < n; i++ {
		upper[i] = make([]float64, n-i-1)
		for j := i + 1; j < n; j++ {
			upper[i][j-i-1] = pairEquity(scores[i], scores[j])
		}
	}

	return &ReferenceOracle{classes: classes, scores: scores, upper: upper}
}

// Equity implements EquityOracle.
func (o *ReferenceOracle) Equity(i, j int) float64 {
	if i == j {
		return 0.5
	}
	if i < j {
		return o.upper[i][j-i-1]
	}
	return 1 - o.Equity(j, i)
}

// pairEquity maps a strength-score difference to a win probability using a
// logistic curve, clamped away from the extremes so no matchup is treated
// as a certainty (heads-up all-ins rarely are).
func pairEquity(scoreI, scoreJ float64) float64 {
	const slope = 0.12
	diff := scoreI - scoreJ
	p := 1 / (1 + math.Exp(-slope*diff))
	const clamp = 0.03
	if p < clamp {
		return clamp
	}
	if p > 1-clamp {
		return 1 - clamp
	}
	return p
}

// DefaultMonteCarloSamples is the per-matchup trial count NewMonteCarloOracle
// uses when a caller has no particular speed/accuracy tradeoff in mind.
const DefaultMonteCarloSamples = 200

// MonteCarloOracle computes equities by actually dealing concrete hole cards
// and board runouts and scoring the resulting showdowns with the real
// 7-card evaluator (poker.Evaluate7Cards, poker.CompareHands), rather than
// leaning on a hand-strength proxy the way ReferenceOracle does. It is built
// once, up front, by running samplesPerMatchup Monte Carlo trials for every
// one of the 169x169 class pairs and caching the result, since BuildTree
// calls Equity(i, j) repeatedly while laying out the showdown node.
type MonteCarloOracle struct {
	upper [][]float64
}

// NewMonteCarloOracle builds a Monte Carlo equity oracle over classes,
// running samplesPerMatchup trials per matchup. Work is split across a pool
// of workers, one per CPU core (capped at 8). Every matchup gets its own RNG
// seeded from rng in a fixed order, so results stay reproducible for a fixed
// seed regardless of how many cores actually run the work.
func NewMonteCarloOracle(classes []HandClass, samplesPerMatchup int, rng *rand.Rand) *MonteCarloOracle {
	n := len(classes)
	upper := make([][]float64, n)
	for i := range upper {
		upper[i] = make([]float64, n-i-1)
	}

	type matchup struct{ i, j int }
	jobs := make([]matchup, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs = append(jobs, matchup{i, j})
		}
	}

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	seeds := make([]int64, len(jobs))
	for k := range seeds {
		seeds[k] = rng.Int63()
	}

	g, _ := errgroup.WithContext(context.Background())
	chunk := (len(jobs) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(jobs) {
			break
		}
		hi := lo + chunk
		if hi > len(jobs) {
			hi = len(jobs)
		}
		share := jobs[lo:hi]
		shareSeeds := seeds[lo:hi]

		g.Go(func() error {
			for k, m := range share {
				matchupRng := rand.New(rand.NewSource(shareSeeds[k]))
				upper[m.i][m.j-m.i-1] = estimateClassEquity(classes[m.i], classes[m.j], samplesPerMatchup, matchupRng)
			}
			return nil
		})
	}
	// Workers never return a non-nil error, so this can't fail.
	_ = g.Wait()

	return &MonteCarloOracle{upper: upper}
}

// Equity implements EquityOracle.
func (o *MonteCarloOracle) Equity(i, j int) float64 {
	if i == j {
		return 0.5
	}
	if i < j {
		return o.upper[i][j-i-1]
	}
	return 1 - o.Equity(j, i)
}

// estimateClassEquity runs samples Monte Carlo trials of a showdown between
// a representative hand from class a and one from class b: each trial
// samples concrete hole cards for both classes, deals a 5-card board from a
// freshly shuffled deck, and scores the resulting 7-card hands.
func estimateClassEquity(a, b HandClass, samples int, rng *rand.Rand) float64 {
	wins, ties, valid := 0, 0, 0

	for s := 0; s < samples; s++ {
		heroHole, used, ok := sampleHoleCards(a, poker.Hand(0), rng)
		if !ok {
			continue
		}
		oppHole, used, ok := sampleHoleCards(b, used, rng)
		if !ok {
			continue
		}

		board := dealBoard(used, rng)
		if len(board) != 5 {
			continue
		}

		heroHand := poker.NewHand(append([]poker.Card{heroHole[0], heroHole[1]}, board...)...)
		oppHand := poker.NewHand(append([]poker.Card{oppHole[0], oppHole[1]}, board...)...)

		switch poker.CompareHands(poker.Evaluate7Cards(heroHand), poker.Evaluate7Cards(oppHand)) {
		case 1:
			wins++
		case 0:
			ties++
		}
		valid++
	}

	if valid == 0 {
		return 0.5
	}
	return (float64(wins) + float64(ties)/2) / float64(valid)
}

// dealBoard draws 5 cards not already in used from a freshly shuffled deck.
func dealBoard(used poker.Hand, rng *rand.Rand) []poker.Card {
	deck := poker.NewDeck(rng)
	board := make([]poker.Card, 0, 5)
	for _, c := range deck.Deal(52) {
		if used.HasCard(c) {
			continue
		}
		board = append(board, c)
		if len(board) == 5 {
			break
		}
	}
	return board
}

// sampleHoleCards draws two concrete cards consistent with class (same
// ranks; same suit if class.Suited, distinct suits otherwise) that avoid
// every card already in used, and returns the updated used set alongside
// them. It reports false if its random draws found no free combination
// within a bounded number of attempts; the more of the class's cards used
// already holds, the likelier that is.
func sampleHoleCards(class HandClass, used poker.Hand, rng *rand.Rand) ([2]poker.Card, poker.Hand, bool) {
	const maxAttempts = 64
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var s1, s2 uint8
		if class.Pair() || !class.Suited {
			s1 = uint8(rng.Intn(4))
			s2 = uint8(rng.Intn(4))
			for s2 == s1 {
				s2 = uint8(rng.Intn(4))
			}
		} else {
			s1 = uint8(rng.Intn(4))
			s2 = s1
		}

		c1 := poker.NewCard(class.High, s1)
		c2 := poker.NewCard(class.Low, s2)
		if c1 == c2 || used.HasCard(c1) || used.HasCard(c2) {
			continue
		}

		next := used
		next.AddCard(c1)
		next.AddCard(c2)
		return [2]poker.Card{c1, c2}, next, true
	}
	return [2]poker.Card{}, used, false
}
