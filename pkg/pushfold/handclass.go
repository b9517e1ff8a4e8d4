// Package pushfold builds the heads-up push/fold endgame tree: an external
// collaborator of pkg/cfrtree, exactly like pkg/kuhn, but over the standard
// 169 preflop hand classes instead of a 3-card deck.
package pushfold

import "github.com/handrank/vcfr/poker"

// HandClass is one of the 169 standard preflop hand classes: a pocket pair,
// a suited combination, or an offsuit combination of two distinct ranks.
type HandClass struct {
	High   uint8 // poker.Rank of the higher card (or the pair rank)
	Low    uint8 // poker.Rank of the lower card (equals High for a pair)
	Suited bool  // meaningless when High == Low
}

// Pair reports whether the class is a pocket pair.
func (h HandClass) Pair() bool { return h.High == h.Low }

// String renders the class in standard notation: "AA", "AKs", "AKo".
func (h HandClass) String() string {
	high := string(poker.RankChar(h.High))
	low := string(poker.RankChar(h.Low))
	if h.Pair() {
		return high + high
	}
	if h.Suited {
		return high + low + "s"
	}
	return high + low + "o"
}

// AllHandClasses returns the 169 standard classes in a fixed, deterministic
// order: 13 pairs (Ace down to Two), then for every unordered pair of
// distinct ranks (high, low) first the suited then the offsuit combination.
// The returned slice's index is the class's canonical index, used throughout
// this package as the row/column coordinate of the 169x169 state space.
func AllHandClasses() []HandClass {
	ranks := []uint8{poker.Ace, poker.King, poker.Queen, poker.Jack, poker.Ten,
		poker.Nine, poker.Eight, poker.Seven, poker.Six, poker.Five, poker.Four, poker.Three, poker.Two}

	classes := make([]HandClass, 0, 169)
	for _, r := range ranks {
		classes = append(classes, HandClass{High: r, Low: r})
	}
	for hi := 0; hi < len(ranks); hi++ {
		for lo := hi + 1; lo < len(ranks); lo++ {
			classes = append(classes, HandClass{High: ranks[hi], Low: ranks[lo], Suited: true})
			classes = append(classes, HandClass{High: ranks[hi], Low: ranks[lo], Suited: false})
		}
	}
	return classes
}

// NumHandClasses is the fixed size of the preflop abstraction this package
// uses: 13 pairs + 78 suited + 78 offsuit combinations.
const NumHandClasses = 169

// strengthScore is a coarse, monotone ordering used only to seed
// ReferenceOracle (equity.go) and to bias the push/fold range a solved
// strategy should land on; it is not itself a win-probability.
func strengthScore(h HandClass) float64 {
	highValue := poker.RankValue(h.High)
	lowValue := poker.RankValue(h.Low)
	score := float64(highValue*2 + lowValue)
	if h.Pair() {
		score += 6 // pairs play above a non-paired hand of the same high card
	}
	if h.Suited {
		score += 1
	}
	return score
}
