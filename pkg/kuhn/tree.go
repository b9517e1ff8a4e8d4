// Package kuhn builds the three-card Kuhn poker game tree as an external
// collaborator of pkg/cfrtree: a game-specific constructor that hands the
// engine a fully formed root node and otherwise has no part in the CFR
// iteration itself.
package kuhn

import "github.com/handrank/vcfr/pkg/cfrtree"

// Card ranks, used only to index information sets consistently within this
// package; Kuhn poker is played with a 3-card deck {J, Q, K}.
const (
	jack = iota
	queen
	king
)

// deals enumerates the 6 deal orderings (player-one card, player-two card):
// KQ KJ QK QJ JK JQ.
var deals = [6][2]int{
	{king, queen},
	{king, jack},
	{queen, king},
	{queen, jack},
	{jack, king},
	{jack, queen},
}

// statesByCard groups deal indices by one player's card, in king/queen/jack
// order, giving the 3-way information-set partition each player's own
// decision nodes use (a player's information set is exactly their own card;
// they cannot see the opponent's).
func statesByCard(cardOf func(deal [2]int) int) [][]int {
	ranks := []int{king, queen, jack}
	result := make([][]int, 0, len(ranks))
	for _, rank := range ranks {
		var states []int
		for s, d := range deals {
			if cardOf(d) == rank {
				states = append(states, s)
			}
		}
		result = append(result, states)
	}
	return result
}

func player1Card(d [2]int) int { return d[0] }
func player2Card(d [2]int) int { return d[1] }

// beats reports whether rank a beats rank b under Kuhn's total order
// (King > Queen > Jack).
func beats(a, b int) bool { return a > b }

// showdownPayouts returns, per deal state, +amount if player one wins by
// card rank and -amount if player two wins. Kuhn poker has no ties: every
// deal uses two distinct cards out of three.
func showdownPayouts(amount float64) []float64 {
	out := make([]float64, len(deals))
	for s, d := range deals {
		if beats(player1Card(d), player2Card(d)) {
			out[s] = amount
		} else {
			out[s] = -amount
		}
	}
	return out
}

func constantPayouts(amount float64) []float64 {
	out := make([]float64, len(deals))
	for i := range out {
		out[i] = amount
	}
	return out
}

// BuildTree constructs the three-card Kuhn poker game tree: six equally
// likely deal orderings, player one choosing {bet, check}, the opponent
// responding, and — on a check followed by a bet — player one getting a
// final {call, fold} decision. A showdown after a bet and a call pays 2 chips
// to the winner, a showdown after two checks pays 1 chip; a fold pays 1 chip
// to whoever did not fold.
func BuildTree() (*cfrtree.DecisionNode, error) {
	p1Infosets := statesByCard(player1Card)
	p2Infosets := statesByCard(player2Card)

	betCall, err := cfrtree.NewTerminalNode("bet-call-showdown", showdownPayouts(2))
	if err != nil {
		return nil, err
	}
	betFold, err := cfrtree.NewTerminalNode("bet-fold", constantPayouts(1))
	if err != nil {
		return nil, err
	}
	rootBet, err := cfrtree.NewDecisionNode("p2-facing-bet", p2Infosets, -1, nil, []cfrtree.Node{betCall, betFold})
	if err != nil {
		return nil, err
	}

	checkCheck, err := cfrtree.NewTerminalNode("check-check-showdown", showdownPayouts(1))
	if err != nil {
		return nil, err
	}

	checkBetCall, err := cfrtree.NewTerminalNode("check-bet-call-showdown", showdownPayouts(2))
	if err != nil {
		return nil, err
	}
	checkBetFold, err := cfrtree.NewTerminalNode("check-bet-fold", constantPayouts(-1))
	if err != nil {
		return nil, err
	}
	checkBet, err := cfrtree.NewDecisionNode("p1-facing-bet-after-check", p1Infosets, 1, nil, []cfrtree.Node{checkBetCall, checkBetFold})
	if err != nil {
		return nil, err
	}

	rootCheck, err := cfrtree.NewDecisionNode("p2-facing-check", p2Infosets, -1, nil, []cfrtree.Node{checkBet, checkCheck})
	if err != nil {
		return nil, err
	}

	prior := make([]float64, len(deals))
	for i := range prior {
		prior[i] = 1.0 / float64(len(deals))
	}

	return cfrtree.NewDecisionNode("p1-root", p1Infosets, 1, prior, []cfrtree.Node{rootBet, rootCheck})
}

// InfosetRank maps an information-set index (within p1Infosets/p2Infosets)
// back to the card rank it represents, for callers that want to report a
// solved strategy by card name rather than by raw index.
func InfosetRank(infosetIndex int) int {
	return []int{king, queen, jack}[infosetIndex]
}

// RankName renders a card rank as a single letter, matching the KQ/KJ/...
// deal notation used throughout this package.
func RankName(rank int) string {
	switch rank {
	case king:
		return "K"
	case queen:
		return "Q"
	case jack:
		return "J"
	default:
		return "?"
	}
}
