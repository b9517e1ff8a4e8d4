package pushfold

import "github.com/handrank/vcfr/pkg/cfrtree"

// Config fixes the stakes the heads-up endgame is played at: effective
// stack in big blinds, and the ante/small-blind sizes relative to that
// stack.
type Config struct {
	Stack      float64
	Ante       float64
	SmallBlind float64
}

// DefaultConfig returns the standard heads-up push/fold stakes: stack 10,
// ante 0.125, small blind 0.5.
func DefaultConfig() Config {
	return Config{Stack: 10, Ante: 0.125, SmallBlind: 0.5}
}

// BuildTree constructs the heads-up push/fold endgame tree: the small blind
// chooses {push, fold}; if they push, the big blind chooses {call, fold}; a
// call goes to showdown weighted by oracle equity. State s encodes the pair
// of hand classes (smallBlindClass, bigBlindClass) as s = smallBlindClass*169
// + bigBlindClass, so an acting player's information set is exactly the set
// of states sharing their own hand class — their own row (small blind) or
// column (big blind) of the 169x169 grid.
func BuildTree(cfg Config, oracle EquityOracle) (*cfrtree.DecisionNode, error) {
	classes := AllHandClasses()
	n := len(classes)
	numStates := n * n

	sbInfosets := make([][]int, n)
	bbInfosets := make([][]int, n)
	for i := 0; i < n; i++ {
		sbInfosets[i] = make([]int, 0, n)
		bbInfosets[i] = make([]int, 0, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := i*n + j
			sbInfosets[i] = append(sbInfosets[i], s)
			bbInfosets[j] = append(bbInfosets[j], s)
		}
	}

	sbFoldPayout := constant(numStates, -(cfg.SmallBlind + cfg.Ante))
	bbFoldPayout := constant(numStates, 1+cfg.Ante)
	callPayout := make([]float64, numStates)
	potFactor := 2 * (cfg.Stack + cfg.Ante)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := i*n + j
			callPayout[s] = potFactor * (oracle.Equity(i, j) - 0.5)
		}
	}

	showdown, err := cfrtree.NewTerminalNode("push-call-showdown", callPayout)
	if err != nil {
		return nil, err
	}
	bbFold, err := cfrtree.NewTerminalNode("push-fold", bbFoldPayout)
	if err != nil {
		return nil, err
	}
	bbDecision, err := cfrtree.NewDecisionNode("bb-facing-push", bbInfosets, -1, nil, []cfrtree.Node{showdown, bbFold})
	if err != nil {
		return nil, err
	}

	sbFold, err := cfrtree.NewTerminalNode("sb-fold", sbFoldPayout)
	if err != nil {
		return nil, err
	}

	prior := make([]float64, numStates)
	uniform := 1.0 / float64(numStates)
	for i := range prior {
		prior[i] = uniform
	}

	return cfrtree.NewDecisionNode("sb-root", sbInfosets, 1, prior, []cfrtree.Node{bbDecision, sbFold})
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
