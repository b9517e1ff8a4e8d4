package cfrtree

import (
	"fmt"
	"strings"
)

// Dump renders a human-readable, indented view of the subtree rooted at n:
// node names, shapes, and current values. This is a debug-diagnostic aid
// only — the format is not a contract and may change freely.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	children, isDecision := n.Children()
	if !isDecision {
		fmt.Fprintf(b, "%sTerminal %q payouts=%v\n", indent, n.Name(), n.Payouts())
		return
	}

	strategy, _ := n.Strategy()
	numActions, numInfosets := strategy.Dims()
	fmt.Fprintf(b, "%sDecision %q actions=%d infosets=%d\n", indent, n.Name(), numActions, numInfosets)

	col := make([]float64, numActions)
	for i := 0; i < numInfosets; i++ {
		for a := 0; a < numActions; a++ {
			col[a] = strategy.At(a, i)
		}
		fmt.Fprintf(b, "%s  infoset[%d] strategy=%v\n", indent, i, col)
	}

	for _, c := range children {
		dump(b, c, depth+1)
	}
}
