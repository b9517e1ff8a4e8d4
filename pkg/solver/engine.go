package solver

import (
	"context"
	"time"

	"github.com/handrank/vcfr/pkg/cfrtree"
)

// Progress is emitted to the caller-supplied callback during Run.
type Progress struct {
	Iteration     int
	IterationTime time.Duration
}

// Engine runs CFR iterations over a single pre-built game tree.
type Engine struct {
	root cfrtree.Node
}

// NewEngine wraps an already-constructed tree root. Tree construction is the
// job of an external collaborator (pkg/kuhn, pkg/pushfold).
func NewEngine(root cfrtree.Node) *Engine {
	return &Engine{root: root}
}

// Run executes cfg.Iterations full CFR iterations: for each iteration, the
// downward pass (probability propagation), then the upward pass (expected
// value backup), then the strategy-update pass, strictly in that order,
// since each pass consumes values the previous one produced. It returns the
// first error encountered by any pass, wrapped with the iteration and pass
// name that produced it.
func (e *Engine) Run(ctx context.Context, cfg RunConfig, progress func(Progress)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	batch := cfg.progressBatch()

	for i := 1; i <= cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		if err := e.root.UpdateProbabilities(); err != nil {
			return wrapIterationError(i, "downward", err)
		}
		if err := e.root.UpdateEV(); err != nil {
			return wrapIterationError(i, "upward", err)
		}
		if err := e.root.UpdateStrategy(); err != nil {
			return wrapIterationError(i, "strategy-update", err)
		}
		elapsed := time.Since(start)

		if progress != nil && (i%batch == 0 || i == cfg.Iterations) {
			progress(Progress{Iteration: i, IterationTime: elapsed})
		}
	}

	return nil
}

// Root returns the tree root the engine is driving, for callers that want to
// inspect the solved strategy (cfrtree.Dump, BestResponseValue, ...) once
// Run has returned.
func (e *Engine) Root() cfrtree.Node {
	return e.root
}
