// Package solver drives a cfrtree game tree through repeated CFR iterations
// and reports progress. It owns no domain knowledge of any particular game —
// tree construction is left to pkg/kuhn and pkg/pushfold — only the loop that
// runs the three passes in order and the configuration that governs it.
package solver

import (
	"errors"
	"fmt"
)

// RunConfig controls an Engine.Run call: plain fields, a Validate method,
// no validation library.
type RunConfig struct {
	// Iterations is the number of full downward/upward/strategy-update
	// cycles to run.
	Iterations int

	// ProgressEvery logs a Progress update every N completed iterations.
	// Zero uses a batch of Iterations/100 (at least 1). A final update is
	// always emitted.
	ProgressEvery int
}

// Validate ensures the run parameters are safe to use.
func (c RunConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// DefaultRunConfig returns a minimal configuration suitable for local
// experimentation against the reference games.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Iterations:    1000,
		ProgressEvery: 100,
	}
}

func (c RunConfig) progressBatch() int {
	if c.ProgressEvery > 0 {
		return c.ProgressEvery
	}
	batch := c.Iterations / 100
	if batch == 0 {
		batch = 1
	}
	return batch
}

func wrapIterationError(iteration int, pass string, err error) error {
	return fmt.Errorf("iteration %d: %s pass: %w", iteration, pass, err)
}
