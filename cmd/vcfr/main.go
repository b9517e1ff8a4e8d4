package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/handrank/vcfr/pkg/cfrtree"
	"github.com/handrank/vcfr/pkg/kuhn"
	"github.com/handrank/vcfr/pkg/pushfold"
	"github.com/handrank/vcfr/pkg/solver"
	"github.com/handrank/vcfr/poker"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Kuhn     KuhnCmd     `cmd:"" help:"solve three-card Kuhn poker"`
	Pushfold PushfoldCmd `cmd:"" help:"solve the heads-up push/fold endgame"`
	Classify ClassifyCmd `cmd:"" help:"categorize a two-card starting hand"`
}

// ClassifyCmd prints the quick-reference category and the canonical
// 169-class notation for a two-card starting hand, without running a solve.
type ClassifyCmd struct {
	Card1 string `arg:"" help:"first hole card, e.g. As"`
	Card2 string `arg:"" help:"second hole card, e.g. Ks"`
}

func (cmd *ClassifyCmd) Run(ctx context.Context) error {
	c1, err := poker.ParseCard(cmd.Card1)
	if err != nil {
		return fmt.Errorf("parse %q: %w", cmd.Card1, err)
	}
	c2, err := poker.ParseCard(cmd.Card2)
	if err != nil {
		return fmt.Errorf("parse %q: %w", cmd.Card2, err)
	}

	category := poker.CategorizeHoleCards(c1, c2)
	class := pushfold.HandClass{
		High:   maxRank(c1.Rank(), c2.Rank()),
		Low:    minRank(c1.Rank(), c2.Rank()),
		Suited: c1.Suit() == c2.Suit(),
	}
	fmt.Printf("%s%s: class=%s category=%s\n", c1, c2, class, category)
	return nil
}

func maxRank(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minRank(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// KuhnCmd solves the three-card Kuhn poker tree.
type KuhnCmd struct {
	Iterations    int  `help:"number of CFR iterations" default:"1000000"`
	ProgressEvery int  `help:"log progress every N iterations (0 => iterations/100)" default:"0"`
	Check         bool `help:"after solving, sanity-check the zero-sum invariant via BestResponseValue"`
	Dump          bool `help:"print the solved tree (debug-diagnostic only)"`
}

// PushfoldCmd solves the heads-up push/fold endgame tree.
type PushfoldCmd struct {
	Iterations    int     `help:"number of CFR iterations" default:"10000"`
	ProgressEvery int     `help:"log progress every N iterations (0 => iterations/100)" default:"0"`
	Stack         float64 `help:"effective stack, in big blinds" default:"10"`
	Ante          float64 `help:"ante, in big blinds" default:"0.125"`
	SmallBlind    float64 `help:"small blind, in big blinds" default:"0.5"`
	Check         bool    `help:"after solving, sanity-check the zero-sum invariant via BestResponseValue"`
	Evaluator     bool    `help:"build the equity table by dealing real showdowns through the hand evaluator instead of the fast strength-score proxy"`
	EquitySamples int     `help:"Monte Carlo trials per hand-class matchup when --evaluator is set" default:"200"`
	Seed          int64   `help:"RNG seed for --evaluator" default:"1"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("vcfr"),
		kong.Description("vectorized CFR solver for Kuhn poker and heads-up push/fold"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "kuhn":
		err = cli.Kuhn.Run(context.Background())
	case "pushfold":
		err = cli.Pushfold.Run(context.Background())
	case "classify <card1> <card2>":
		err = cli.Classify.Run(context.Background())
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func (cmd *KuhnCmd) Run(ctx context.Context) error {
	root, err := kuhn.BuildTree()
	if err != nil {
		return fmt.Errorf("build kuhn tree: %w", err)
	}

	runCfg := solver.RunConfig{Iterations: cmd.Iterations, ProgressEvery: cmd.ProgressEvery}
	if err := run(ctx, root, runCfg); err != nil {
		return err
	}

	if cmd.Check {
		prior := make([]float64, root.NumStates())
		for i := range prior {
			prior[i] = 1.0 / float64(len(prior))
		}
		if err := checkZeroSum(root, prior); err != nil {
			return err
		}
	}
	if cmd.Dump {
		fmt.Println(cfrtree.Dump(root))
	}
	return nil
}

func (cmd *PushfoldCmd) Run(ctx context.Context) error {
	cfg := pushfold.Config{Stack: cmd.Stack, Ante: cmd.Ante, SmallBlind: cmd.SmallBlind}
	classes := pushfold.AllHandClasses()

	var oracle pushfold.EquityOracle
	if cmd.Evaluator {
		log.Info().Int("samples_per_matchup", cmd.EquitySamples).Msg("building evaluator-backed equity table")
		oracle = pushfold.NewMonteCarloOracle(classes, cmd.EquitySamples, rand.New(rand.NewSource(cmd.Seed)))
	} else {
		oracle = pushfold.NewReferenceOracle(classes)
	}

	root, err := pushfold.BuildTree(cfg, oracle)
	if err != nil {
		return fmt.Errorf("build push/fold tree: %w", err)
	}

	runCfg := solver.RunConfig{Iterations: cmd.Iterations, ProgressEvery: cmd.ProgressEvery}
	if err := run(ctx, root, runCfg); err != nil {
		return err
	}

	if cmd.Check {
		numStates := root.NumStates()
		prior := make([]float64, numStates)
		for i := range prior {
			prior[i] = 1.0 / float64(numStates)
		}
		if err := checkZeroSum(root, prior); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, root *cfrtree.DecisionNode, cfg solver.RunConfig) error {
	eng := solver.NewEngine(root)
	start := time.Now()
	progress := func(p solver.Progress) {
		log.Info().Int("iteration", p.Iteration).Dur("iter_time", p.IterationTime).Msg("progress")
	}
	if err := eng.Run(ctx, cfg, progress); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info().Dur("duration", time.Since(start)).Int("iterations", cfg.Iterations).Msg("solve completed")
	return nil
}

func checkZeroSum(root *cfrtree.DecisionNode, prior []float64) error {
	evs, err := solver.BestResponseValue(root, prior)
	if err != nil {
		return fmt.Errorf("best response check: %w", err)
	}
	total := 0.0
	for s, ev := range evs {
		total += ev * prior[s]
	}
	log.Info().Float64("expected_root_value", total).Msg("zero-sum sanity check")
	return nil
}
