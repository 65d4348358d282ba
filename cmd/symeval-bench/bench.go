package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	scalarCompiler "github.com/robbyt/go-symeval/engines/scalar/compiler"
	scalarEvaluator "github.com/robbyt/go-symeval/engines/scalar/evaluator"
	vectorCompiler "github.com/robbyt/go-symeval/engines/vector/compiler"
	vectorEvaluator "github.com/robbyt/go-symeval/engines/vector/evaluator"
	"github.com/robbyt/go-symeval/platform/dataset"
	"github.com/robbyt/go-symeval/random"
	"github.com/robbyt/go-symeval/synth"
	"github.com/robbyt/go-symeval/tree"
	"golang.org/x/sync/errgroup"
)

var errMismatch = errors.New("engines disagree")

// relTolerance bounds the relative difference --verify accepts.
const relTolerance = 1e-9

type config struct {
	trees   int
	rows    int
	vars    int
	depth   int
	seed    uint64
	workers int
	grain   int
	verify  bool
	print   bool
	json    bool

	logHandler slog.Handler
}

func (c config) validate() error {
	switch {
	case c.trees < 1:
		return fmt.Errorf("--trees must be at least 1, got %d", c.trees)
	case c.rows < 1:
		return fmt.Errorf("--rows must be at least 1, got %d", c.rows)
	case c.vars < 1:
		return fmt.Errorf("--vars must be at least 1, got %d", c.vars)
	case c.depth < 1:
		return fmt.Errorf("--depth must be at least 1, got %d", c.depth)
	case c.workers < 1:
		return fmt.Errorf("--workers must be at least 1, got %d", c.workers)
	case c.grain < 1:
		return fmt.Errorf("--grain must be at least 1, got %d", c.grain)
	}
	return nil
}

type result struct {
	Mode        string        `json:"mode"`
	Trees       int           `json:"trees"`
	Rows        int           `json:"rows"`
	Nodes       int           `json:"nodes"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	NodesPerSec float64       `json:"nodes_per_sec"`

	values [][]float64
}

type report struct {
	Seed       uint64   `json:"seed"`
	Depth      int      `json:"depth"`
	Vars       int      `json:"vars"`
	Workers    int      `json:"workers"`
	Grain      int      `json:"grain"`
	Verified   bool     `json:"verified"`
	Mismatches int      `json:"mismatches"`
	Results    []result `json:"results"`
}

func run(ctx context.Context, cfg config, w io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.logHandler == nil {
		cfg.logHandler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(cfg.logHandler).WithGroup("bench")

	rng := random.New(cfg.seed)
	ds, err := dataset.Random(rng, cfg.vars, cfg.rows)
	if err != nil {
		return fmt.Errorf("failed to build dataset: %w", err)
	}
	defer ds.Release()

	trees := make([]*tree.Tree, cfg.trees)
	nodes := 0
	for i := range trees {
		trees[i], err = synth.Random(rng, ds.Names(), cfg.depth)
		if err != nil {
			return fmt.Errorf("failed to grow tree %d: %w", i, err)
		}
		nodes += trees[i].Size()
		if cfg.print && !cfg.json {
			fmt.Fprintf(w, "%4d  %s\n", i, trees[i])
		}
	}
	logger.Debug("population ready", "trees", len(trees), "nodes", nodes, "rows", cfg.rows)

	modes := []struct {
		name string
		fn   func(context.Context, config, *dataset.Dataset, []*tree.Tree) ([][]float64, error)
	}{
		{"scalar", scalarSequential},
		{"scalar-parallel", scalarParallel},
		{"vector", vectorRun},
	}

	rep := report{
		Seed:     cfg.seed,
		Depth:    cfg.depth,
		Vars:     cfg.vars,
		Workers:  cfg.workers,
		Grain:    cfg.grain,
		Verified: cfg.verify,
	}
	for _, m := range modes {
		start := time.Now()
		values, err := m.fn(ctx, cfg, ds, trees)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
		logger.Debug("mode complete", "mode", m.name, "elapsed", elapsed)

		rep.Results = append(rep.Results, result{
			Mode:        m.name,
			Trees:       len(trees),
			Rows:        cfg.rows,
			Nodes:       nodes,
			Elapsed:     elapsed,
			NodesPerSec: float64(nodes) * float64(cfg.rows) / max(elapsed.Seconds(), 1e-9),
			values:      values,
		})
	}

	if cfg.verify {
		want := rep.Results[0].values
		for _, r := range rep.Results[1:] {
			rep.Mismatches += compare(want, r.values)
		}
	}

	if cfg.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		writeTable(w, rep)
	}

	if rep.Mismatches > 0 {
		return fmt.Errorf("%w: %d values differ", errMismatch, rep.Mismatches)
	}
	return nil
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func compileScalar(ds *dataset.Dataset, trees []*tree.Tree) ([]scalarCompiler.Program, error) {
	programs := make([]scalarCompiler.Program, len(trees))
	for i, t := range trees {
		code, err := scalarCompiler.Build(t, ds)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		programs[i] = code
	}
	return programs, nil
}

func scalarSequential(
	ctx context.Context,
	cfg config,
	ds *dataset.Dataset,
	trees []*tree.Tree,
) ([][]float64, error) {
	programs, err := compileScalar(ds, trees)
	if err != nil {
		return nil, err
	}
	rows := allRows(cfg.rows)

	out := make([][]float64, len(programs))
	for i, code := range programs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i], err = scalarEvaluator.RunRows(code, rows)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return out, nil
}

// scalarParallel spreads trees across goroutines; each program is owned by
// the goroutine evaluating it.
func scalarParallel(
	ctx context.Context,
	cfg config,
	ds *dataset.Dataset,
	trees []*tree.Tree,
) ([][]float64, error) {
	programs, err := compileScalar(ds, trees)
	if err != nil {
		return nil, err
	}
	rows := allRows(cfg.rows)

	out := make([][]float64, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, code := range programs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, err := scalarEvaluator.RunRows(code, rows)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			out[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func vectorRun(
	ctx context.Context,
	cfg config,
	ds *dataset.Dataset,
	trees []*tree.Tree,
) ([][]float64, error) {
	in, err := vectorEvaluator.NewInterpreter(cfg.logHandler, ds,
		vectorEvaluator.WithWorkers(cfg.workers),
		vectorEvaluator.WithGrainSize(cfg.grain),
	)
	if err != nil {
		return nil, err
	}

	programs := make([]vectorCompiler.Program, len(trees))
	for i, t := range trees {
		programs[i], err = in.Compile(t)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	out := make([][]float64, len(programs))
	for i, code := range programs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i], err = in.Run(code)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return out, nil
}

// compare counts values of got that are not within relTolerance of want.
// NaN matches NaN and infinities must match exactly.
func compare(want, got [][]float64) int {
	mismatches := 0
	for i := range want {
		for r := range want[i] {
			if !within(want[i][r], got[i][r]) {
				mismatches++
			}
		}
	}
	return mismatches
}

func within(a, b float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	}
	return math.Abs(a-b) <= relTolerance*math.Max(1, math.Abs(a))
}

func writeTable(w io.Writer, rep report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetAutoIndex(false)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"Mode", "Trees", "Rows", "Nodes", "Elapsed", "Throughput"})
	for _, r := range rep.Results {
		t.AppendRow(table.Row{
			r.Mode,
			humanize.Comma(int64(r.Trees)),
			humanize.Comma(int64(r.Rows)),
			humanize.Comma(int64(r.Nodes)),
			r.Elapsed.Round(time.Microsecond).String(),
			humanize.SIWithDigits(r.NodesPerSec, 2, "nodes/s"),
		})
	}
	if rep.Verified {
		t.AppendFooter(table.Row{"verify", "", "", "", "", fmt.Sprintf("%d mismatches", rep.Mismatches)})
	}
	t.Render()
}
