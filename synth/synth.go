// Package synth grows random, depth-bounded expression trees over a set of
// named columns.
package synth

import (
	"errors"
	"fmt"

	"github.com/robbyt/go-symeval/random"
	"github.com/robbyt/go-symeval/tree"
)

var (
	ErrNoColumns       = errors.New("no columns to bind variables to")
	ErrInvalidDepth    = errors.New("max depth must be at least 1")
	ErrInvalidTerminal = errors.New("terminal must be a leaf operation")
	ErrNilSource       = errors.New("random source is nil")
)

// Random grows a tree whose root is a binary operation. The root always gets
// two children at depth 2; below maxDepth each child is a binary operation or
// a terminal with equal probability, at maxDepth it is always a terminal.
// Every leaf therefore sits at depth >= 2 and, for maxDepth >= 2, <= maxDepth.
func Random(
	rng random.Source,
	columns []string,
	maxDepth int,
	opts ...FunctionalOption,
) (*tree.Tree, error) {
	if rng == nil {
		return nil, ErrNilSource
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying synth option: %w", err)
		}
	}
	for _, op := range cfg.Terminals {
		if op == tree.OpVariable && len(columns) == 0 {
			return nil, ErrNoColumns
		}
	}

	g := &grower{rng: rng, columns: columns, cfg: cfg, t: tree.New()}
	root := g.t.NewNode(g.binaryOp())
	if err := g.t.SetRoot(root); err != nil {
		return nil, err
	}
	if err := g.grow(root, 2, maxDepth); err != nil {
		return nil, err
	}
	// fill the memo so concurrent evaluators never write to the tree
	g.t.Size()
	g.t.Depth()
	return g.t, nil
}

type grower struct {
	rng     random.Source
	columns []string
	cfg     *Options
	t       *tree.Tree
}

func (g *grower) binaryOp() tree.Op {
	return tree.BinaryOps[g.rng.Int(len(tree.BinaryOps)-1)]
}

func (g *grower) grow(parent tree.NodeID, depth, maxDepth int) error {
	for range 2 {
		var child tree.NodeID
		if depth < maxDepth && g.rng.Float() > 0.5 {
			child = g.t.NewNode(g.binaryOp())
			if err := g.grow(child, depth+1, maxDepth); err != nil {
				return err
			}
		} else {
			child = g.terminal()
		}
		if err := g.t.AddChild(parent, child); err != nil {
			return err
		}
	}
	return nil
}

func (g *grower) terminal() tree.NodeID {
	op := g.cfg.Terminals[0]
	if n := len(g.cfg.Terminals); n > 1 {
		op = g.cfg.Terminals[g.rng.Int(n-1)]
	}
	if op == tree.OpConstant {
		return g.t.NewConstant(g.rng.FloatRange(g.cfg.MinWeight, g.cfg.MaxWeight))
	}
	name := g.columns[g.rng.IntRange(0, len(g.columns)-1)]
	return g.t.NewVariable(name, g.rng.FloatRange(g.cfg.MinWeight, g.cfg.MaxWeight))
}
