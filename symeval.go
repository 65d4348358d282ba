// Package symeval compiles symbolic-regression expression trees into flat
// programs and evaluates them against columns of data, either one row at a
// time (scalar engine) or over every row at once (vector engine).
package symeval

import (
	"fmt"

	scalarCompiler "github.com/robbyt/go-symeval/engines/scalar/compiler"
	scalarEvaluator "github.com/robbyt/go-symeval/engines/scalar/evaluator"
	"github.com/robbyt/go-symeval/engines/types"
	vectorCompiler "github.com/robbyt/go-symeval/engines/vector/compiler"
	vectorEvaluator "github.com/robbyt/go-symeval/engines/vector/evaluator"
	"github.com/robbyt/go-symeval/options"
	"github.com/robbyt/go-symeval/platform"
	"github.com/robbyt/go-symeval/platform/script"
	"github.com/robbyt/go-symeval/tree"
)

// NewScalarEvaluator creates an evaluator that runs the tree row by row
func NewScalarEvaluator(opts ...options.Option) (*EvaluatorWrapper, error) {
	return newEvaluator(types.Scalar, opts)
}

// NewVectorEvaluator creates an evaluator that runs the tree over whole columns
func NewVectorEvaluator(opts ...options.Option) (*EvaluatorWrapper, error) {
	return newEvaluator(types.Vector, opts)
}

// FromTree creates an evaluator for t on the given engine
func FromTree(engine types.Type, t *tree.Tree, opts ...options.Option) (*EvaluatorWrapper, error) {
	allOpts := append([]options.Option{options.WithTree(t)}, opts...)
	return newEvaluator(engine, allOpts)
}

func newEvaluator(engine types.Type, opts []options.Option) (*EvaluatorWrapper, error) {
	cfg := options.DefaultConfig(engine)

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Fill in anything an option cleared
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return createEvaluator(cfg)
}

// createEvaluator compiles the configured tree and wraps the engine's evaluator
func createEvaluator(cfg *options.Config) (*EvaluatorWrapper, error) {
	compiler, err := newCompiler(cfg)
	if err != nil {
		return nil, err
	}

	execUnit, err := script.NewExecutableUnit(
		cfg.GetHandler(),
		cfg.GetID(),
		cfg.GetTree(),
		compiler,
		cfg.GetBinding(),
	)
	if err != nil {
		return nil, err
	}

	var delegate platform.Evaluator
	switch cfg.GetEngineType() {
	case types.Scalar:
		delegate = scalarEvaluator.New(cfg.GetHandler(), execUnit,
			scalarEvaluator.WithMetrics(cfg.GetMetrics()))
	case types.Vector:
		evalOpts := []vectorEvaluator.FunctionalOption{
			vectorEvaluator.WithMetrics(cfg.GetMetrics()),
		}
		if n := cfg.GetWorkers(); n > 0 {
			evalOpts = append(evalOpts, vectorEvaluator.WithWorkers(n))
		}
		if n := cfg.GetGrainSize(); n > 0 {
			evalOpts = append(evalOpts, vectorEvaluator.WithGrainSize(n))
		}
		delegate, err = vectorEvaluator.New(cfg.GetHandler(), execUnit, evalOpts...)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", cfg.GetEngineType())
	}

	return NewEvaluatorWrapper(delegate, execUnit), nil
}

func newCompiler(cfg *options.Config) (script.Compiler, error) {
	switch cfg.GetEngineType() {
	case types.Scalar:
		return scalarCompiler.New(
			scalarCompiler.WithLogHandler(cfg.GetHandler()),
			scalarCompiler.WithMetrics(cfg.GetMetrics()),
		)
	case types.Vector:
		return vectorCompiler.New(
			vectorCompiler.WithLogHandler(cfg.GetHandler()),
			vectorCompiler.WithMetrics(cfg.GetMetrics()),
		)
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", cfg.GetEngineType())
	}
}
