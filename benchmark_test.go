// This file contains benchmarks comparing evaluation patterns and engines:
//
// 1. Evaluation Patterns:
//   - SingleExecution: compiles a new evaluator for each execution
//   - CompileOnceRunMany: reuses a compiled evaluator
//
// 2. Engines:
//   - Scalar: walks the program once per row
//   - Vector: walks the program once, each step a kernel over every row
package symeval_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/robbyt/go-symeval"
	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/options"
	"github.com/robbyt/go-symeval/platform/dataset"
	"github.com/robbyt/go-symeval/random"
	"github.com/robbyt/go-symeval/synth"
	"github.com/stretchr/testify/require"
)

// quietHandler is a slog.Handler that discards all logs
var quietHandler = slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})

func BenchmarkEvaluationPatterns(b *testing.B) {
	rng := random.New(1234)
	ds, err := dataset.Random(rng, 4, 1024)
	require.NoError(b, err)
	b.Cleanup(ds.Release)

	for _, engine := range types.Types {
		b.Run(fmt.Sprintf("%s/SingleExecution", engine), func(b *testing.B) {
			tr, err := synth.Random(random.New(7), ds.Names(), 6)
			require.NoError(b, err)

			b.ResetTimer()
			for b.Loop() {
				e, err := symeval.FromTree(engine, tr,
					options.WithBinding(ds), options.WithLogHandler(quietHandler))
				if err != nil {
					b.Fatal(err)
				}
				if _, err := e.Eval(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("%s/CompileOnceRunMany", engine), func(b *testing.B) {
			tr, err := synth.Random(random.New(7), ds.Names(), 6)
			require.NoError(b, err)
			e, err := symeval.FromTree(engine, tr,
				options.WithBinding(ds), options.WithLogHandler(quietHandler))
			require.NoError(b, err)

			b.ResetTimer()
			for b.Loop() {
				if _, err := e.Eval(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEngines(b *testing.B) {
	for _, rows := range []int{16, 1024, 65536} {
		ds, err := dataset.Random(random.New(1234), 4, rows)
		require.NoError(b, err)
		tr, err := synth.Random(random.New(99), ds.Names(), 8)
		require.NoError(b, err)

		for _, engine := range types.Types {
			e, err := symeval.FromTree(engine, tr,
				options.WithBinding(ds), options.WithLogHandler(quietHandler))
			require.NoError(b, err)

			b.Run(fmt.Sprintf("%s/rows=%d", engine, rows), func(b *testing.B) {
				for b.Loop() {
					if _, err := e.Eval(context.Background()); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
		ds.Release()
	}
}
