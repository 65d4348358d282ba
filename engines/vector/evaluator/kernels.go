package evaluator

import (
	"math"

	"github.com/robbyt/go-symeval/tree"
	"golang.org/x/sync/errgroup"
)

// kernel transforms rows [lo, hi). Tasks of one kernel never touch the same row.
type kernel func(lo, hi int)

// parallel runs k over [0, n) in grain-sized chunks on at most workers
// goroutines and returns once every chunk is done.
func parallel(n, grain, workers int, k kernel) {
	if n <= grain || workers == 1 {
		k(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += grain {
		hi := min(lo+grain, n)
		g.Go(func() error {
			k(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func fillKernel(dst []float64, v float64) kernel {
	return func(lo, hi int) {
		for r := lo; r < hi; r++ {
			dst[r] = v
		}
	}
}

func scaleKernel(dst, col []float64, w float64) kernel {
	return func(lo, hi int) {
		for r := lo; r < hi; r++ {
			dst[r] = col[r] * w
		}
	}
}

// binaryKernel combines src into dst in place: dst[r] = dst[r] op src[r].
func binaryKernel(op tree.Op, dst, src []float64) kernel {
	switch op {
	case tree.OpAdd:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] += src[r]
			}
		}
	case tree.OpSub:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] -= src[r]
			}
		}
	case tree.OpMul:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] *= src[r]
			}
		}
	case tree.OpDiv:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] /= src[r]
			}
		}
	}
	return nil
}

// unaryKernel transforms dst in place.
func unaryKernel(op tree.Op, dst []float64) kernel {
	switch op {
	case tree.OpNeg:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] = -dst[r]
			}
		}
	case tree.OpExp:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] = math.Exp(dst[r])
			}
		}
	case tree.OpLog:
		return func(lo, hi int) {
			for r := lo; r < hi; r++ {
				dst[r] = math.Log(dst[r])
			}
		}
	}
	return nil
}
