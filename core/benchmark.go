package core

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// FibonacciTerm is the term computed by each benchmark round.
const FibonacciTerm = 300

// Fibonacci returns the n-th Fibonacci number modulo 2^64.
func Fibonacci(n int) uint64 {
	var a, b uint64 = 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// BenchmarkResult is the outcome of one benchmark run.
type BenchmarkResult struct {
	Rounds  int
	Elapsed time.Duration
	Last    uint64
}

// PerRound returns the average duration of one round.
func (r BenchmarkResult) PerRound() time.Duration {
	if r.Rounds == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Rounds)
}

// Benchmark computes Fibonacci(FibonacciTerm) the given number of times and
// measures the elapsed time on clock. It stops early when ctx is cancelled
// and reports the rounds completed so far along with ctx.Err().
func Benchmark(ctx context.Context, rounds int, clock clockwork.Clock) (BenchmarkResult, error) {
	res := BenchmarkResult{}
	start := clock.Now()
	for i := 0; i < rounds; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				res.Elapsed = clock.Since(start)
				return res, err
			}
		}
		res.Last = Fibonacci(FibonacciTerm)
		res.Rounds++
	}
	res.Elapsed = clock.Since(start)
	return res, nil
}
