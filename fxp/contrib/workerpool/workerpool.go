// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool runs index ranges across a bounded number of
// goroutines.
//
// Callers that parallelize independent work items (rows of a batch, vector
// pairs) accept an Executor so that tests can pass a single-worker pool and
// applications can share one pool:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//	pool.ParallelFor(n, func(start, end int) {
//	    for i := start; i < end; i++ {
//	        out[i] = work(i)
//	    }
//	})
package workerpool

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Executor distributes [0, n) across workers.
type Executor interface {
	// NumWorkers returns the parallelism limit.
	NumWorkers() int

	// ParallelFor calls fn on contiguous, disjoint [start, end) chunks that
	// cover [0, n) and returns when all calls have returned.
	ParallelFor(n int, fn func(start, end int))

	// ParallelForAtomic calls fn once per index, handing indices out from a
	// shared counter. Use it when item costs are uneven.
	ParallelForAtomic(n int, fn func(i int))

	// ParallelForErr is ParallelFor for fallible work. The first error
	// cancels ctx for the remaining chunks and is returned.
	ParallelForErr(ctx context.Context, n int, fn func(ctx context.Context, start, end int) error) error
}

// Pool is an Executor with a fixed worker limit. After Close, work runs on
// the calling goroutine.
type Pool struct {
	workers int
	closed  atomic.Bool
}

// New returns a pool of the given size; sizes below 1 mean 1.
func New(workers int) *Pool {
	return &Pool{workers: max(workers, 1)}
}

// NumWorkers implements Executor.
func (p *Pool) NumWorkers() int {
	if p.closed.Load() {
		return 1
	}
	return p.workers
}

// Close stops parallel execution. It is safe to call more than once.
func (p *Pool) Close() {
	p.closed.Store(true)
}

// ParallelFor implements Executor.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	_ = p.ParallelForErr(context.Background(), n, func(_ context.Context, start, end int) error {
		fn(start, end)
		return nil
	})
}

// ParallelForErr implements Executor.
func (p *Pool) ParallelForErr(ctx context.Context, n int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	workers := min(p.NumWorkers(), n)
	if workers == 1 {
		return fn(ctx, 0, n)
	}
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, start, end)
		})
	}
	return g.Wait()
}

// ParallelForAtomic implements Executor.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.NumWorkers(), n)
	var next atomic.Int64
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				fn(i)
			}
		})
	}
	_ = g.Wait()
}
