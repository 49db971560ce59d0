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

// Package dot provides bit-exact fixed-point dot products and a cycle-stepped
// model of the multiply-accumulate pipeline that computes them in hardware.
//
// # Dot Product Functions
//
//   - DotExact(a, b) - exact sum of products at accumulator precision
//   - Dot(a, b, out, r, ov) - DotExact resized once to the output format
//   - DotBatch / ParallelDotBatch - many independent pairs
//
// # Algorithm
//
//  1. Multiply each pair (A[i], B[i]) into an exact (2W, 2F) product.
//  2. Fold the products in ascending index order into an accumulator of
//     AccumulatorFormat(in, N): the product format widened by ceil(log2 N)
//     integer bits, so the running sum can never overflow.
//  3. Round and resolve the accumulator into the output format exactly once.
//
// Because the accumulation is exact and the only rounding happens at the
// end, two implementations given the same operands produce bit-identical
// results regardless of how the multiplies are scheduled.
//
// # Pipeline
//
// Pipeline models the same datapath as a state machine advanced by Tick:
//
//	Idle --Start--> Computing --(ceil(N/Lanes) ticks)--> Done --Start--> Computing
//
// Each tick folds Lanes products. The result latched on entering Done stays
// readable until the next accepted Start completes. Start is rejected with
// ErrBusy while Computing.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
//
//	cfg := dot.DefaultConfig() // N=2, Q8.8 in and out
//	p, _ := dot.NewPipeline(cfg)
//	_ = p.Start(a, b)
//	for !p.Done() {
//	    p.Tick()
//	}
//	result, _ := p.Result()
package dot
