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

// Package vec provides fixed-length vectors of fixed-point numbers.
//
// A Vector is an immutable, ordered sequence of N fxp.Numbers that share
// one format. N is fixed when the Vector is built and never changes: every
// binary operation requires both operands to have the same length and
// fails with ErrDimensionMismatch otherwise, and indexing outside [0, N)
// fails with ErrIndexOutOfRange. Nothing is padded or truncated.
//
// # Operations
//
//   - Add, Sub: pairwise, index-aligned, with the fxp alignment and
//     overflow rules
//   - Mul: pairwise exact-width products
//   - Scale: multiply every element by one scalar
//   - Sum, SumExact: reduction in ascending index order inside an
//     accumulator widened by ceil(log2 N) bits, resized once at the end
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/go-fxaccel/fxp"
//	    "github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
//	)
//
//	q := fxp.Q(16, 8)
//	a, _ := vec.FromFloats(q, fxp.NearestAway, fxp.Saturate, 1.5, -2.0)
//	b, _ := vec.FromFloats(q, fxp.NearestAway, fxp.Saturate, 2.0, 3.0)
//	p, _ := a.Mul(b)                                  // [3.0, -6.0] at Q16.16
//	s, _ := p.Sum(q, fxp.NearestAway, fxp.Saturate)   // -3.0 at Q8.8
package vec
