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

// Package fxp provides bit-exact signed fixed-point arithmetic.
//
// A Number holds a two's-complement integer raw value together with its
// Format (W total bits, F fractional bits) and represents raw / 2^F. The
// raw value always fits in W bits: every operation that could leave the
// representable range resolves the result with an explicit Overflow policy
// (Saturate, the default, or Wrap), and every operation that drops
// fractional bits applies an explicit Rounding mode (NearestAway, the
// default, rounds to nearest with ties away from zero).
//
// # Formats
//
// Formats are written Q<I>.<F> where I = W-F counts the integer bits
// including the sign:
//
//	fxp.Q(16, 8)   // Q8.8, range [-128, 127.99609375], step 1/256
//	fxp.Q(32, 16)  // Q16.16
//
// Widths are limited to 64 bits so that every raw value and every exact
// product of two formats whose widths sum to at most 64 fits in an int64.
//
// # Alignment
//
// Numbers with different fractional widths are never combined implicitly.
// Align re-expresses both operands at their Common format by shifting the
// operand with fewer fractional bits left; Add and Sub call it before
// combining. The alignment itself is lossless.
//
// # Multiplication
//
// MulExact returns the full-width product at Product(a, b) = (W1+W2, F1+F2).
// Mul rounds and resolves that exact product once into a caller-chosen
// format. Accumulating datapaths (see package dot) keep the exact products
// and resize only at the end.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-fxaccel/fxp"
//
//	q := fxp.Q(16, 8)
//	a := fxp.MustFloat(1.5, q)
//	b := fxp.MustFloat(-2.0, q)
//	p, _ := fxp.MulExact(a, b)                                 // -3.0 at Q16.16
//	r, _ := fxp.Mul(a, b, q, fxp.NearestAway, fxp.Saturate)    // -3.0 at Q8.8
package fxp
