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

package dot

import (
	"fmt"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
)

// AccumulatorFormat returns the accumulator format for N-term dot products
// of in x in operands: Product(in, in) widened by ceil(log2 N) integer bits.
func AccumulatorFormat(in fxp.Format, n int) (fxp.Format, error) {
	p, err := fxp.Product(in, in)
	if err != nil {
		return fxp.Format{}, err
	}
	return fxp.Accumulator(p, n)
}

// DotExact returns sum(a[i]*b[i]) without any rounding, at the accumulator
// format of the two operand formats.
func DotExact(a, b vec.Vector) (fxp.Number, error) {
	products, err := a.Mul(b)
	if err != nil {
		return fxp.Number{}, fmt.Errorf("dot: %w", err)
	}
	acc, err := products.SumFormat()
	if err != nil {
		return fxp.Number{}, fmt.Errorf("dot: %w", err)
	}
	return vec.Accumulate(fxp.Zero(acc), products.Elems()...)
}

// Dot returns sum(a[i]*b[i]) rounded once into out.
//
// Example:
//
//	q := fxp.Q(16, 8)
//	a, _ := vec.FromFloats(q, fxp.NearestAway, fxp.Saturate, 1.5, -2)
//	b, _ := vec.FromFloats(q, fxp.NearestAway, fxp.Saturate, 2, 3)
//	r, _ := Dot(a, b, q, fxp.NearestAway, fxp.Saturate) // -3
func Dot(a, b vec.Vector, out fxp.Format, r fxp.Rounding, ov fxp.Overflow) (fxp.Number, error) {
	s, err := DotExact(a, b)
	if err != nil {
		return fxp.Number{}, err
	}
	return fxp.Resize(s, out, r, ov), nil
}

// DotBatch computes Dot(as[i], bs[i], ...) for every i. as and bs must have
// the same length.
func DotBatch(as, bs []vec.Vector, out fxp.Format, r fxp.Rounding, ov fxp.Overflow) ([]fxp.Number, error) {
	if len(as) != len(bs) {
		return nil, fmt.Errorf("dot batch: %w: %d != %d pairs", vec.ErrDimensionMismatch, len(as), len(bs))
	}
	results := make([]fxp.Number, len(as))
	for i := range as {
		n, err := Dot(as[i], bs[i], out, r, ov)
		if err != nil {
			return nil, fmt.Errorf("dot batch pair %d: %w", i, err)
		}
		results[i] = n
	}
	return results, nil
}
