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

package vec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/go-fxaccel/fxp"
)

var (
	// ErrDimensionMismatch reports an operation on vectors of unequal length.
	ErrDimensionMismatch = errors.New("vec: dimension mismatch")

	// ErrIndexOutOfRange reports an element index outside [0, N).
	ErrIndexOutOfRange = errors.New("vec: index out of range")

	// ErrEmpty reports a vector with no elements.
	ErrEmpty = errors.New("vec: empty vector")
)

// Vector is an immutable sequence of fixed-point numbers sharing one format.
type Vector struct {
	elems  []fxp.Number
	format fxp.Format
}

// New builds a Vector from elems, which must be non-empty and share one
// format.
func New(elems ...fxp.Number) (Vector, error) {
	if len(elems) == 0 {
		return Vector{}, ErrEmpty
	}
	f := elems[0].Format()
	for i, e := range elems {
		if e.Format() != f {
			return Vector{}, fmt.Errorf("element %d is %s, element 0 is %s: %w", i, e.Format(), f, fxp.ErrFormatMismatch)
		}
	}
	return Vector{elems: append([]fxp.Number(nil), elems...), format: f}, nil
}

// FromRaw builds a Vector of raw values in f. Every raw value must fit.
func FromRaw(f fxp.Format, raws ...int64) (Vector, error) {
	elems := make([]fxp.Number, len(raws))
	for i, raw := range raws {
		n, err := fxp.FromRaw(raw, f)
		if err != nil {
			return Vector{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = n
	}
	return New(elems...)
}

// FromFloats converts xs into f with the given rounding and overflow policy.
func FromFloats(f fxp.Format, r fxp.Rounding, ov fxp.Overflow, xs ...float64) (Vector, error) {
	elems := make([]fxp.Number, len(xs))
	for i, x := range xs {
		n, err := fxp.FromFloat(x, f, r, ov)
		if err != nil {
			return Vector{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = n
	}
	return New(elems...)
}

// Zeros returns the length-n zero vector in f.
func Zeros(n int, f fxp.Format) (Vector, error) {
	if n < 1 {
		return Vector{}, ErrEmpty
	}
	elems := make([]fxp.Number, n)
	for i := range elems {
		elems[i] = fxp.Zero(f)
	}
	return Vector{elems: elems, format: f}, nil
}

// Len returns N.
func (v Vector) Len() int { return len(v.elems) }

// Format returns the shared element format.
func (v Vector) Format() fxp.Format { return v.format }

// At returns element i.
func (v Vector) At(i int) (fxp.Number, error) {
	if i < 0 || i >= len(v.elems) {
		return fxp.Number{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(v.elems))
	}
	return v.elems[i], nil
}

// With returns a copy of v with element i replaced by x, which must have
// v's format.
func (v Vector) With(i int, x fxp.Number) (Vector, error) {
	if i < 0 || i >= len(v.elems) {
		return Vector{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(v.elems))
	}
	if x.Format() != v.format {
		return Vector{}, fmt.Errorf("element is %s, vector is %s: %w", x.Format(), v.format, fxp.ErrFormatMismatch)
	}
	elems := v.Elems()
	elems[i] = x
	return Vector{elems: elems, format: v.format}, nil
}

// Elems returns a copy of the elements.
func (v Vector) Elems() []fxp.Number {
	return append([]fxp.Number(nil), v.elems...)
}

// Raws returns the raw value of every element.
func (v Vector) Raws() []int64 {
	raws := make([]int64, len(v.elems))
	for i, e := range v.elems {
		raws[i] = e.Raw()
	}
	return raws
}

// Float64s returns the real value of every element, for display and tests.
func (v Vector) Float64s() []float64 {
	xs := make([]float64, len(v.elems))
	for i, e := range v.elems {
		xs[i] = e.Float64()
	}
	return xs
}

// Equal reports bit-exact equality of length, format and every raw value.
func (v Vector) Equal(w Vector) bool {
	if len(v.elems) != len(w.elems) || v.format != w.format {
		return false
	}
	for i := range v.elems {
		if !v.elems[i].Equal(w.elems[i]) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.Float64s() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteString("]")
	sb.WriteString(v.format.String())
	return sb.String()
}

func checkDims(v, w Vector) error {
	if len(v.elems) != len(w.elems) {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(v.elems), len(w.elems))
	}
	if len(v.elems) == 0 {
		return ErrEmpty
	}
	return nil
}

// Add returns the pairwise sum v[i]+w[i].
func (v Vector) Add(w Vector, ov fxp.Overflow) (Vector, error) {
	return v.zip(w, func(a, b fxp.Number) (fxp.Number, error) {
		return fxp.Add(a, b, ov)
	})
}

// Sub returns the pairwise difference v[i]-w[i].
func (v Vector) Sub(w Vector, ov fxp.Overflow) (Vector, error) {
	return v.zip(w, func(a, b fxp.Number) (fxp.Number, error) {
		return fxp.Sub(a, b, ov)
	})
}

// Mul returns the pairwise exact products v[i]*w[i] at
// fxp.Product(v.Format(), w.Format()).
func (v Vector) Mul(w Vector) (Vector, error) {
	return v.zip(w, fxp.MulExact)
}

func (v Vector) zip(w Vector, op func(a, b fxp.Number) (fxp.Number, error)) (Vector, error) {
	if err := checkDims(v, w); err != nil {
		return Vector{}, err
	}
	out := make([]fxp.Number, len(v.elems))
	for i := range v.elems {
		n, err := op(v.elems[i], w.elems[i])
		if err != nil {
			return Vector{}, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return Vector{elems: out, format: out[0].Format()}, nil
}

// Scale multiplies every element by s, rounding each product once into out.
func (v Vector) Scale(s fxp.Number, out fxp.Format, r fxp.Rounding, ov fxp.Overflow) (Vector, error) {
	if len(v.elems) == 0 {
		return Vector{}, ErrEmpty
	}
	elems := make([]fxp.Number, len(v.elems))
	for i, e := range v.elems {
		n, err := fxp.Mul(e, s, out, r, ov)
		if err != nil {
			return Vector{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = n
	}
	return Vector{elems: elems, format: out}, nil
}

// Permute returns the vector whose element i is v[perm[i]]. perm must be a
// permutation of [0, N).
func (v Vector) Permute(perm []int) (Vector, error) {
	if len(perm) != len(v.elems) {
		return Vector{}, fmt.Errorf("%w: permutation of %d for %d elements", ErrDimensionMismatch, len(perm), len(v.elems))
	}
	seen := make([]bool, len(perm))
	elems := make([]fxp.Number, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) {
			return Vector{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, p, len(perm))
		}
		if seen[p] {
			return Vector{}, fmt.Errorf("vec: index %d repeated in permutation", p)
		}
		seen[p] = true
		elems[i] = v.elems[p]
	}
	return Vector{elems: elems, format: v.format}, nil
}

// SumFormat returns the reduction accumulator format: the element format
// widened by ceil(log2 N) integer bits.
func (v Vector) SumFormat() (fxp.Format, error) {
	if len(v.elems) == 0 {
		return fxp.Format{}, ErrEmpty
	}
	return fxp.Accumulator(v.format, len(v.elems))
}

// SumExact folds the elements in ascending index order inside SumFormat.
// The result is exact.
func (v Vector) SumExact() (fxp.Number, error) {
	acc, err := v.SumFormat()
	if err != nil {
		return fxp.Number{}, err
	}
	return Accumulate(fxp.Zero(acc), v.elems...)
}

// Sum folds the elements exactly and rounds the total once into out.
func (v Vector) Sum(out fxp.Format, r fxp.Rounding, ov fxp.Overflow) (fxp.Number, error) {
	s, err := v.SumExact()
	if err != nil {
		return fxp.Number{}, err
	}
	return fxp.Resize(s, out, r, ov), nil
}

// Accumulate adds terms to acc in order. Each term is widened losslessly to
// acc's format; acc must be wide enough to hold the total, so the
// intermediate additions wrap rather than saturate.
func Accumulate(acc fxp.Number, terms ...fxp.Number) (fxp.Number, error) {
	f := acc.Format()
	for i, t := range terms {
		if t.Format().Frac() != f.Frac() || t.Format().IntBits() > f.IntBits() {
			return fxp.Number{}, fmt.Errorf("term %d is %s, accumulator is %s: %w", i, t.Format(), f, fxp.ErrFormatMismatch)
		}
		var err error
		acc, err = fxp.Add(acc, fxp.Resize(t, f, fxp.NearestAway, fxp.Saturate), fxp.Wrap)
		if err != nil {
			return fxp.Number{}, err
		}
	}
	return acc, nil
}
