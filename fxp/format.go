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

package fxp

import (
	"errors"
	"fmt"
	"math"

	"modernc.org/mathutil"
)

// MaxWidth is the widest supported Format, in bits.
const MaxWidth = 64

var (
	// ErrInvalidFormat reports a width or fractional width outside the
	// supported range.
	ErrInvalidFormat = errors.New("fxp: invalid format")

	// ErrWidth reports that a derived format (product, alignment,
	// accumulator) would be wider than MaxWidth.
	ErrWidth = errors.New("fxp: format wider than 64 bits")

	// ErrOverflow reports a raw value that does not fit its format.
	ErrOverflow = errors.New("fxp: overflow")

	// ErrNotFinite reports a NaN or infinite float input.
	ErrNotFinite = errors.New("fxp: value is not finite")

	// ErrFormatMismatch reports operands that must share a format but do not.
	ErrFormatMismatch = errors.New("fxp: format mismatch")
)

// Format describes a signed fixed-point layout: Width total bits of which
// Frac are fractional. The zero Format is invalid; use NewFormat or Q.
type Format struct {
	width int
	frac  int
}

// NewFormat returns the Format with width total bits and frac fractional
// bits. It requires 1 <= width <= MaxWidth and 0 <= frac <= width.
func NewFormat(width, frac int) (Format, error) {
	if width < 1 || width > MaxWidth {
		return Format{}, fmt.Errorf("%w: width %d not in [1, %d]", ErrInvalidFormat, width, MaxWidth)
	}
	if frac < 0 || frac > width {
		return Format{}, fmt.Errorf("%w: frac %d not in [0, %d]", ErrInvalidFormat, frac, width)
	}
	return Format{width: width, frac: frac}, nil
}

// Q is like NewFormat but panics on an invalid layout. It is intended for
// package-level constants and tests.
func Q(width, frac int) Format {
	f, err := NewFormat(width, frac)
	if err != nil {
		panic(err)
	}
	return f
}

// Width returns the total number of bits, W.
func (f Format) Width() int { return f.width }

// Frac returns the number of fractional bits, F.
func (f Format) Frac() int { return f.frac }

// IntBits returns W-F, the integer bits including the sign bit.
func (f Format) IntBits() int { return f.width - f.frac }

// Valid reports whether f was built by NewFormat.
func (f Format) Valid() bool {
	return f.width >= 1 && f.width <= MaxWidth && f.frac >= 0 && f.frac <= f.width
}

// Min returns the most negative raw value, -2^(W-1).
func (f Format) Min() int64 {
	return int64(-1) << uint(f.width-1)
}

// Max returns the most positive raw value, 2^(W-1)-1.
func (f Format) Max() int64 {
	return ^f.Min()
}

// Contains reports whether raw fits in W bits.
func (f Format) Contains(raw int64) bool {
	return raw >= f.Min() && raw <= f.Max()
}

// Resolution returns the real value of one LSB, 2^-F.
func (f Format) Resolution() float64 {
	return math.Ldexp(1, -f.frac)
}

// Widen returns f with extra additional integer bits.
func (f Format) Widen(extra int) (Format, error) {
	if extra < 0 {
		return Format{}, fmt.Errorf("%w: negative widening %d", ErrInvalidFormat, extra)
	}
	if f.width+extra > MaxWidth {
		return Format{}, fmt.Errorf("%w: %s widened by %d", ErrWidth, f, extra)
	}
	return Format{width: f.width + extra, frac: f.frac}, nil
}

// String renders the format as Q<I>.<F>.
func (f Format) String() string {
	return fmt.Sprintf("Q%d.%d", f.IntBits(), f.frac)
}

// Product returns the exact-width format of a product of a value in a and a
// value in b: (Wa+Wb, Fa+Fb).
func Product(a, b Format) (Format, error) {
	w := a.width + b.width
	if w > MaxWidth {
		return Format{}, fmt.Errorf("%w: product %s x %s needs %d bits", ErrWidth, a, b, w)
	}
	return Format{width: w, frac: a.frac + b.frac}, nil
}

// Common returns the format both a and b align to without loss: the larger
// fractional width and the larger integer width.
func Common(a, b Format) (Format, error) {
	frac := max(a.frac, b.frac)
	w := max(a.IntBits(), b.IntBits()) + frac
	if w > MaxWidth {
		return Format{}, fmt.Errorf("%w: aligning %s and %s needs %d bits", ErrWidth, a, b, w)
	}
	return Format{width: w, frac: frac}, nil
}

// Accumulator returns the narrowest format that holds the exact sum of n
// values of f: f widened by ceil(log2 n) integer bits.
func Accumulator(f Format, n int) (Format, error) {
	if n < 1 {
		return Format{}, fmt.Errorf("%w: accumulating %d terms", ErrInvalidFormat, n)
	}
	return f.Widen(mathutil.BitLenUint64(uint64(n - 1)))
}
