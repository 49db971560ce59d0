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
	"fmt"
	"math"
	"strconv"
)

// Number is a signed fixed-point value raw / 2^F in a given Format.
// Numbers are immutable values; the zero Number has no valid format.
type Number struct {
	raw    int64
	format Format
}

// FromRaw returns the Number with the given raw value. It fails with
// ErrOverflow if raw does not fit in f.
func FromRaw(raw int64, f Format) (Number, error) {
	if !f.Valid() {
		return Number{}, fmt.Errorf("%w: %d/%d", ErrInvalidFormat, f.width, f.frac)
	}
	if !f.Contains(raw) {
		return Number{}, fmt.Errorf("%w: raw %d outside %s [%d, %d]", ErrOverflow, raw, f, f.Min(), f.Max())
	}
	return Number{raw: raw, format: f}, nil
}

// FromRawPolicy returns raw brought into f under ov. The bool reports
// whether raw was out of range.
func FromRawPolicy(raw int64, f Format, ov Overflow) (Number, bool) {
	r, over := resolve(raw, f, ov)
	return Number{raw: r, format: f}, over
}

// FromFloat converts x to the nearest representable value of f under r.
// The conversion works on the exact binary value of x, so no float rounding
// is involved. Values outside f are resolved by ov.
func FromFloat(x float64, f Format, r Rounding, ov Overflow) (Number, error) {
	if !f.Valid() {
		return Number{}, fmt.Errorf("%w: %d/%d", ErrInvalidFormat, f.width, f.frac)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Number{}, fmt.Errorf("%w: %v", ErrNotFinite, x)
	}
	if x == 0 {
		return Zero(f), nil
	}

	// x = mant * 2^exp exactly, |mant| < 2^53.
	frac, exp := math.Frexp(x)
	mant := int64(frac * (1 << 53))
	shift := exp - 53 + f.frac

	var raw int64
	if shift >= 0 {
		s, ok := shiftLeft(mant, shift)
		if !ok {
			return Number{raw: resolveCarry(s, mant < 0, f, ov), format: f}, nil
		}
		raw = s
	} else {
		raw = roundShift(mant, min(-shift, 64), r)
	}
	n, _ := FromRawPolicy(raw, f, ov)
	return n, nil
}

// MustFloat converts x with NearestAway and Saturate and panics if x is not
// finite.
func MustFloat(x float64, f Format) Number {
	n, err := FromFloat(x, f, NearestAway, Saturate)
	if err != nil {
		panic(err)
	}
	return n
}

// Zero returns 0 in f.
func Zero(f Format) Number { return Number{format: f} }

// MinValue returns the most negative value of f.
func MinValue(f Format) Number { return Number{raw: f.Min(), format: f} }

// MaxValue returns the most positive value of f.
func MaxValue(f Format) Number { return Number{raw: f.Max(), format: f} }

// Raw returns the stored two's-complement integer.
func (n Number) Raw() int64 { return n.raw }

// Format returns the layout of n.
func (n Number) Format() Format { return n.format }

// IsZero reports whether n is zero.
func (n Number) IsZero() bool { return n.raw == 0 }

// Sign returns -1, 0 or +1.
func (n Number) Sign() int {
	switch {
	case n.raw < 0:
		return -1
	case n.raw > 0:
		return 1
	}
	return 0
}

// Float64 returns the real value of n. It is exact for widths up to 53
// bits and intended for display and test comparison only.
func (n Number) Float64() float64 {
	return math.Ldexp(float64(n.raw), -n.format.frac)
}

// String renders n as its real value followed by its format.
func (n Number) String() string {
	return strconv.FormatFloat(n.Float64(), 'g', -1, 64) + "(" + n.format.String() + ")"
}

// Equal reports bit-exact equality: same format and same raw value.
func (n Number) Equal(m Number) bool {
	return n.format == m.format && n.raw == m.raw
}

// Cmp compares n and m, which must share a format, returning -1, 0 or +1.
func (n Number) Cmp(m Number) (int, error) {
	if n.format != m.format {
		return 0, fmt.Errorf("%w: %s vs %s", ErrFormatMismatch, n.format, m.format)
	}
	switch {
	case n.raw < m.raw:
		return -1, nil
	case n.raw > m.raw:
		return 1, nil
	}
	return 0, nil
}

// Neg returns -n in the same format. Only the most negative value can
// overflow; ov decides whether it saturates to the maximum or stays put.
func (n Number) Neg(ov Overflow) Number {
	if n.raw == n.format.Min() {
		if ov == Wrap {
			return n
		}
		return MaxValue(n.format)
	}
	return Number{raw: -n.raw, format: n.format}
}

// Resize converts n to the format to, rounding discarded fractional bits
// with r and resolving out-of-range results with ov. Resizing to n's own
// format returns n unchanged.
func Resize(n Number, to Format, r Rounding, ov Overflow) Number {
	m, _ := ResizeChecked(n, to, r, ov)
	return m
}

// ResizeChecked is Resize that also reports whether the overflow policy had
// to be applied.
func ResizeChecked(n Number, to Format, r Rounding, ov Overflow) (Number, bool) {
	d := to.frac - n.format.frac
	raw := n.raw
	switch {
	case d > 0:
		s, ok := shiftLeft(raw, d)
		if !ok {
			return Number{raw: resolveCarry(s, raw < 0, to, ov), format: to}, true
		}
		raw = s
	case d < 0:
		raw = roundShift(raw, -d, r)
	}
	return FromRawPolicy(raw, to, ov)
}
