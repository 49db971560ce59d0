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
	"math"

	"modernc.org/mathutil"
)

// Overflow selects how a result outside the target format is brought back
// into range.
type Overflow uint8

const (
	// Saturate clamps to the nearest representable extreme. It is the zero
	// value and the policy for every value crossing a component boundary.
	Saturate Overflow = iota

	// Wrap reduces modulo 2^W (two's-complement wraparound). Use it only for
	// intermediates whose bounds are already verified.
	Wrap
)

func (o Overflow) String() string {
	switch o {
	case Saturate:
		return "saturate"
	case Wrap:
		return "wrap"
	}
	return "Overflow(?)"
}

// Rounding selects how fractional bits are discarded.
type Rounding uint8

const (
	// NearestAway rounds to nearest, ties away from zero. Zero value.
	NearestAway Rounding = iota

	// NearestEven rounds to nearest, ties to even.
	NearestEven

	// Floor rounds toward negative infinity (plain truncation of the
	// two's-complement bits).
	Floor

	// TowardZero rounds toward zero.
	TowardZero
)

func (r Rounding) String() string {
	switch r {
	case NearestAway:
		return "nearest-away"
	case NearestEven:
		return "nearest-even"
	case Floor:
		return "floor"
	case TowardZero:
		return "toward-zero"
	}
	return "Rounding(?)"
}

// wrap sign-extends the low W bits of raw.
func wrap(raw int64, f Format) int64 {
	s := uint(MaxWidth - f.width)
	return raw << s >> s
}

// resolve brings raw into f under ov and reports whether it was out of range.
func resolve(raw int64, f Format, ov Overflow) (int64, bool) {
	if f.Contains(raw) {
		return raw, false
	}
	if ov == Wrap {
		return wrap(raw, f), true
	}
	return mathutil.ClampInt64(raw, f.Min(), f.Max()), true
}

// resolveCarry handles a result whose true value lies outside int64. wrapped
// is the result modulo 2^64 and negative gives the sign of the true value.
func resolveCarry(wrapped int64, negative bool, f Format, ov Overflow) int64 {
	if ov == Wrap {
		return wrap(wrapped, f)
	}
	if negative {
		return f.Min()
	}
	return f.Max()
}

// shiftLeft returns x<<d modulo 2^64 and whether the shift was exact.
func shiftLeft(x int64, d int) (int64, bool) {
	if d >= 64 {
		return 0, x == 0
	}
	s := x << uint(d)
	return s, s>>uint(d) == x
}

// roundShift divides x by 2^d, d >= 1, rounding as r says.
func roundShift(x int64, d int, r Rounding) int64 {
	if d >= 64 {
		// |x| <= 2^63, so the quotient lies in [-0.5, 0.5).
		switch r {
		case Floor:
			if x < 0 {
				return -1
			}
		case NearestAway:
			if d == 64 && x == math.MinInt64 {
				return -1
			}
		}
		return 0
	}
	floor := x >> uint(d)
	rem := uint64(x) & (uint64(1)<<uint(d) - 1)
	half := uint64(1) << uint(d-1)
	switch r {
	case Floor:
		return floor
	case TowardZero:
		if x < 0 && rem != 0 {
			return floor + 1
		}
		return floor
	case NearestEven:
		if rem > half || (rem == half && floor&1 != 0) {
			return floor + 1
		}
		return floor
	default:
		if rem > half || (rem == half && x >= 0) {
			return floor + 1
		}
		return floor
	}
}
