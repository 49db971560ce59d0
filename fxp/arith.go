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

import "fmt"

// Align re-expresses a and b at Common(a.Format(), b.Format()). The
// operand with fewer fractional bits is shifted left; nothing is lost.
func Align(a, b Number) (Number, Number, error) {
	c, err := Common(a.format, b.format)
	if err != nil {
		return Number{}, Number{}, err
	}
	return alignTo(a, c), alignTo(b, c), nil
}

// alignTo widens n to c, which must hold n exactly.
func alignTo(n Number, c Format) Number {
	return Number{raw: n.raw << uint(c.frac-n.format.frac), format: c}
}

// Add returns a+b in the common format of a and b. A carry out of the
// common width is resolved by ov.
func Add(a, b Number, ov Overflow) (Number, error) {
	x, y, err := Align(a, b)
	if err != nil {
		return Number{}, fmt.Errorf("add: %w", err)
	}
	f := x.format
	sum := x.raw + y.raw
	if (x.raw >= 0) == (y.raw >= 0) && (sum >= 0) != (x.raw >= 0) {
		return Number{raw: resolveCarry(sum, x.raw < 0, f, ov), format: f}, nil
	}
	n, _ := FromRawPolicy(sum, f, ov)
	return n, nil
}

// Sub returns a-b in the common format of a and b. A borrow out of the
// common width is resolved by ov.
func Sub(a, b Number, ov Overflow) (Number, error) {
	x, y, err := Align(a, b)
	if err != nil {
		return Number{}, fmt.Errorf("sub: %w", err)
	}
	f := x.format
	diff := x.raw - y.raw
	if (x.raw >= 0) != (y.raw >= 0) && (diff >= 0) != (x.raw >= 0) {
		return Number{raw: resolveCarry(diff, x.raw < 0, f, ov), format: f}, nil
	}
	n, _ := FromRawPolicy(diff, f, ov)
	return n, nil
}

// AddTo returns a+b resized once into out. The sum is formed exactly in the
// common format widened by one carry bit.
func AddTo(a, b Number, out Format, r Rounding, ov Overflow) (Number, error) {
	s, err := exactSum(a, b, false)
	if err != nil {
		return Number{}, fmt.Errorf("add: %w", err)
	}
	return Resize(s, out, r, ov), nil
}

// SubTo returns a-b resized once into out.
func SubTo(a, b Number, out Format, r Rounding, ov Overflow) (Number, error) {
	s, err := exactSum(a, b, true)
	if err != nil {
		return Number{}, fmt.Errorf("sub: %w", err)
	}
	return Resize(s, out, r, ov), nil
}

func exactSum(a, b Number, negate bool) (Number, error) {
	c, err := Common(a.format, b.format)
	if err != nil {
		return Number{}, err
	}
	wide, err := c.Widen(1)
	if err != nil {
		return Number{}, err
	}
	x, y := alignTo(a, wide), alignTo(b, wide)
	if negate {
		return Number{raw: x.raw - y.raw, format: wide}, nil
	}
	return Number{raw: x.raw + y.raw, format: wide}, nil
}

// MulExact returns a*b at the exact-width format Product(a, b).
func MulExact(a, b Number) (Number, error) {
	p, err := Product(a.format, b.format)
	if err != nil {
		return Number{}, fmt.Errorf("mul: %w", err)
	}
	return Number{raw: a.raw * b.raw, format: p}, nil
}

// Mul returns a*b rounded and resolved once into out.
func Mul(a, b Number, out Format, r Rounding, ov Overflow) (Number, error) {
	p, err := MulExact(a, b)
	if err != nil {
		return Number{}, err
	}
	return Resize(p, out, r, ov), nil
}
