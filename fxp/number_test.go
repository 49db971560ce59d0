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
	"math"
	"testing"
)

func TestFromRaw(t *testing.T) {
	q := Q(8, 4)
	if _, err := FromRaw(127, q); err != nil {
		t.Errorf("FromRaw(127): %v", err)
	}
	if _, err := FromRaw(128, q); !errors.Is(err, ErrOverflow) {
		t.Errorf("FromRaw(128) error = %v, want ErrOverflow", err)
	}
	if _, err := FromRaw(-129, q); !errors.Is(err, ErrOverflow) {
		t.Errorf("FromRaw(-129) error = %v, want ErrOverflow", err)
	}
	if _, err := FromRaw(0, Format{}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("FromRaw with zero Format: error = %v, want ErrInvalidFormat", err)
	}
}

func TestFromRawPolicy(t *testing.T) {
	q := Q(8, 0)
	tests := []struct {
		raw      int64
		ov       Overflow
		want     int64
		overflow bool
	}{
		{raw: 5, ov: Saturate, want: 5},
		{raw: 200, ov: Saturate, want: 127, overflow: true},
		{raw: -200, ov: Saturate, want: -128, overflow: true},
		{raw: 200, ov: Wrap, want: -56, overflow: true},
		{raw: -200, ov: Wrap, want: 56, overflow: true},
		{raw: 256, ov: Wrap, want: 0, overflow: true},
		{raw: math.MaxInt64, ov: Saturate, want: 127, overflow: true},
		{raw: math.MaxInt64, ov: Wrap, want: -1, overflow: true},
	}
	for _, tt := range tests {
		n, over := FromRawPolicy(tt.raw, q, tt.ov)
		if n.Raw() != tt.want || over != tt.overflow {
			t.Errorf("FromRawPolicy(%d, %s) = (%d, %v), want (%d, %v)",
				tt.raw, tt.ov, n.Raw(), over, tt.want, tt.overflow)
		}
	}
}

func TestFromFloat(t *testing.T) {
	q := Q(16, 8)
	tests := []struct {
		name string
		x    float64
		r    Rounding
		ov   Overflow
		want int64
	}{
		{name: "exact", x: 1.5, want: 384},
		{name: "negative exact", x: -2.0, want: -512},
		{name: "zero", x: 0, want: 0},
		{name: "tie away positive", x: 1.5 / 256, want: 2},
		{name: "tie away negative", x: -1.5 / 256, want: -2},
		{name: "tie even", x: 2.5 / 256, r: NearestEven, want: 2},
		{name: "tie even odd", x: 3.5 / 256, r: NearestEven, want: 4},
		{name: "floor negative", x: -0.25 / 256, r: Floor, want: -1},
		{name: "toward zero negative", x: -1.75 / 256, r: TowardZero, want: -1},
		{name: "below half", x: 0.49 / 256, want: 0},
		{name: "tiny negative floor", x: -1e-300, r: Floor, want: -1},
		{name: "tiny negative nearest", x: -1e-300, want: 0},
		{name: "saturate high", x: 1000, want: 32767},
		{name: "saturate low", x: -1000, want: -32768},
		{name: "wrap high", x: 128, ov: Wrap, want: -32768},
		{name: "huge saturate", x: 1e300, want: 32767},
		{name: "huge negative saturate", x: -1e300, want: -32768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromFloat(tt.x, q, tt.r, tt.ov)
			if err != nil {
				t.Fatal(err)
			}
			if n.Raw() != tt.want {
				t.Errorf("FromFloat(%v, %s) raw = %d, want %d", tt.x, tt.r, n.Raw(), tt.want)
			}
		})
	}

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FromFloat(x, q, NearestAway, Saturate); !errors.Is(err, ErrNotFinite) {
			t.Errorf("FromFloat(%v) error = %v, want ErrNotFinite", x, err)
		}
	}
}

func TestRoundShift(t *testing.T) {
	// Each case divides x by 2^d; the columns are NearestAway, NearestEven,
	// Floor and TowardZero.
	tests := []struct {
		x    int64
		d    int
		want [4]int64
	}{
		{x: 3, d: 1, want: [4]int64{2, 2, 1, 1}},     // 1.5
		{x: -3, d: 1, want: [4]int64{-2, -2, -2, -1}}, // -1.5
		{x: 5, d: 1, want: [4]int64{3, 2, 2, 2}},     // 2.5
		{x: -5, d: 1, want: [4]int64{-3, -2, -3, -2}}, // -2.5
		{x: 7, d: 2, want: [4]int64{2, 2, 1, 1}},     // 1.75
		{x: -7, d: 2, want: [4]int64{-2, -2, -2, -1}}, // -1.75
		{x: 4, d: 2, want: [4]int64{1, 1, 1, 1}},
		{x: -4, d: 2, want: [4]int64{-1, -1, -1, -1}},
		{x: 1, d: 63, want: [4]int64{0, 0, 0, 0}},
		{x: math.MinInt64, d: 64, want: [4]int64{-1, 0, -1, 0}}, // -0.5
		{x: math.MaxInt64, d: 64, want: [4]int64{0, 0, 0, 0}},
		{x: -1, d: 64, want: [4]int64{0, 0, -1, 0}},
	}
	modes := [4]Rounding{NearestAway, NearestEven, Floor, TowardZero}
	for _, tt := range tests {
		for i, r := range modes {
			if got := roundShift(tt.x, tt.d, r); got != tt.want[i] {
				t.Errorf("roundShift(%d, %d, %s) = %d, want %d", tt.x, tt.d, r, got, tt.want[i])
			}
		}
	}
}

func TestResizeIdentity(t *testing.T) {
	formats := []Format{Q(1, 0), Q(4, 2), Q(8, 8), Q(16, 8), Q(32, 16), Q(48, 40), Q(64, 0), Q(64, 63)}
	for _, f := range formats {
		raws := []int64{f.Min(), f.Min() + 1, -1, 0, 1, f.Max() - 1, f.Max(), f.Max() / 3, f.Min() / 7}
		for _, raw := range raws {
			if !f.Contains(raw) {
				continue
			}
			n, err := FromRaw(raw, f)
			if err != nil {
				t.Fatal(err)
			}
			for _, r := range []Rounding{NearestAway, NearestEven, Floor, TowardZero} {
				for _, ov := range []Overflow{Saturate, Wrap} {
					got, over := ResizeChecked(n, f, r, ov)
					if !got.Equal(n) || over {
						t.Errorf("Resize(%v, %s, %s, %s) = %v (overflow %v), want identity", n, f, r, ov, got, over)
					}
				}
			}
		}
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name     string
		in       Number
		to       Format
		r        Rounding
		ov       Overflow
		want     int64
		overflow bool
	}{
		{name: "widen frac", in: MustFloat(1.5, Q(16, 8)), to: Q(32, 16), want: 98304},
		{name: "narrow exact", in: MustFloat(-3, Q(32, 16)), to: Q(16, 8), want: -768},
		{name: "narrow rounds", in: mustRaw(t, 0x1840, Q(16, 12)), to: Q(8, 4), want: 0x18},
		{name: "narrow tie away", in: mustRaw(t, 0x18, Q(16, 4)), to: Q(16, 0), want: 2},
		{name: "narrow tie even", in: mustRaw(t, 0x28, Q(16, 4)), to: Q(16, 0), r: NearestEven, want: 2},
		{name: "saturate on narrow width", in: MustFloat(100, Q(16, 8)), to: Q(8, 4), want: 127, overflow: true},
		{name: "saturate negative", in: MustFloat(-100, Q(16, 8)), to: Q(8, 4), want: -128, overflow: true},
		{name: "wrap on narrow width", in: MustFloat(8, Q(16, 8)), to: Q(8, 4), ov: Wrap, want: -128, overflow: true},
		{name: "rounding pushes over max", in: mustRaw(t, 0x7FF, Q(16, 4)), to: Q(8, 0), want: 127, overflow: true},
		{name: "left shift beyond int64", in: MaxValue(Q(64, 0)), to: Q(64, 8), want: math.MaxInt64, overflow: true},
		{name: "left shift beyond int64 negative", in: MinValue(Q(64, 0)), to: Q(64, 8), want: math.MinInt64, overflow: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, over := ResizeChecked(tt.in, tt.to, tt.r, tt.ov)
			if got.Raw() != tt.want || over != tt.overflow {
				t.Errorf("ResizeChecked(%v, %s) = (%d, %v), want (%d, %v)", tt.in, tt.to, got.Raw(), over, tt.want, tt.overflow)
			}
			if got.Format() != tt.to {
				t.Errorf("format = %s, want %s", got.Format(), tt.to)
			}
		})
	}
}

func TestNegAndCmp(t *testing.T) {
	q := Q(8, 0)
	if got := MinValue(q).Neg(Saturate); got.Raw() != 127 {
		t.Errorf("Neg(min, saturate) = %d, want 127", got.Raw())
	}
	if got := MinValue(q).Neg(Wrap); got.Raw() != -128 {
		t.Errorf("Neg(min, wrap) = %d, want -128", got.Raw())
	}
	if got := MustFloat(5, q).Neg(Saturate); got.Raw() != -5 {
		t.Errorf("Neg(5) = %d, want -5", got.Raw())
	}

	c, err := MustFloat(1, q).Cmp(MustFloat(2, q))
	if err != nil || c != -1 {
		t.Errorf("Cmp(1, 2) = (%d, %v), want -1", c, err)
	}
	if _, err := MustFloat(1, q).Cmp(MustFloat(1, Q(16, 8))); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("Cmp across formats: error = %v, want ErrFormatMismatch", err)
	}
	// Equality is bit-exact: the same real value in two formats differs.
	if MustFloat(1, q).Equal(MustFloat(1, Q(16, 8))) {
		t.Error("Equal across formats returned true")
	}
}

func TestNumberString(t *testing.T) {
	if got := MustFloat(-3, Q(16, 8)).String(); got != "-3(Q8.8)" {
		t.Errorf("String() = %q", got)
	}
	if got := MustFloat(1.5, Q(16, 8)).Float64(); got != 1.5 {
		t.Errorf("Float64() = %v, want 1.5", got)
	}
}

func mustRaw(t *testing.T, raw int64, f Format) Number {
	t.Helper()
	n, err := FromRaw(raw, f)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
