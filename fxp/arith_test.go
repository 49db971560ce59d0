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

// referenceResolve brings an exact integer into f the slow way.
func referenceResolve(v int64, f Format, ov Overflow) int64 {
	if ov == Saturate {
		return min(max(v, f.Min()), f.Max())
	}
	m := int64(1) << uint(f.Width())
	v %= m
	if v < 0 {
		v += m
	}
	if v > f.Max() {
		v -= m
	}
	return v
}

func TestAddSubExhaustive(t *testing.T) {
	q := Q(6, 2)
	for _, ov := range []Overflow{Saturate, Wrap} {
		for x := q.Min(); x <= q.Max(); x++ {
			for y := q.Min(); y <= q.Max(); y++ {
				a, b := mustRaw(t, x, q), mustRaw(t, y, q)

				sum, err := Add(a, b, ov)
				if err != nil {
					t.Fatal(err)
				}
				if want := referenceResolve(x+y, q, ov); sum.Raw() != want {
					t.Fatalf("Add(%d, %d, %s) = %d, want %d", x, y, ov, sum.Raw(), want)
				}
				if !q.Contains(sum.Raw()) {
					t.Fatalf("Add(%d, %d) = %d escapes %s", x, y, sum.Raw(), q)
				}

				diff, err := Sub(a, b, ov)
				if err != nil {
					t.Fatal(err)
				}
				if want := referenceResolve(x-y, q, ov); diff.Raw() != want {
					t.Fatalf("Sub(%d, %d, %s) = %d, want %d", x, y, ov, diff.Raw(), want)
				}
			}
		}
	}
}

func TestAddSaturatesExactlyAtExtremes(t *testing.T) {
	q := Q(16, 8)
	tests := []struct {
		a, b Number
		want Number
	}{
		{MaxValue(q), MustFloat(1, q), MaxValue(q)},
		{MinValue(q), MustFloat(-1, q), MinValue(q)},
		{MaxValue(q), MaxValue(q), MaxValue(q)},
		{MinValue(q), MinValue(q), MinValue(q)},
		{MaxValue(q), MinValue(q), mustRaw(t, -1, q)},
	}
	for _, tt := range tests {
		got, err := Add(tt.a, tt.b, Saturate)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Add(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAdd64BitCarry(t *testing.T) {
	q := Q(64, 0)
	big := MaxValue(q)
	one := mustRaw(t, 1, q)

	got, err := Add(big, one, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if got.Raw() != math.MaxInt64 {
		t.Errorf("saturating MaxInt64+1 = %d", got.Raw())
	}
	got, err = Add(big, one, Wrap)
	if err != nil {
		t.Fatal(err)
	}
	if got.Raw() != math.MinInt64 {
		t.Errorf("wrapping MaxInt64+1 = %d", got.Raw())
	}
	got, err = Sub(MinValue(q), one, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if got.Raw() != math.MinInt64 {
		t.Errorf("saturating MinInt64-1 = %d", got.Raw())
	}
}

func TestAlign(t *testing.T) {
	a := MustFloat(1.5, Q(16, 8))
	b := MustFloat(-0.25, Q(8, 4))
	x, y, err := Align(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if x.Format() != Q(16, 8) || y.Format() != Q(16, 8) {
		t.Fatalf("aligned formats %s, %s, want Q8.8", x.Format(), y.Format())
	}
	if x.Raw() != 384 || y.Raw() != -64 {
		t.Errorf("aligned raws %d, %d, want 384, -64", x.Raw(), y.Raw())
	}
	if x.Float64() != a.Float64() || y.Float64() != b.Float64() {
		t.Error("alignment changed a real value")
	}

	sum, err := Add(a, b, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Float64() != 1.25 || sum.Format() != Q(16, 8) {
		t.Errorf("Add across formats = %v, want 1.25(Q8.8)", sum)
	}

	if _, _, err := Align(MaxValue(Q(64, 0)), MaxValue(Q(8, 8))); !errors.Is(err, ErrWidth) {
		t.Errorf("Align Q64.0 with Q0.8: error = %v, want ErrWidth", err)
	}
}

func TestAddToSubTo(t *testing.T) {
	q := Q(8, 4)
	// 7.9375 + 7.9375 does not fit Q4.4 but fits Q8.4 exactly.
	got, err := AddTo(MaxValue(q), MaxValue(q), Q(12, 4), NearestAway, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if got.Float64() != 15.875 {
		t.Errorf("AddTo = %v, want 15.875", got)
	}
	got, err = SubTo(MinValue(q), MaxValue(q), Q(12, 4), NearestAway, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if got.Float64() != -15.9375 {
		t.Errorf("SubTo = %v, want -15.9375", got)
	}
	// 0.0625 + 0.0625 = 0.125 is a tie at Q2.2 and rounds away to 0.25.
	got, err = AddTo(mustRaw(t, 1, q), mustRaw(t, 1, q), Q(4, 2), NearestAway, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if got.Raw() != 1 {
		t.Errorf("AddTo rounding = %d, want 1", got.Raw())
	}
}

func TestMul(t *testing.T) {
	q := Q(16, 8)
	a := MustFloat(1.5, q)
	b := MustFloat(-2, q)

	p, err := MulExact(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if p.Format() != Q(32, 16) {
		t.Errorf("MulExact format = %s, want Q16.16", p.Format())
	}
	if p.Float64() != -3 {
		t.Errorf("MulExact = %v, want -3", p)
	}

	r, err := Mul(a, b, q, NearestAway, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(MustFloat(-3, q)) {
		t.Errorf("Mul = %v, want -3(Q8.8)", r)
	}

	// Most negative squared is the one product that needs the full W1+W2 bits.
	p, err = MulExact(MinValue(q), MinValue(q))
	if err != nil {
		t.Fatal(err)
	}
	if p.Raw() != 1<<30 || !p.Format().Contains(p.Raw()) {
		t.Errorf("min*min = %d", p.Raw())
	}
	r, err = Mul(MinValue(q), MinValue(q), q, NearestAway, Saturate)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(MaxValue(q)) {
		t.Errorf("saturated min*min = %v, want max", r)
	}

	// 1/256 * 1/256 rounds to zero at Q8.8 but not with Floor of a negative.
	lsb := mustRaw(t, 1, q)
	r, _ = Mul(lsb, lsb, q, NearestAway, Saturate)
	if !r.IsZero() {
		t.Errorf("lsb*lsb = %v, want 0", r)
	}
	r, _ = Mul(lsb, lsb.Neg(Saturate), q, Floor, Saturate)
	if r.Raw() != -1 {
		t.Errorf("floor(lsb*-lsb) = %d, want -1", r.Raw())
	}

	if _, err := MulExact(MaxValue(Q(40, 0)), MaxValue(Q(40, 0))); !errors.Is(err, ErrWidth) {
		t.Errorf("80-bit product: error = %v, want ErrWidth", err)
	}
}
