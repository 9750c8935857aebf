//
// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package mathutil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCeilToGrid(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		x        float64
		interval float64
		want     int
	}{
		{"exact multiple", 0.0003, 1e-4, 3},
		{"between multiples rounds up", 0.00025, 1e-4, 3},
		{"negative between multiples rounds toward zero", -0.00025, 1e-4, -2},
		{"zero", 0, 1e-4, 0},
		{"negative exact multiple", -0.75, 0.25, -3},
	} {
		if got := CeilToGrid(tc.x, tc.interval); got != tc.want {
			t.Errorf("CeilToGrid: when %s got %d, want %d", tc.desc, got, tc.want)
		}
	}
}

func TestFloorToGrid(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		x        float64
		interval float64
		want     int
	}{
		{"exact multiple", 0.75, 0.25, 3},
		{"between multiples rounds down", 0.00025, 1e-4, 2},
		{"negative between multiples rounds away from zero", -0.00025, 1e-4, -3},
		{"zero", 0, 1e-4, 0},
	} {
		if got := FloorToGrid(tc.x, tc.interval); got != tc.want {
			t.Errorf("FloorToGrid: when %s got %d, want %d", tc.desc, got, tc.want)
		}
	}
}

func TestLogAddExp(t *testing.T) {
	for _, tc := range []struct {
		desc string
		a, b float64
		want float64
	}{
		{"equal values", math.Log(0.5), math.Log(0.5), 0},
		{"a dominates", 0, -800, 0},
		{"b dominates", -800, 0, 0},
		{"a is -inf", math.Inf(-1), math.Log(0.25), math.Log(0.25)},
		{"b is -inf", math.Log(0.25), math.Inf(-1), math.Log(0.25)},
		{"both moderate", math.Log(0.3), math.Log(0.2), math.Log(0.5)},
	} {
		if got := LogAddExp(tc.a, tc.b); !cmp.Equal(got, tc.want, cmpopts.EquateApprox(0, 1e-12)) {
			t.Errorf("LogAddExp: when %s got %g, want %g", tc.desc, got, tc.want)
		}
	}
}

func TestLogSumExp(t *testing.T) {
	for _, tc := range []struct {
		desc string
		s    []float64
		want float64
	}{
		{"empty slice", nil, math.Inf(-1)},
		{"single value", []float64{-3}, -3},
		{"values summing to one", []float64{math.Log(0.25), math.Log(0.25), math.Log(0.5)}, 0},
		{"large offsets", []float64{-1000, -1000}, -1000 + math.Log(2)},
	} {
		if got := LogSumExp(tc.s); !cmp.Equal(got, tc.want, cmpopts.EquateApprox(0, 1e-12)) {
			t.Errorf("LogSumExp: when %s got %g, want %g", tc.desc, got, tc.want)
		}
	}
}

func TestKahanSumCompensates(t *testing.T) {
	// Summing 10⁷ copies of 10⁻⁷ plus 1 loses precision with a naive
	// accumulator but not with compensation.
	var k KahanSum
	k.Add(1)
	for i := 0; i < 1e7; i++ {
		k.Add(1e-7)
	}
	if got, want := k.Sum(), 2.0; !cmp.Equal(got, want, cmpopts.EquateApprox(0, 1e-9)) {
		t.Errorf("KahanSum: got %.15f, want %.15f", got, want)
	}
}

func TestInverseMonotoneFunction(t *testing.T) {
	for _, tc := range []struct {
		desc         string
		f            func(float64) float64
		target       float64
		lower, upper float64
		want         float64
	}{
		{"linear decreasing", func(x float64) float64 { return 1 - x }, 0.25, 0, 1, 0.75},
		{"exponential decay", func(x float64) float64 { return math.Exp(-x) }, math.Exp(-2), 0, 10, 2},
		{"target met at lower bound", func(x float64) float64 { return -x }, 0, 0, 10, 0},
		{"target never met", func(x float64) float64 { return 2 - x }, 0, 0, 1, 1},
	} {
		got := InverseMonotoneFunction(tc.f, tc.target, tc.lower, tc.upper)
		if !cmp.Equal(got, tc.want, cmpopts.EquateApprox(0, 1e-9)) {
			t.Errorf("InverseMonotoneFunction: when %s got %g, want %g", tc.desc, got, tc.want)
		}
	}
}
