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

// Package mathutil contains numerical helpers shared by the privacy loss
// mechanisms and the privacy loss distribution: grid rounding, compensated
// summation, stable log-domain arithmetic and monotone function inversion.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BisectionTolerance is the terminating tolerance of InverseMonotoneFunction.
// It guarantees that quantization of the result on a grid of the supported
// discretization intervals is correct to ±1 index.
var BisectionTolerance = math.Exp2(-40)

// CeilToGrid returns ⌈x/interval⌉, the index of the smallest grid multiple of
// interval that is at least x.
func CeilToGrid(x, interval float64) int {
	return int(math.Ceil(x / interval))
}

// FloorToGrid returns ⌊x/interval⌋, the index of the largest grid multiple of
// interval that is at most x.
func FloorToGrid(x, interval float64) int {
	return int(math.Floor(x / interval))
}

// LogAddExp returns ln(eᵃ + eᵇ) without overflowing for large a or b.
func LogAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSumExp returns ln(Σ eˣ) over the values in s, computed in a numerically
// stable manner. It returns -∞ for an empty slice.
func LogSumExp(s []float64) float64 {
	if len(s) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(s)
}

// KahanSum accumulates float64 values with Kahan compensation, so that long
// sums of values of mixed magnitude do not lose mass to cancellation.
type KahanSum struct {
	sum, compensation float64
}

// Add accumulates x.
func (k *KahanSum) Add(x float64) {
	y := x - k.compensation
	t := k.sum + y
	k.compensation = (t - k.sum) - y
	k.sum = t
}

// Sum returns the compensated sum of all values added so far.
func (k *KahanSum) Sum() float64 {
	return k.sum
}

// InverseMonotoneFunction returns the smallest x within [lower, upper] such
// that f(x) ≤ target, where f is non-increasing on the interval. If
// f(upper) > target, upper is returned. The search terminates when the bracket
// is narrower than BisectionTolerance or collapses.
func InverseMonotoneFunction(f func(float64) float64, target, lower, upper float64) float64 {
	if f(lower) <= target {
		return lower
	}
	for upper-lower > BisectionTolerance {
		middle := lower + (upper-lower)/2
		if middle <= lower || middle >= upper {
			break
		}
		if f(middle) > target {
			lower = middle
		} else {
			upper = middle
		}
	}
	return upper
}
