//
// Copyright 2023 Google LLC
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

package stattestutils

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWeightedMean(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		values  []float64
		weights []float64
		want    float64
	}{
		{"uniform weights", []float64{1, 2, 3}, []float64{1, 1, 1}, 2},
		{"unnormalized weights", []float64{1, 2, 3}, []float64{2, 2, 2}, 2},
		{"skewed weights", []float64{0, 10}, []float64{3, 1}, 2.5},
		{"empty", nil, nil, 0},
	} {
		if got := WeightedMean(tc.values, tc.weights); !cmp.Equal(got, tc.want, cmpopts.EquateApprox(0, 1e-12)) {
			t.Errorf("WeightedMean: when %s got %f, want %f", tc.desc, got, tc.want)
		}
	}
}

func TestWeightedVariance(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		values  []float64
		weights []float64
		want    float64
	}{
		{"single value", []float64{5}, []float64{1}, 0},
		{"symmetric values", []float64{-1, 1}, []float64{1, 1}, 1},
		{"skewed weights", []float64{0, 4}, []float64{3, 1}, 3},
	} {
		if got := WeightedVariance(tc.values, tc.weights); !cmp.Equal(got, tc.want, cmpopts.EquateApprox(0, 1e-12)) {
			t.Errorf("WeightedVariance: when %s got %f, want %f", tc.desc, got, tc.want)
		}
	}
}

func TestWeightedMeanMatchesUnweighted(t *testing.T) {
	values := []float64{1.5, -2.25, 0.75, 4}
	weights := []float64{1, 1, 1, 1}
	var sum float64
	for _, v := range values {
		sum += v
	}
	want := sum / float64(len(values))
	if got := WeightedMean(values, weights); math.Abs(got-want) > 1e-12 {
		t.Errorf("WeightedMean with unit weights: got %f, want %f", got, want)
	}
}
