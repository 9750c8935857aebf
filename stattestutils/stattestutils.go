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

// Package stattestutils provides basic statistical utility functions over
// weighted values, such as the cells of a discrete probability mass function.
//
// This package is not optimized for performance or speed and is only intended
// to be used in tests.
package stattestutils

import "math"

// WeightedMean returns the mean of the values under the given weights. The
// weights do not need to be normalized; zero total weight yields a mean of 0.
func WeightedMean(values, weights []float64) float64 {
	var sum, totalWeight float64
	for i, v := range values {
		sum += v * weights[i]
		totalWeight += weights[i]
	}
	return sum / math.Max(totalWeight, math.SmallestNonzeroFloat64)
}

// WeightedVariance returns the variance of the values under the given
// weights, calculated as the weighted average of the squared distances to the
// weighted mean.
func WeightedVariance(values, weights []float64) float64 {
	mean := WeightedMean(values, weights)
	var sumOfSquares, totalWeight float64
	for i, v := range values {
		sumOfSquares += (v - mean) * (v - mean) * weights[i]
		totalWeight += weights[i]
	}
	return sumOfSquares / math.Max(totalWeight, math.SmallestNonzeroFloat64)
}
