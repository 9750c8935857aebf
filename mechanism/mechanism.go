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

// Package mechanism contains privacy loss models for additive noise mechanisms.
//
// An additive noise mechanism adds noise drawn from a fixed distribution to the
// result of a query with a known sensitivity. The model exposes the privacy
// loss ln(μ_upper(x) / μ_lower(x)) of each outcome x, where μ_upper is the
// noise distribution centered at zero and μ_lower the same distribution
// centered at the sensitivity. Under this convention the privacy loss is
// non-increasing in x for every family in this package.
package mechanism

// TailPrivacyLossDistribution describes the probability mass of μ_upper lying
// outside the outcome range that a discretization needs to iterate over.
//
// Outcomes below LowerXTruncation or above UpperXTruncation either attain a
// constant privacy loss (for noise with a bounded loss range, such as Laplace)
// or have been truncated away. TailPMF maps each such privacy loss value to the
// μ_upper mass attaining it; a key of +Inf denotes mass whose privacy loss is
// unbounded and belongs in the infinity mass of a privacy loss distribution.
type TailPrivacyLossDistribution struct {
	LowerXTruncation float64
	UpperXTruncation float64
	TailPMF          map[float64]float64
}

// AdditiveNoisePrivacyLoss is the capability set a noise family must provide
// for its privacy loss distribution to be computed on a discretized grid.
type AdditiveNoisePrivacyLoss interface {
	// PrivacyLoss returns the privacy loss ln(μ_upper(x) / μ_lower(x)) at
	// outcome x. The result is non-increasing in x and may be ±∞.
	PrivacyLoss(x float64) float64

	// InversePrivacyLoss returns the largest outcome x whose privacy loss is
	// at least loss. For discrete noise the result is an integer.
	InversePrivacyLoss(loss float64) float64

	// MuUpperCDF returns the cumulative mass of μ_upper up to and including x.
	MuUpperCDF(x float64) float64

	// MuLowerCDF returns the cumulative mass of μ_lower up to and including x.
	MuLowerCDF(x float64) float64

	// PrivacyLossTail describes the mass outside the iterated outcome range.
	PrivacyLossTail() TailPrivacyLossDistribution

	// DiscreteNoise reports whether the noise is supported on the integers.
	DiscreteNoise() bool
}
