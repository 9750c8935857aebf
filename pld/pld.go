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

// Package pld implements privacy loss distributions (PLDs) of differentially
// private mechanisms on a discretized grid.
//
// The privacy loss distribution of two discrete distributions, the upper
// distribution mu_upper and the lower distribution mu_lower, is the
// distribution on real numbers generated by first picking an outcome o
// according to mu_upper and then outputting the privacy loss
// ln(mu_upper(o) / mu_lower(o)). A PLD allows one to compute the
// epsilon-hockey stick divergence between mu_upper and mu_lower,
// sum_o [mu_upper(o) - e^epsilon * mu_lower(o)]_+, which governs the delta of
// (epsilon, delta)-differential privacy of the mechanism, and to track it
// accurately under composition.
//
// The probability masses are kept on an integer grid with spacing equal to
// the discretization interval. Under a pessimistic estimate every privacy
// loss is rounded up to the next grid point, so that the divergence computed
// from the stored PLD is an upper bound on the true divergence at every
// epsilon; an optimistic estimate rounds down and yields a lower bound.
package pld

import (
	"math"

	"github.com/vishalbelsare/differential-privacy/mathutil"
)

// EstimateType is the direction in which privacy losses are rounded onto the
// discretization grid.
type EstimateType int

const (
	// Pessimistic rounding yields an upper bound on the hockey stick
	// divergence. Composition and serialization require it.
	Pessimistic EstimateType = iota
	// Optimistic rounding yields a lower bound on the hockey stick
	// divergence.
	Optimistic
)

var estimateTypeName = []string{"Pessimistic", "Optimistic"}

func (e EstimateType) String() string {
	return estimateTypeName[e]
}

// PrivacyLossDistribution is a discretized privacy loss distribution.
//
// It is safe to share across goroutines for the read-only queries; Compose
// and ComposeNumTimes mutate the distribution and require exclusive access.
type PrivacyLossDistribution struct {
	discretizationInterval float64
	// infinityMass is the mu_upper mass of outcomes with privacy loss +∞:
	// outcomes in the support of mu_upper but not mu_lower, plus any
	// pessimistically truncated upper-tail mass.
	infinityMass float64
	pmf          ProbabilityMassFunction
	estimateType EstimateType
	state        compositionState
}

// DiscretizationInterval returns the grid spacing on the privacy loss axis.
func (p *PrivacyLossDistribution) DiscretizationInterval() float64 {
	return p.discretizationInterval
}

// GetEstimateType returns the rounding direction of the distribution.
func (p *PrivacyLossDistribution) GetEstimateType() EstimateType {
	return p.estimateType
}

// InfinityMass returns the mu_upper mass of outcomes with infinite privacy
// loss.
func (p *PrivacyLossDistribution) InfinityMass() float64 {
	return p.infinityMass
}

// Pmf returns a copy of the probability mass function over the grid. The
// mass at index i lives at privacy loss i times the discretization interval;
// the infinity mass is not part of the PMF.
func (p *PrivacyLossDistribution) Pmf() ProbabilityMassFunction {
	return p.pmf.Clone()
}

// GetDeltaForEpsilon computes the epsilon-hockey stick divergence between
// mu_upper and mu_lower,
//
//	delta = infinityMass + sum_i [m_i - e^epsilon * m_i * e^(-i*h)]_+ ,
//
// where the mu_lower mass at index i is reconstructed from the stored
// mu_upper mass through the privacy loss i·h. When the distribution was
// constructed with a pessimistic estimate, the result is an upper bound on
// the true divergence of the original distribution pair.
func (p *PrivacyLossDistribution) GetDeltaForEpsilon(epsilon float64) float64 {
	var delta mathutil.KahanSum
	delta.Add(p.infinityMass)
	// Sum from the largest privacy loss downward so that the small terms
	// near the threshold are accumulated into an already formed sum.
	indices := p.pmf.SortedIndices()
	for i := len(indices) - 1; i >= 0; i-- {
		loss := float64(indices[i]) * p.discretizationInterval
		if loss <= epsilon {
			break
		}
		// [m - e^(eps-loss) * m]_+ computed via expm1 to avoid cancellation
		// when loss is barely above epsilon.
		delta.Add(p.pmf[indices[i]] * -math.Expm1(epsilon-loss))
	}
	return math.Min(math.Max(delta.Sum(), 0), 1)
}

// GetEpsilonForDelta computes the smallest nonnegative epsilon for which the
// epsilon-hockey stick divergence is at most delta. When no finite epsilon
// achieves delta, which happens exactly when the infinity mass exceeds delta,
// the result is +∞.
func (p *PrivacyLossDistribution) GetEpsilonForDelta(delta float64) float64 {
	if p.infinityMass > delta {
		return math.Inf(1)
	}
	if p.GetDeltaForEpsilon(0) <= delta {
		return 0
	}
	// The divergence is non-increasing in epsilon and reaches infinityMass
	// at the largest privacy loss in the support, so the bracket below
	// contains the answer.
	_, maxIndex, ok := p.pmf.supportBounds()
	if !ok {
		return 0
	}
	upper := float64(maxIndex) * p.discretizationInterval
	return mathutil.InverseMonotoneFunction(p.GetDeltaForEpsilon, delta, 0, upper)
}
