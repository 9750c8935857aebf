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

package mechanism

import (
	"fmt"
	"math"

	"github.com/vishalbelsare/differential-privacy/checks"
	"github.com/vishalbelsare/differential-privacy/mathutil"
)

// maxOutsideMass bounds the noise mass that may fall outside the truncation
// range when the truncation bound is chosen automatically.
const maxOutsideMass = 1e-30

// DiscreteGaussianPrivacyLoss is the privacy loss model of the discrete
// Gaussian mechanism with parameter σ and integer sensitivity Δ. The noise
// takes value x ∈ ℤ ∩ [-T, T] with probability proportional to
// exp(-x²/(2σ²)), where T is the truncation bound.
//
// Because the noise support is bounded, outcomes in [-T, -T+Δ-1] occur under
// μ_upper but not μ_lower and carry privacy loss +∞; their mass is reported by
// PrivacyLossTail.
type DiscreteGaussianPrivacyLoss struct {
	sigma           float64
	sensitivity     int
	truncationBound int
	// noisePMF[k] and noiseCDF[k] hold the mass and cumulative mass of the
	// noise at outcome k-truncationBound.
	noisePMF []float64
	noiseCDF []float64
}

// NewDiscreteGaussianPrivacyLoss returns the privacy loss model of the
// discrete Gaussian mechanism.
//
// truncationBound restricts the noise support to [-truncationBound,
// truncationBound]. Passing 0 selects the smallest bound for which the
// untruncated noise mass outside the range is at most 10⁻³⁰.
func NewDiscreteGaussianPrivacyLoss(sigma float64, sensitivity, truncationBound int) (*DiscreteGaussianPrivacyLoss, error) {
	if err := checks.CheckStandardDeviation(sigma); err != nil {
		return nil, err
	}
	if err := checks.CheckSensitivityInt(sensitivity); err != nil {
		return nil, err
	}
	if truncationBound == 0 {
		truncationBound = defaultTruncationBound(sigma)
	}
	if err := checks.CheckTruncationBound(truncationBound); err != nil {
		return nil, err
	}
	if sensitivity > 2*truncationBound {
		return nil, fmt.Errorf("Sensitivity is %d, must be at most twice the truncation bound %d for the two noise distributions to overlap", sensitivity, truncationBound)
	}

	// Normalize in the log domain so that very wide supports do not underflow.
	logWeights := make([]float64, 2*truncationBound+1)
	for k := range logWeights {
		x := float64(k - truncationBound)
		logWeights[k] = -x * x / (2 * sigma * sigma)
	}
	logNormalization := mathutil.LogSumExp(logWeights)

	noisePMF := make([]float64, len(logWeights))
	noiseCDF := make([]float64, len(logWeights))
	var cumulative mathutil.KahanSum
	for k, logWeight := range logWeights {
		noisePMF[k] = math.Exp(logWeight - logNormalization)
		cumulative.Add(noisePMF[k])
		noiseCDF[k] = cumulative.Sum()
	}

	return &DiscreteGaussianPrivacyLoss{
		sigma:           sigma,
		sensitivity:     sensitivity,
		truncationBound: truncationBound,
		noisePMF:        noisePMF,
		noiseCDF:        noiseCDF,
	}, nil
}

// defaultTruncationBound returns the smallest T such that the mass of the
// untruncated discrete Gaussian outside [-T, T] is at most maxOutsideMass,
// using the bound P[|X| > T] ≤ 2·exp(-T²/(2σ²)).
func defaultTruncationBound(sigma float64) int {
	return int(math.Ceil(sigma * math.Sqrt(2*math.Log(2/maxOutsideMass))))
}

// TruncationBound returns the half-width of the noise support.
func (dg *DiscreteGaussianPrivacyLoss) TruncationBound() int {
	return dg.truncationBound
}

// PrivacyLoss returns Δ(Δ - 2x)/(2σ²) for an integer outcome x within the
// overlap of the two supports, +∞ for outcomes below the μ_lower support
// (x < Δ-T), and -∞ for outcomes above the μ_upper support (x > T).
func (dg *DiscreteGaussianPrivacyLoss) PrivacyLoss(x float64) float64 {
	lowerSupport := float64(dg.sensitivity - dg.truncationBound)
	if x < lowerSupport {
		return math.Inf(1)
	}
	if x > float64(dg.truncationBound) {
		return math.Inf(-1)
	}
	sensitivity := float64(dg.sensitivity)
	return sensitivity * (sensitivity - 2*x) / (2 * dg.sigma * dg.sigma)
}

// InversePrivacyLoss returns the largest integer outcome whose privacy loss is
// at least loss.
func (dg *DiscreteGaussianPrivacyLoss) InversePrivacyLoss(loss float64) float64 {
	sensitivity := float64(dg.sensitivity)
	return math.Floor(0.5*sensitivity - loss*dg.sigma*dg.sigma/sensitivity)
}

// MuUpperCDF returns the cumulative mass of the truncated noise up to and
// including ⌊x⌋.
func (dg *DiscreteGaussianPrivacyLoss) MuUpperCDF(x float64) float64 {
	k := int(math.Floor(x)) + dg.truncationBound
	if k < 0 {
		return 0
	}
	if k >= len(dg.noiseCDF) {
		return 1
	}
	return dg.noiseCDF[k]
}

// MuLowerCDF returns the cumulative mass of the truncated noise centered at Δ
// up to and including ⌊x⌋.
func (dg *DiscreteGaussianPrivacyLoss) MuLowerCDF(x float64) float64 {
	return dg.MuUpperCDF(x - float64(dg.sensitivity))
}

// PrivacyLossTail reports the outcomes in [-T, -T+Δ-1], which μ_lower cannot
// produce; their mass has privacy loss +∞.
func (dg *DiscreteGaussianPrivacyLoss) PrivacyLossTail() TailPrivacyLossDistribution {
	lowerX := float64(dg.sensitivity - dg.truncationBound)
	return TailPrivacyLossDistribution{
		LowerXTruncation: lowerX,
		UpperXTruncation: float64(dg.truncationBound),
		TailPMF: map[float64]float64{
			math.Inf(1): dg.MuUpperCDF(lowerX - 1),
		},
	}
}

// DiscreteNoise reports that discrete Gaussian noise has integer support.
func (dg *DiscreteGaussianPrivacyLoss) DiscreteNoise() bool {
	return true
}
