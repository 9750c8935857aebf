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
	"math"

	"github.com/vishalbelsare/differential-privacy/checks"
	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianPrivacyLoss is the privacy loss model of the Gaussian mechanism with
// standard deviation σ and sensitivity Δ. The privacy loss at outcome x is
// (Δ²/2 - Δ·x) / σ², which is unbounded on both sides, so the model truncates
// the noise tails whose total mass is exp(massTruncationBound).
type GaussianPrivacyLoss struct {
	standardDeviation   float64
	sensitivity         float64
	pessimistic         bool
	massTruncationBound float64
	noiseDist           distuv.Normal
}

// NewGaussianPrivacyLoss returns the privacy loss model of the Gaussian
// mechanism.
//
// massTruncationBound is the natural log of the total noise mass that may be
// truncated away from the two tails. Under a pessimistic estimate the
// truncated mass counts towards the infinity mass of the resulting privacy
// loss distribution; under an optimistic estimate it is discarded.
func NewGaussianPrivacyLoss(standardDeviation, sensitivity float64, pessimistic bool, massTruncationBound float64) (*GaussianPrivacyLoss, error) {
	if err := checks.CheckStandardDeviation(standardDeviation); err != nil {
		return nil, err
	}
	if err := checks.CheckSensitivity(sensitivity); err != nil {
		return nil, err
	}
	if err := checks.CheckMassTruncationBound(massTruncationBound); err != nil {
		return nil, err
	}
	return &GaussianPrivacyLoss{
		standardDeviation:   standardDeviation,
		sensitivity:         sensitivity,
		pessimistic:         pessimistic,
		massTruncationBound: massTruncationBound,
		noiseDist:           distuv.Normal{Mu: 0, Sigma: standardDeviation},
	}, nil
}

// PrivacyLoss returns (Δ²/2 - Δ·x) / σ².
func (g *GaussianPrivacyLoss) PrivacyLoss(x float64) float64 {
	sigmaSquared := g.standardDeviation * g.standardDeviation
	return (0.5*g.sensitivity*g.sensitivity - g.sensitivity*x) / sigmaSquared
}

// InversePrivacyLoss returns the outcome at which the privacy loss equals
// loss; all smaller outcomes attain a larger loss.
func (g *GaussianPrivacyLoss) InversePrivacyLoss(loss float64) float64 {
	sigmaSquared := g.standardDeviation * g.standardDeviation
	return 0.5*g.sensitivity - loss*sigmaSquared/g.sensitivity
}

// MuUpperCDF returns the CDF of the zero-centered Gaussian noise at x.
func (g *GaussianPrivacyLoss) MuUpperCDF(x float64) float64 {
	return g.noiseDist.CDF(x)
}

// MuLowerCDF returns the CDF of the Gaussian noise centered at Δ at x.
func (g *GaussianPrivacyLoss) MuLowerCDF(x float64) float64 {
	return g.noiseDist.CDF(x - g.sensitivity)
}

// PrivacyLossTail truncates the two noise tails of total mass
// exp(massTruncationBound). The truncation points are symmetric about Δ/2.
// Under a pessimistic estimate the truncated mass is reported at privacy loss
// +∞; under an optimistic estimate it is dropped.
func (g *GaussianPrivacyLoss) PrivacyLossTail() TailPrivacyLossDistribution {
	tailMass := math.Exp(g.massTruncationBound)
	lowerX := g.noiseDist.Quantile(0.5 * tailMass)
	upperX := g.sensitivity - lowerX
	tailPMF := map[float64]float64{}
	if g.pessimistic {
		tailPMF[math.Inf(1)] = tailMass
	}
	return TailPrivacyLossDistribution{
		LowerXTruncation: lowerX,
		UpperXTruncation: upperX,
		TailPMF:          tailPMF,
	}
}

// DiscreteNoise reports that Gaussian noise is continuous.
func (g *GaussianPrivacyLoss) DiscreteNoise() bool {
	return false
}
