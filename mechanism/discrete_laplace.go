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
)

// DiscreteLaplacePrivacyLoss is the privacy loss model of the discrete Laplace
// mechanism with parameter λ and integer sensitivity Δ. The noise takes value
// x ∈ ℤ with probability proportional to exp(-λ|x|), and the privacy loss at x
// is λ(|x-Δ| - |x|), which is piecewise constant with range [-λΔ, λΔ].
type DiscreteLaplacePrivacyLoss struct {
	parameter   float64
	sensitivity int
}

// NewDiscreteLaplacePrivacyLoss returns the privacy loss model of the discrete
// Laplace mechanism.
func NewDiscreteLaplacePrivacyLoss(parameter float64, sensitivity int) (*DiscreteLaplacePrivacyLoss, error) {
	if err := checks.CheckParameter(parameter); err != nil {
		return nil, err
	}
	if err := checks.CheckSensitivityInt(sensitivity); err != nil {
		return nil, err
	}
	return &DiscreteLaplacePrivacyLoss{
		parameter:   parameter,
		sensitivity: sensitivity,
	}, nil
}

// PrivacyLoss returns λ(|x-Δ| - |x|) for an integer outcome x.
func (dl *DiscreteLaplacePrivacyLoss) PrivacyLoss(x float64) float64 {
	sensitivity := float64(dl.sensitivity)
	return dl.parameter * (math.Abs(x-sensitivity) - math.Abs(x))
}

// InversePrivacyLoss returns the largest integer outcome whose privacy loss is
// at least loss. Losses above λΔ are attained nowhere.
func (dl *DiscreteLaplacePrivacyLoss) InversePrivacyLoss(loss float64) float64 {
	sensitivity := float64(dl.sensitivity)
	if loss > dl.parameter*sensitivity {
		return math.Inf(-1)
	}
	if loss <= -dl.parameter*sensitivity {
		return math.Inf(1)
	}
	return math.Floor(0.5 * (sensitivity - loss/dl.parameter))
}

// MuUpperCDF returns the cumulative mass of the zero-centered discrete Laplace
// noise up to and including ⌊x⌋.
func (dl *DiscreteLaplacePrivacyLoss) MuUpperCDF(x float64) float64 {
	k := math.Floor(x)
	expLambda := math.Exp(-dl.parameter)
	if k < 0 {
		return math.Exp(dl.parameter*k) / (1 + expLambda)
	}
	return 1 - math.Exp(-dl.parameter*(k+1))/(1+expLambda)
}

// MuLowerCDF returns the cumulative mass of the discrete Laplace noise
// centered at Δ up to and including ⌊x⌋.
func (dl *DiscreteLaplacePrivacyLoss) MuLowerCDF(x float64) float64 {
	return dl.MuUpperCDF(x - float64(dl.sensitivity))
}

// PrivacyLossTail reports the constant-loss regions x ≤ 0 and x ≥ Δ, which
// attain the boundary losses λΔ and -λΔ exactly.
func (dl *DiscreteLaplacePrivacyLoss) PrivacyLossTail() TailPrivacyLossDistribution {
	sensitivity := float64(dl.sensitivity)
	maxLoss := dl.parameter * sensitivity
	return TailPrivacyLossDistribution{
		LowerXTruncation: 1,
		UpperXTruncation: sensitivity - 1,
		TailPMF: map[float64]float64{
			maxLoss:  dl.MuUpperCDF(0),
			-maxLoss: 1 - dl.MuUpperCDF(sensitivity - 1),
		},
	}
}

// DiscreteNoise reports that discrete Laplace noise has integer support.
func (dl *DiscreteLaplacePrivacyLoss) DiscreteNoise() bool {
	return true
}
