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

// LaplacePrivacyLoss is the privacy loss model of the Laplace mechanism with
// noise scale b and sensitivity Δ. The privacy loss at outcome x is
// (|x-Δ| - |x|) / b, ranging over [-Δ/b, Δ/b].
type LaplacePrivacyLoss struct {
	parameter   float64
	sensitivity float64
	noiseDist   distuv.Laplace
}

// NewLaplacePrivacyLoss returns the privacy loss model of the Laplace
// mechanism with the given noise parameter and sensitivity.
func NewLaplacePrivacyLoss(parameter, sensitivity float64) (*LaplacePrivacyLoss, error) {
	if err := checks.CheckParameter(parameter); err != nil {
		return nil, err
	}
	if err := checks.CheckSensitivity(sensitivity); err != nil {
		return nil, err
	}
	return &LaplacePrivacyLoss{
		parameter:   parameter,
		sensitivity: sensitivity,
		noiseDist:   distuv.Laplace{Mu: 0, Scale: parameter},
	}, nil
}

// PrivacyLoss returns (|x-Δ| - |x|) / b.
func (l *LaplacePrivacyLoss) PrivacyLoss(x float64) float64 {
	return (math.Abs(x-l.sensitivity) - math.Abs(x)) / l.parameter
}

// InversePrivacyLoss returns the largest outcome whose privacy loss is at
// least loss. Losses above Δ/b are attained nowhere, and losses of -Δ/b or
// below are attained everywhere.
func (l *LaplacePrivacyLoss) InversePrivacyLoss(loss float64) float64 {
	maxLoss := l.sensitivity / l.parameter
	if loss > maxLoss {
		return math.Inf(-1)
	}
	if loss <= -maxLoss {
		return math.Inf(1)
	}
	return 0.5 * (l.sensitivity - l.parameter*loss)
}

// MuUpperCDF returns the CDF of the zero-centered Laplace noise at x.
func (l *LaplacePrivacyLoss) MuUpperCDF(x float64) float64 {
	return l.noiseDist.CDF(x)
}

// MuLowerCDF returns the CDF of the Laplace noise centered at Δ at x.
func (l *LaplacePrivacyLoss) MuLowerCDF(x float64) float64 {
	return l.noiseDist.CDF(x - l.sensitivity)
}

// PrivacyLossTail reports the constant-loss regions x ≤ 0 and x ≥ Δ, which
// attain the boundary losses Δ/b and -Δ/b exactly.
func (l *LaplacePrivacyLoss) PrivacyLossTail() TailPrivacyLossDistribution {
	maxLoss := l.sensitivity / l.parameter
	return TailPrivacyLossDistribution{
		LowerXTruncation: 0,
		UpperXTruncation: l.sensitivity,
		TailPMF: map[float64]float64{
			maxLoss:  l.MuUpperCDF(0),
			-maxLoss: 1 - l.MuUpperCDF(l.sensitivity),
		},
	}
}

// DiscreteNoise reports that Laplace noise is continuous.
func (l *LaplacePrivacyLoss) DiscreteNoise() bool {
	return false
}
