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

package pld

import (
	"math"

	log "github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vishalbelsare/differential-privacy/checks"
	"github.com/vishalbelsare/differential-privacy/mathutil"
	"github.com/vishalbelsare/differential-privacy/mechanism"
)

const (
	// DefaultDiscretizationInterval is the grid spacing used when an options
	// struct leaves the interval unset.
	DefaultDiscretizationInterval = 1e-4
	// DefaultMassTruncationBound is the ln-mass threshold below which noise
	// tails are truncated when unset.
	DefaultMassTruncationBound = -50
	// DefaultTailMassTruncation is the per-composition upper-tail truncation
	// budget.
	DefaultTailMassTruncation = 1e-15
)

// roundToGrid rounds a privacy loss onto the grid: up for a pessimistic
// estimate, so the stored index is an upper bound on the loss, and down for
// an optimistic one.
func roundToGrid(loss, interval float64, estimateType EstimateType) int {
	if estimateType == Pessimistic {
		return mathutil.CeilToGrid(loss, interval)
	}
	return mathutil.FloorToGrid(loss, interval)
}

// CreateIdentity returns the PLD of an algorithm that does not leak privacy
// at all: a single cell of mass 1 at privacy loss 0. It is neutral under
// composition. A nonpositive discretizationInterval of 0 selects the default
// interval; other invalid intervals indicate programmer error.
func CreateIdentity(discretizationInterval float64) *PrivacyLossDistribution {
	if discretizationInterval == 0 {
		discretizationInterval = DefaultDiscretizationInterval
	}
	if err := checks.CheckDiscretizationInterval(discretizationInterval); err != nil {
		log.Fatalf("CreateIdentity(discretizationInterval %e) checks failed with %v", discretizationInterval, err)
	}
	return &PrivacyLossDistribution{
		discretizationInterval: discretizationInterval,
		infinityMass:           0,
		pmf:                    ProbabilityMassFunction{0: 1},
		estimateType:           Pessimistic,
	}
}

// CreateFromPMFs creates a PLD from the probability mass functions of the
// upper and lower distributions over a common discrete outcome space.
//
// Outcomes occurring under pmfUpper but not pmfLower carry privacy loss +∞
// and contribute to the infinity mass. Outcomes whose ln upper mass is below
// massTruncationBound are added to the infinity mass under a pessimistic
// estimate and discarded under an optimistic one.
func CreateFromPMFs(pmfLower, pmfUpper map[int]float64, estimateType EstimateType, discretizationInterval, massTruncationBound float64) (*PrivacyLossDistribution, error) {
	if discretizationInterval == 0 {
		discretizationInterval = DefaultDiscretizationInterval
	}
	if massTruncationBound == 0 {
		massTruncationBound = DefaultMassTruncationBound
	}
	if err := checks.CheckDiscretizationInterval(discretizationInterval); err != nil {
		return nil, err
	}
	if err := checks.CheckMassTruncationBound(massTruncationBound); err != nil {
		return nil, err
	}

	outcomes := maps.Keys(pmfUpper)
	slices.Sort(outcomes)
	pmf := make(ProbabilityMassFunction)
	var infinityMass mathutil.KahanSum
	for _, outcome := range outcomes {
		upperMass := pmfUpper[outcome]
		if upperMass <= 0 {
			continue
		}
		lowerMass := pmfLower[outcome]
		if lowerMass == 0 {
			infinityMass.Add(upperMass)
			continue
		}
		if math.Log(upperMass) < massTruncationBound {
			if estimateType == Pessimistic {
				infinityMass.Add(upperMass)
			}
			continue
		}
		loss := math.Log(upperMass) - math.Log(lowerMass)
		pmf.AddMass(roundToGrid(loss, discretizationInterval, estimateType), upperMass)
	}
	return &PrivacyLossDistribution{
		discretizationInterval: discretizationInterval,
		infinityMass:           infinityMass.Sum(),
		pmf:                    pmf,
		estimateType:           estimateType,
	}, nil
}

// CreateForAdditiveNoise creates the PLD of an additive noise mechanism by
// projecting its privacy loss model onto the discretization grid.
//
// For discrete noise every integer outcome between the truncation points is
// assigned to the grid cell its privacy loss rounds to. For continuous noise
// each grid cell receives the mu_upper mass of the outcome interval whose
// privacy loss falls into it, delimited through the mechanism's inverse
// privacy loss. The masses outside the truncation points are taken from the
// mechanism's privacy loss tail; tail mass reported at loss +∞ goes to the
// infinity mass.
func CreateForAdditiveNoise(noisePrivacyLoss mechanism.AdditiveNoisePrivacyLoss, estimateType EstimateType, discretizationInterval float64) (*PrivacyLossDistribution, error) {
	if discretizationInterval == 0 {
		discretizationInterval = DefaultDiscretizationInterval
	}
	if err := checks.CheckDiscretizationInterval(discretizationInterval); err != nil {
		return nil, err
	}

	pmf := make(ProbabilityMassFunction)
	var infinityMass mathutil.KahanSum
	tail := noisePrivacyLoss.PrivacyLossTail()
	tailLosses := maps.Keys(tail.TailPMF)
	slices.Sort(tailLosses)
	for _, loss := range tailLosses {
		mass := tail.TailPMF[loss]
		if mass <= 0 {
			continue
		}
		if math.IsInf(loss, 1) {
			infinityMass.Add(mass)
			continue
		}
		pmf.AddMass(roundToGrid(loss, discretizationInterval, estimateType), mass)
	}

	if noisePrivacyLoss.DiscreteNoise() {
		lower := int(math.Ceil(tail.LowerXTruncation))
		upper := int(math.Floor(tail.UpperXTruncation))
		for x := lower; x <= upper; x++ {
			mass := noisePrivacyLoss.MuUpperCDF(float64(x)) - noisePrivacyLoss.MuUpperCDF(float64(x)-1)
			if mass <= 0 {
				continue
			}
			loss := noisePrivacyLoss.PrivacyLoss(float64(x))
			pmf.AddMass(roundToGrid(loss, discretizationInterval, estimateType), mass)
		}
	} else {
		// Walk the grid cell boundaries between the smallest and largest
		// privacy loss attained inside the truncation points. The privacy
		// loss is non-increasing in the outcome, so the boundary outcomes
		// descend as the boundary losses ascend.
		lowerIndex := mathutil.FloorToGrid(noisePrivacyLoss.PrivacyLoss(tail.UpperXTruncation), discretizationInterval)
		upperIndex := mathutil.CeilToGrid(noisePrivacyLoss.PrivacyLoss(tail.LowerXTruncation), discretizationInterval)
		boundaryOutcome := func(index int) float64 {
			x := noisePrivacyLoss.InversePrivacyLoss(float64(index) * discretizationInterval)
			return math.Min(math.Max(x, tail.LowerXTruncation), tail.UpperXTruncation)
		}
		previousOutcome := boundaryOutcome(lowerIndex)
		for index := lowerIndex; index < upperIndex; index++ {
			nextOutcome := boundaryOutcome(index + 1)
			mass := noisePrivacyLoss.MuUpperCDF(previousOutcome) - noisePrivacyLoss.MuUpperCDF(nextOutcome)
			previousOutcome = nextOutcome
			if mass <= 0 {
				continue
			}
			cellIndex := index + 1
			if estimateType == Optimistic {
				cellIndex = index
			}
			pmf.AddMass(cellIndex, mass)
		}
	}

	return &PrivacyLossDistribution{
		discretizationInterval: discretizationInterval,
		infinityMass:           infinityMass.Sum(),
		pmf:                    pmf,
		estimateType:           estimateType,
	}, nil
}

// LaplaceMechanismOptions contains the options for creating the PLD of a
// Laplace mechanism.
type LaplaceMechanismOptions struct {
	Parameter              float64      // Noise scale b. Required.
	Sensitivity            float64      // Sensitivity Δ of the underlying query. Defaults to 1.
	EstimateType           EstimateType // Rounding direction. Defaults to Pessimistic.
	DiscretizationInterval float64      // Grid spacing. Defaults to 1e-4.
}

// CreateForLaplaceMechanism creates the PLD of the Laplace mechanism with the
// given options.
func CreateForLaplaceMechanism(opt *LaplaceMechanismOptions) (*PrivacyLossDistribution, error) {
	if opt == nil {
		opt = &LaplaceMechanismOptions{}
	}
	sensitivity := opt.Sensitivity
	if sensitivity == 0 {
		sensitivity = 1
	}
	laplace, err := mechanism.NewLaplacePrivacyLoss(opt.Parameter, sensitivity)
	if err != nil {
		return nil, err
	}
	return CreateForAdditiveNoise(laplace, opt.EstimateType, opt.DiscretizationInterval)
}

// GaussianMechanismOptions contains the options for creating the PLD of a
// Gaussian mechanism.
type GaussianMechanismOptions struct {
	StandardDeviation      float64      // Noise standard deviation σ. Required.
	Sensitivity            float64      // Sensitivity Δ of the underlying query. Defaults to 1.
	EstimateType           EstimateType // Rounding direction. Defaults to Pessimistic.
	DiscretizationInterval float64      // Grid spacing. Defaults to 1e-4.
	MassTruncationBound    float64      // ln of the truncatable tail mass. Defaults to -50.
}

// CreateForGaussianMechanism creates the PLD of the Gaussian mechanism with
// the given options.
func CreateForGaussianMechanism(opt *GaussianMechanismOptions) (*PrivacyLossDistribution, error) {
	if opt == nil {
		opt = &GaussianMechanismOptions{}
	}
	sensitivity := opt.Sensitivity
	if sensitivity == 0 {
		sensitivity = 1
	}
	massTruncationBound := opt.MassTruncationBound
	if massTruncationBound == 0 {
		massTruncationBound = DefaultMassTruncationBound
	}
	gaussian, err := mechanism.NewGaussianPrivacyLoss(opt.StandardDeviation, sensitivity, opt.EstimateType == Pessimistic, massTruncationBound)
	if err != nil {
		return nil, err
	}
	return CreateForAdditiveNoise(gaussian, opt.EstimateType, opt.DiscretizationInterval)
}

// DiscreteLaplaceMechanismOptions contains the options for creating the PLD
// of a discrete Laplace mechanism.
type DiscreteLaplaceMechanismOptions struct {
	Parameter              float64      // Noise parameter λ. Required.
	Sensitivity            int          // Integer sensitivity Δ. Defaults to 1.
	EstimateType           EstimateType // Rounding direction. Defaults to Pessimistic.
	DiscretizationInterval float64      // Grid spacing. Defaults to 1e-4.
}

// CreateForDiscreteLaplaceMechanism creates the PLD of the discrete Laplace
// mechanism with the given options.
func CreateForDiscreteLaplaceMechanism(opt *DiscreteLaplaceMechanismOptions) (*PrivacyLossDistribution, error) {
	if opt == nil {
		opt = &DiscreteLaplaceMechanismOptions{}
	}
	sensitivity := opt.Sensitivity
	if sensitivity == 0 {
		sensitivity = 1
	}
	discreteLaplace, err := mechanism.NewDiscreteLaplacePrivacyLoss(opt.Parameter, sensitivity)
	if err != nil {
		return nil, err
	}
	return CreateForAdditiveNoise(discreteLaplace, opt.EstimateType, opt.DiscretizationInterval)
}

// DiscreteGaussianMechanismOptions contains the options for creating the PLD
// of a discrete Gaussian mechanism.
type DiscreteGaussianMechanismOptions struct {
	Sigma                  float64      // Noise parameter σ. Required.
	Sensitivity            int          // Integer sensitivity Δ. Defaults to 1.
	EstimateType           EstimateType // Rounding direction. Defaults to Pessimistic.
	DiscretizationInterval float64      // Grid spacing. Defaults to 1e-4.
	// TruncationBound restricts the noise support to [-TruncationBound,
	// TruncationBound]. When unset, the smallest bound keeping the outside
	// mass at most 1e-30 is chosen.
	TruncationBound int
}

// CreateForDiscreteGaussianMechanism creates the PLD of the discrete Gaussian
// mechanism with the given options.
func CreateForDiscreteGaussianMechanism(opt *DiscreteGaussianMechanismOptions) (*PrivacyLossDistribution, error) {
	if opt == nil {
		opt = &DiscreteGaussianMechanismOptions{}
	}
	sensitivity := opt.Sensitivity
	if sensitivity == 0 {
		sensitivity = 1
	}
	discreteGaussian, err := mechanism.NewDiscreteGaussianPrivacyLoss(opt.Sigma, sensitivity, opt.TruncationBound)
	if err != nil {
		return nil, err
	}
	return CreateForAdditiveNoise(discreteGaussian, opt.EstimateType, opt.DiscretizationInterval)
}

// RandomizedResponseOptions contains the options for creating the PLD of the
// Randomized Response mechanism.
type RandomizedResponseOptions struct {
	NoiseParameter         float64      // Probability p of outputting a random bucket. Required.
	NumBuckets             int          // Number of input and output buckets. Required.
	EstimateType           EstimateType // Rounding direction. Defaults to Pessimistic.
	DiscretizationInterval float64      // Grid spacing. Defaults to 1e-4.
}

// CreateForRandomizedResponse creates the PLD of the Randomized Response
// mechanism over NumBuckets buckets: with probability 1 - NoiseParameter the
// input bucket is output, otherwise a uniformly random bucket is.
//
// The privacy loss takes the two finite values ±ln((1-p+p/k)/(p/k)), plus the
// value 0 for the k-2 buckets matching neither input when k > 2. When p = 0
// the mechanism is deterministic and the entire mass has privacy loss +∞.
func CreateForRandomizedResponse(opt *RandomizedResponseOptions) (*PrivacyLossDistribution, error) {
	if opt == nil {
		opt = &RandomizedResponseOptions{}
	}
	if err := checks.CheckNoiseParameter(opt.NoiseParameter); err != nil {
		return nil, err
	}
	if err := checks.CheckNumBuckets(opt.NumBuckets); err != nil {
		return nil, err
	}
	discretizationInterval := opt.DiscretizationInterval
	if discretizationInterval == 0 {
		discretizationInterval = DefaultDiscretizationInterval
	}
	if err := checks.CheckDiscretizationInterval(discretizationInterval); err != nil {
		return nil, err
	}

	if opt.NoiseParameter == 0 {
		// The mechanism deterministically reveals its input.
		return &PrivacyLossDistribution{
			discretizationInterval: discretizationInterval,
			infinityMass:           1,
			pmf:                    make(ProbabilityMassFunction),
			estimateType:           opt.EstimateType,
		}, nil
	}

	p := opt.NoiseParameter
	k := float64(opt.NumBuckets)
	randomBucketMass := p / k
	correctBucketMass := 1 - p + randomBucketMass
	lossValue := math.Log(correctBucketMass) - math.Log(randomBucketMass)

	pmf := make(ProbabilityMassFunction)
	// Outputting the true input bucket versus the neighboring input bucket.
	pmf.AddMass(roundToGrid(lossValue, discretizationInterval, opt.EstimateType), correctBucketMass)
	pmf.AddMass(roundToGrid(-lossValue, discretizationInterval, opt.EstimateType), randomBucketMass)
	// The remaining k-2 buckets are equally likely under both inputs.
	if opt.NumBuckets > 2 {
		pmf.AddMass(0, (k-2)*randomBucketMass)
	}
	return &PrivacyLossDistribution{
		discretizationInterval: discretizationInterval,
		infinityMass:           0,
		pmf:                    pmf,
		estimateType:           opt.EstimateType,
	}, nil
}

// CreateForPrivacyParameters creates the canonical pessimistic PLD of any
// (ε₀, δ₀)-differentially private mechanism:
//
//	+∞  with probability δ₀,
//	 ε₀ with probability (1-δ₀) / (1+e^(-ε₀)),
//	-ε₀ with probability (1-δ₀) / (1+e^(ε₀)).
//
// Its divergence reproduces δ(ε₀) ≥ δ₀, with equality as the discretization
// interval tends to zero.
func CreateForPrivacyParameters(epsilon, delta, discretizationInterval float64) (*PrivacyLossDistribution, error) {
	if err := checks.CheckEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckDelta(delta); err != nil {
		return nil, err
	}
	if discretizationInterval == 0 {
		discretizationInterval = DefaultDiscretizationInterval
	}
	if err := checks.CheckDiscretizationInterval(discretizationInterval); err != nil {
		return nil, err
	}

	pmf := make(ProbabilityMassFunction)
	pmf.AddMass(mathutil.CeilToGrid(epsilon, discretizationInterval), (1-delta)/(1+math.Exp(-epsilon)))
	pmf.AddMass(mathutil.CeilToGrid(-epsilon, discretizationInterval), (1-delta)/(1+math.Exp(epsilon)))
	return &PrivacyLossDistribution{
		discretizationInterval: discretizationInterval,
		infinityMass:           delta,
		pmf:                    pmf,
		estimateType:           Pessimistic,
	}, nil
}
