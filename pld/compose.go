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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vishalbelsare/differential-privacy/checks"
	"github.com/vishalbelsare/differential-privacy/mathutil"
)

// maxComposedSupport bounds the dense support size a single convolution may
// produce. Larger results indicate a runaway composition and are surfaced as
// an error instead of exhausting memory.
const maxComposedSupport = 1 << 24

// directConvolutionLimit is the largest product of support sizes for which
// direct convolution is used instead of FFT. Small convolutions are faster,
// and exact, without the transform.
const directConvolutionLimit = 1 << 16

// ValidateComposition returns an error if other cannot be composed into p:
// the discretization intervals and the estimate types must be equal.
func (p *PrivacyLossDistribution) ValidateComposition(other *PrivacyLossDistribution) error {
	if p.discretizationInterval != other.discretizationInterval {
		return fmt.Errorf("Cannot compose privacy loss distributions with different discretization intervals %e and %e",
			p.discretizationInterval, other.discretizationInterval)
	}
	if p.estimateType != other.estimateType {
		return fmt.Errorf("Cannot compose privacy loss distributions with different estimate types %v and %v",
			p.estimateType, other.estimateType)
	}
	return nil
}

// Compose composes other into p: the resulting PLD is that of the mechanism
// that runs both underlying mechanisms on the same input. Its PMF is the
// convolution of the two PMFs and its infinity mass combines the two infinity
// masses.
//
// tailMassTruncation is an upper bound on the upper-tail probability mass
// that may be truncated from the result; the truncated mass is added to the
// infinity mass, preserving the pessimistic upper bound. Truncation is not
// available for optimistic estimates, for which only tailMassTruncation = 0
// is accepted. On error p is left unchanged.
func (p *PrivacyLossDistribution) Compose(other *PrivacyLossDistribution, tailMassTruncation float64) error {
	if err := p.ValidateComposition(other); err != nil {
		return err
	}
	if err := checks.CheckTailMassTruncation(tailMassTruncation); err != nil {
		return err
	}
	if p.estimateType == Optimistic && tailMassTruncation > 0 {
		return fmt.Errorf("Tail mass truncation of %e requested, but truncation is only supported for Pessimistic estimates", tailMassTruncation)
	}

	composedPmf, err := convolve(p.pmf, other.pmf)
	if err != nil {
		return err
	}
	truncated := 0.0
	if tailMassTruncation > 0 {
		truncated = truncateUpperTail(composedPmf, tailMassTruncation)
	}
	infinityMass := combinedInfinityMass(p.infinityMass, other.infinityMass) + truncated

	p.pmf = composedPmf
	p.infinityMass = math.Min(infinityMass, 1)
	p.state = Composed
	return nil
}

// ComposeNumTimes composes p with itself numTimes times using binary
// exponentiation, so that the work is logarithmic in numTimes rather than
// linear.
//
// Truncation is applied after every squaring and every multiplication with a
// per-step budget of tailMassTruncation / (2⌈log₂ numTimes⌉). A squaring's
// budget is further divided by the number of times the squared factor enters
// the final product, since mass removed from it is lost again with each use.
// This keeps the aggregate mass moved to infinity within tailMassTruncation.
// Only supported for Pessimistic estimates. On error p is left unchanged.
func (p *PrivacyLossDistribution) ComposeNumTimes(numTimes int, tailMassTruncation float64) error {
	if numTimes <= 0 {
		return fmt.Errorf("NumTimes is %d, must be strictly positive", numTimes)
	}
	if p.estimateType != Pessimistic {
		return fmt.Errorf("Self-composition is only supported for Pessimistic estimates, got %v", p.estimateType)
	}
	if err := checks.CheckTailMassTruncation(tailMassTruncation); err != nil {
		return err
	}
	if numTimes == 1 {
		p.state = Composed
		return nil
	}

	perStepTruncation := 0.0
	if steps := 2 * int(math.Ceil(math.Log2(float64(numTimes)))); steps > 0 {
		perStepTruncation = tailMassTruncation / float64(steps)
	}

	accumulator := ProbabilityMassFunction{0: 1}
	base := p.pmf.Clone()
	remaining := numTimes
	for remaining > 0 {
		if remaining&1 == 1 {
			composed, err := convolve(accumulator, base)
			if err != nil {
				return err
			}
			truncateUpperTail(composed, perStepTruncation)
			accumulator = composed
		}
		remaining >>= 1
		if remaining > 0 {
			squared, err := convolve(base, base)
			if err != nil {
				return err
			}
			// The squared factor enters the final product `remaining` times.
			truncateUpperTail(squared, perStepTruncation/float64(remaining))
			base = squared
		}
	}

	// All mass that left the finite grid, through the original infinity
	// mass of each copy or through truncation, belongs at +∞. Accounting by
	// conservation keeps the estimate pessimistic.
	p.pmf = accumulator
	p.infinityMass = math.Min(math.Max(1-accumulator.Total(), 0), 1)
	p.state = Composed
	return nil
}

// GetDeltaForEpsilonForComposedPLD computes the epsilon-hockey stick
// divergence of the composition of p and other without materializing the
// composed PLD. The result matches composing and then querying, up to
// numerical tolerance, but takes O(n log n) time in the support sizes instead
// of quadratic time.
func (p *PrivacyLossDistribution) GetDeltaForEpsilonForComposedPLD(other *PrivacyLossDistribution, epsilon float64) (float64, error) {
	if err := p.ValidateComposition(other); err != nil {
		return 0, err
	}
	interval := p.discretizationInterval
	otherIndices := other.pmf.SortedIndices()

	// Suffix sums over the other PMF: suffixMass[k] is the total mass at
	// positions ≥ k and suffixLowerMass[k] the corresponding mu_lower mass,
	// reconstructed through e^(-j·h).
	suffixMass := make([]float64, len(otherIndices)+1)
	suffixLowerMass := make([]float64, len(otherIndices)+1)
	var mass, lowerMass mathutil.KahanSum
	for k := len(otherIndices) - 1; k >= 0; k-- {
		m := other.pmf[otherIndices[k]]
		mass.Add(m)
		lowerMass.Add(m * math.Exp(-float64(otherIndices[k])*interval))
		suffixMass[k] = mass.Sum()
		suffixLowerMass[k] = lowerMass.Sum()
	}

	var delta mathutil.KahanSum
	delta.Add(combinedInfinityMass(p.infinityMass, other.infinityMass))
	for _, index := range p.pmf.SortedIndices() {
		m := p.pmf[index]
		// The pair (index, j) contributes iff the combined privacy loss
		// (index+j)·h exceeds epsilon.
		cut := sort.Search(len(otherIndices), func(k int) bool {
			return float64(index+otherIndices[k])*interval > epsilon
		})
		if suffixMass[cut] == 0 {
			continue
		}
		delta.Add(m*suffixMass[cut] - math.Exp(epsilon-float64(index)*interval)*m*suffixLowerMass[cut])
	}
	return math.Min(math.Max(delta.Sum(), 0), 1), nil
}

// combinedInfinityMass returns the infinity mass of a composition of two
// PLDs with infinity masses a and b: 1 - (1-a)(1-b).
func combinedInfinityMass(a, b float64) float64 {
	return a + b - a*b
}

// truncateUpperTail removes the largest-index cells whose cumulative mass
// stays within budget and returns the removed mass. Only the upper tail may
// be truncated: removing lower-tail mass would underestimate the divergence.
func truncateUpperTail(pmf ProbabilityMassFunction, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	indices := pmf.SortedIndices()
	var removed float64
	for k := len(indices) - 1; k >= 0; k-- {
		mass := pmf[indices[k]]
		if removed+mass > budget {
			break
		}
		removed += mass
		delete(pmf, indices[k])
	}
	return removed
}

// convolve returns the discrete convolution of two sparse PMFs. Small
// problems are convolved directly; larger ones through a real FFT of
// power-of-two length, which keeps each composition O(n log n).
func convolve(a, b ProbabilityMassFunction) (ProbabilityMassFunction, error) {
	aMin, aMasses := a.toDense()
	bMin, bMasses := b.toDense()
	if len(aMasses) == 0 || len(bMasses) == 0 {
		return make(ProbabilityMassFunction), nil
	}
	resultLength := len(aMasses) + len(bMasses) - 1
	if resultLength > maxComposedSupport {
		return nil, fmt.Errorf("Composition support of %d cells exceeds the maximum of %d; increase the discretization interval or the tail mass truncation", resultLength, maxComposedSupport)
	}

	var resultMasses []float64
	if len(aMasses)*len(bMasses) <= directConvolutionLimit {
		resultMasses = convolveDirect(aMasses, bMasses)
	} else {
		resultMasses = convolveFFT(aMasses, bMasses)
	}
	return fromDense(aMin+bMin, resultMasses), nil
}

func convolveDirect(a, b []float64) []float64 {
	result := make([]float64, len(a)+len(b)-1)
	for i, am := range a {
		if am == 0 {
			continue
		}
		for j, bm := range b {
			result[i+j] += am * bm
		}
	}
	return result
}

func convolveFFT(a, b []float64) []float64 {
	resultLength := len(a) + len(b) - 1
	transformLength := 1
	for transformLength < resultLength {
		transformLength <<= 1
	}

	paddedA := make([]float64, transformLength)
	copy(paddedA, a)
	paddedB := make([]float64, transformLength)
	copy(paddedB, b)

	fft := fourier.NewFFT(transformLength)
	coefficientsA := fft.Coefficients(nil, paddedA)
	coefficientsB := fft.Coefficients(nil, paddedB)
	for k := range coefficientsA {
		coefficientsA[k] *= coefficientsB[k]
	}
	product := fft.Sequence(nil, coefficientsA)

	// The forward-inverse round trip scales by the transform length.
	scale := 1 / float64(transformLength)
	result := make([]float64, resultLength)
	for k := range result {
		result[k] = product[k] * scale
	}
	return result
}
