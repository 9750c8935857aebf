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

// Package checks contains checks for parameters of differentially private
// mechanisms and of privacy loss distributions built from them.
package checks

import (
	"fmt"
	"math"
)

const (
	epsilonName = "Epsilon"
	deltaName   = "Delta"
)

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckEpsilon returns an error if ε is strictly negative or +∞.
func CheckEpsilon(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon < 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%s is %f, must be nonnegative and finite", epsName, epsilon)
	}
	return nil
}

// CheckEpsilonStrict returns an error if ε is nonpositive or +∞.
func CheckEpsilonStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%s is %f, must be strictly positive and finite", epsName, epsilon)
	}
	return nil
}

// CheckDelta returns an error if δ is negative or greater than 1.
func CheckDelta(delta float64, name ...string) error {
	delName, err := verifyName(deltaName, name)
	if err != nil {
		return err
	}
	if math.IsNaN(delta) {
		return fmt.Errorf("%s is %e, cannot be NaN", delName, delta)
	}
	if delta < 0 {
		return fmt.Errorf("%s is %e, cannot be negative", delName, delta)
	}
	if delta > 1 {
		return fmt.Errorf("%s is %e, must be at most 1", delName, delta)
	}
	return nil
}

// CheckNoiseParameter returns an error if the noise parameter of a Randomized
// Response mechanism is outside [0, 1].
func CheckNoiseParameter(noiseParameter float64) error {
	if math.IsNaN(noiseParameter) || noiseParameter < 0 || noiseParameter > 1 {
		return fmt.Errorf("NoiseParameter is %f, must be within [0, 1]", noiseParameter)
	}
	return nil
}

// CheckNumBuckets returns an error if the number of Randomized Response buckets
// is less than 2.
func CheckNumBuckets(numBuckets int) error {
	if numBuckets < 2 {
		return fmt.Errorf("NumBuckets is %d, must be at least 2", numBuckets)
	}
	return nil
}

// CheckParameter returns an error if the parameter of a noise distribution is
// nonpositive or +∞.
func CheckParameter(parameter float64) error {
	if parameter <= 0 || math.IsInf(parameter, 0) || math.IsNaN(parameter) {
		return fmt.Errorf("Parameter is %f, must be strictly positive and finite", parameter)
	}
	return nil
}

// CheckStandardDeviation returns an error if σ is nonpositive or +∞.
func CheckStandardDeviation(sigma float64) error {
	if sigma <= 0 || math.IsInf(sigma, 0) || math.IsNaN(sigma) {
		return fmt.Errorf("StandardDeviation is %f, must be strictly positive and finite", sigma)
	}
	return nil
}

// CheckSensitivity returns an error if the sensitivity is nonpositive or +∞.
func CheckSensitivity(sensitivity float64) error {
	if sensitivity <= 0 || math.IsInf(sensitivity, 0) || math.IsNaN(sensitivity) {
		return fmt.Errorf("Sensitivity is %f, must be strictly positive and finite", sensitivity)
	}
	return nil
}

// CheckSensitivityInt returns an error if the integer sensitivity of a discrete
// mechanism is nonpositive.
func CheckSensitivityInt(sensitivity int) error {
	if sensitivity <= 0 {
		return fmt.Errorf("Sensitivity is %d, must be strictly positive", sensitivity)
	}
	return nil
}

// CheckDiscretizationInterval returns an error if the discretization interval of
// a privacy loss distribution is nonpositive or +∞.
func CheckDiscretizationInterval(interval float64) error {
	if interval <= 0 || math.IsInf(interval, 0) || math.IsNaN(interval) {
		return fmt.Errorf("DiscretizationInterval is %e, must be strictly positive and finite", interval)
	}
	return nil
}

// CheckMassTruncationBound returns an error if the ln-mass truncation bound is
// nonnegative. A bound of b truncates noise tails of mass exp(b), so b must be
// negative for any mass to survive.
func CheckMassTruncationBound(bound float64) error {
	if math.IsNaN(bound) || bound >= 0 {
		return fmt.Errorf("MassTruncationBound is %f, must be negative", bound)
	}
	return nil
}

// CheckTailMassTruncation returns an error if the per-composition tail
// truncation budget is negative, 1 or larger, or NaN.
func CheckTailMassTruncation(tailMassTruncation float64) error {
	if math.IsNaN(tailMassTruncation) || tailMassTruncation < 0 || tailMassTruncation >= 1 {
		return fmt.Errorf("TailMassTruncation is %e, must be within [0, 1)", tailMassTruncation)
	}
	return nil
}

// CheckTruncationBound returns an error if the support half-width of a truncated
// discrete noise distribution is nonpositive.
func CheckTruncationBound(truncationBound int) error {
	if truncationBound <= 0 {
		return fmt.Errorf("TruncationBound is %d, must be strictly positive", truncationBound)
	}
	return nil
}
