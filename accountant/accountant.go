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

package accountant

import (
	"fmt"

	"github.com/vishalbelsare/differential-privacy/pld"
)

// PLDAccountant tracks the privacy guarantee of everything composed into it
// through a running pessimistic privacy loss distribution.
//
// Not thread-safe.
type PLDAccountant struct {
	// Parameters
	discretizationInterval float64
	tailMassTruncation     float64

	// State variables
	composed *pld.PrivacyLossDistribution
}

// PLDAccountantOptions contains the options necessary to initialize a
// PLDAccountant.
type PLDAccountantOptions struct {
	DiscretizationInterval float64 // Grid spacing of the tracked PLD. Defaults to 1e-4.
	TailMassTruncation     float64 // Upper-tail truncation budget per composition. Defaults to 1e-15.
}

// NewPLDAccountant returns a new PLDAccountant that has tracked nothing yet.
func NewPLDAccountant(opt *PLDAccountantOptions) *PLDAccountant {
	if opt == nil {
		opt = &PLDAccountantOptions{}
	}
	interval := opt.DiscretizationInterval
	if interval == 0 {
		interval = pld.DefaultDiscretizationInterval
	}
	tailMassTruncation := opt.TailMassTruncation
	if tailMassTruncation == 0 {
		tailMassTruncation = pld.DefaultTailMassTruncation
	}
	return &PLDAccountant{
		discretizationInterval: interval,
		tailMassTruncation:     tailMassTruncation,
		composed:               pld.CreateIdentity(interval),
	}
}

// Compose folds an event into the accountant. On error the accountant is left
// unchanged.
func (a *PLDAccountant) Compose(event DpEvent) error {
	eventPLD, err := a.pldForEvent(event)
	if err != nil {
		return err
	}
	if eventPLD == nil {
		return nil
	}
	return a.composed.Compose(eventPLD, a.tailMassTruncation)
}

// GetDeltaForEpsilon returns the delta for which everything composed so far
// is (epsilon, delta)-differentially private.
func (a *PLDAccountant) GetDeltaForEpsilon(epsilon float64) float64 {
	return a.composed.GetDeltaForEpsilon(epsilon)
}

// GetEpsilonForDelta returns the smallest epsilon for which everything
// composed so far is (epsilon, delta)-differentially private, or +∞ when no
// finite epsilon suffices.
func (a *PLDAccountant) GetEpsilonForDelta(delta float64) float64 {
	return a.composed.GetEpsilonForDelta(delta)
}

// pldForEvent converts an event into a PLD on the accountant's grid. A nil
// result with a nil error means the event has no privacy impact.
func (a *PLDAccountant) pldForEvent(event DpEvent) (*pld.PrivacyLossDistribution, error) {
	switch e := event.(type) {
	case NoOpDpEvent:
		return nil, nil
	case NonPrivateDpEvent:
		// A mechanism with no guarantee is (0, 1)-differentially private
		// and nothing better.
		return pld.CreateForPrivacyParameters(0, 1, a.discretizationInterval)
	case GaussianDpEvent:
		return pld.CreateForGaussianMechanism(&pld.GaussianMechanismOptions{
			StandardDeviation:      e.NoiseMultiplier,
			DiscretizationInterval: a.discretizationInterval,
		})
	case LaplaceDpEvent:
		return pld.CreateForLaplaceMechanism(&pld.LaplaceMechanismOptions{
			Parameter:              e.NoiseMultiplier,
			DiscretizationInterval: a.discretizationInterval,
		})
	case DiscreteLaplaceDpEvent:
		return pld.CreateForDiscreteLaplaceMechanism(&pld.DiscreteLaplaceMechanismOptions{
			Parameter:              e.Parameter,
			Sensitivity:            e.Sensitivity,
			DiscretizationInterval: a.discretizationInterval,
		})
	case DiscreteGaussianDpEvent:
		return pld.CreateForDiscreteGaussianMechanism(&pld.DiscreteGaussianMechanismOptions{
			Sigma:                  e.Sigma,
			Sensitivity:            e.Sensitivity,
			DiscretizationInterval: a.discretizationInterval,
		})
	case RandomizedResponseDpEvent:
		return pld.CreateForRandomizedResponse(&pld.RandomizedResponseOptions{
			NoiseParameter:         e.NoiseParameter,
			NumBuckets:             e.NumBuckets,
			DiscretizationInterval: a.discretizationInterval,
		})
	case PrivacyParametersDpEvent:
		return pld.CreateForPrivacyParameters(e.Epsilon, e.Delta, a.discretizationInterval)
	case ComposedDpEvent:
		result := pld.CreateIdentity(a.discretizationInterval)
		for _, inner := range e.Events {
			innerPLD, err := a.pldForEvent(inner)
			if err != nil {
				return nil, err
			}
			if innerPLD == nil {
				continue
			}
			if err := result.Compose(innerPLD, a.tailMassTruncation); err != nil {
				return nil, err
			}
		}
		return result, nil
	case SelfComposedDpEvent:
		innerPLD, err := a.pldForEvent(e.Event)
		if err != nil {
			return nil, err
		}
		if innerPLD == nil {
			return nil, nil
		}
		if err := innerPLD.ComposeNumTimes(e.Count, a.tailMassTruncation); err != nil {
			return nil, err
		}
		return innerPLD, nil
	default:
		return nil, fmt.Errorf("unsupported DpEvent type %T", event)
	}
}
