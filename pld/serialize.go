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

	"github.com/vishalbelsare/differential-privacy/checks"
)

// totalMassSlack is the tolerance on the total probability mass accepted at
// deserialization, covering rounding accumulated by composition.
const totalMassSlack = 1e-9

// encodablePrivacyLossDistribution can be encoded by the gob package. The
// masses are laid out densely for consecutive indices starting at MinIndex;
// the estimate type is implicitly Pessimistic.
type encodablePrivacyLossDistribution struct {
	DiscretizationInterval float64
	InfinityMass           float64
	MinIndex               int
	Masses                 []float64
}

// Serialize serializes the privacy loss distribution. Only pessimistic
// estimates can be serialized: the serialized form does not record the
// rounding direction, and deserializing an optimistic estimate as a
// pessimistic one would overstate the privacy guarantee.
func (p *PrivacyLossDistribution) Serialize() ([]byte, error) {
	if p.estimateType != Pessimistic {
		return nil, fmt.Errorf("Serialization is only supported for Pessimistic estimates, got %v", p.estimateType)
	}
	minIndex, masses := p.pmf.toDense()
	return encode(encodablePrivacyLossDistribution{
		DiscretizationInterval: p.discretizationInterval,
		InfinityMass:           p.infinityMass,
		MinIndex:               minIndex,
		Masses:                 masses,
	})
}

// Deserialize rebuilds a privacy loss distribution from its serialized form,
// validating the invariants of the representation.
func Deserialize(data []byte) (*PrivacyLossDistribution, error) {
	var enc encodablePrivacyLossDistribution
	if err := decode(&enc, data); err != nil {
		return nil, fmt.Errorf("Couldn't decode PrivacyLossDistribution from bytes: %v", err)
	}
	if err := checks.CheckDiscretizationInterval(enc.DiscretizationInterval); err != nil {
		return nil, err
	}
	if math.IsNaN(enc.InfinityMass) || enc.InfinityMass < 0 || enc.InfinityMass > 1 {
		return nil, fmt.Errorf("InfinityMass is %e, must be within [0, 1]", enc.InfinityMass)
	}
	pmf := make(ProbabilityMassFunction)
	for offset, mass := range enc.Masses {
		if math.IsNaN(mass) || mass < 0 {
			return nil, fmt.Errorf("Mass at index %d is %e, must be nonnegative", enc.MinIndex+offset, mass)
		}
		pmf.AddMass(enc.MinIndex+offset, mass)
	}
	if total := pmf.Total() + enc.InfinityMass; total > 1+totalMassSlack {
		return nil, fmt.Errorf("Total probability mass is %f, must not exceed 1", total)
	}
	return &PrivacyLossDistribution{
		discretizationInterval: enc.DiscretizationInterval,
		infinityMass:           enc.InfinityMass,
		pmf:                    pmf,
		estimateType:           Pessimistic,
	}, nil
}
