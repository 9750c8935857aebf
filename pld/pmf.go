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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vishalbelsare/differential-privacy/mathutil"
)

// negligibleMass is the threshold below which a cell of a probability mass
// function is considered numerically zero and removed.
const negligibleMass = 1e-30

// ProbabilityMassFunction is a sparse discrete distribution on the integer
// grid. A cell at index i with mass m represents probability mass m at privacy
// loss i·h, where h is the discretization interval of the owning privacy loss
// distribution.
type ProbabilityMassFunction map[int]float64

// AddMass adds mass at the given index, accumulating with any mass already
// present. Nonpositive mass is ignored.
func (pmf ProbabilityMassFunction) AddMass(index int, mass float64) {
	if mass <= 0 {
		return
	}
	pmf[index] += mass
}

// SortedIndices returns the indices carrying mass in ascending order.
func (pmf ProbabilityMassFunction) SortedIndices() []int {
	indices := maps.Keys(pmf)
	slices.Sort(indices)
	return indices
}

// Total returns the total mass, summed in index order with compensation so
// that the result is deterministic.
func (pmf ProbabilityMassFunction) Total() float64 {
	var sum mathutil.KahanSum
	for _, index := range pmf.SortedIndices() {
		sum.Add(pmf[index])
	}
	return sum.Sum()
}

// Clone returns an independent copy.
func (pmf ProbabilityMassFunction) Clone() ProbabilityMassFunction {
	clone := make(ProbabilityMassFunction, len(pmf))
	for index, mass := range pmf {
		clone[index] = mass
	}
	return clone
}

// pruneNegligible removes cells whose mass is below negligibleMass and
// returns the removed mass.
func (pmf ProbabilityMassFunction) pruneNegligible() float64 {
	var removed float64
	for index, mass := range pmf {
		if mass < negligibleMass {
			removed += mass
			delete(pmf, index)
		}
	}
	return removed
}

// supportBounds returns the smallest and largest index carrying mass. The
// second return value is false for an empty PMF.
func (pmf ProbabilityMassFunction) supportBounds() (minIndex, maxIndex int, ok bool) {
	if len(pmf) == 0 {
		return 0, 0, false
	}
	first := true
	for index := range pmf {
		if first || index < minIndex {
			minIndex = index
		}
		if first || index > maxIndex {
			maxIndex = index
		}
		first = false
	}
	return minIndex, maxIndex, true
}

// toDense lays the PMF out as a contiguous slice starting at minIndex, with
// zeros at indices carrying no mass.
func (pmf ProbabilityMassFunction) toDense() (minIndex int, masses []float64) {
	minIndex, maxIndex, ok := pmf.supportBounds()
	if !ok {
		return 0, nil
	}
	masses = make([]float64, maxIndex-minIndex+1)
	for index, mass := range pmf {
		masses[index-minIndex] = mass
	}
	return minIndex, masses
}

// fromDense rebuilds a sparse PMF from a contiguous slice starting at
// minIndex, skipping negligible cells.
func fromDense(minIndex int, masses []float64) ProbabilityMassFunction {
	pmf := make(ProbabilityMassFunction)
	for offset, mass := range masses {
		if mass >= negligibleMass {
			pmf[minIndex+offset] = mass
		}
	}
	return pmf
}
