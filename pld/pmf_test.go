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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPmfAddMass(t *testing.T) {
	pmf := make(ProbabilityMassFunction)
	pmf.AddMass(3, 0.25)
	pmf.AddMass(3, 0.25)
	pmf.AddMass(-2, 0.5)
	pmf.AddMass(7, 0)
	pmf.AddMass(8, -0.1)
	want := ProbabilityMassFunction{3: 0.5, -2: 0.5}
	if !cmp.Equal(pmf, want) {
		t.Errorf("AddMass: got %v, want %v", pmf, want)
	}
}

func TestPmfSortedIndices(t *testing.T) {
	pmf := ProbabilityMassFunction{5: 0.1, -3: 0.2, 0: 0.3, 12: 0.4}
	got := pmf.SortedIndices()
	want := []int{-3, 0, 5, 12}
	if !cmp.Equal(got, want) {
		t.Errorf("SortedIndices: got %v, want %v", got, want)
	}
}

func TestPmfTotal(t *testing.T) {
	pmf := ProbabilityMassFunction{1: 0.25, 2: 0.25, 3: 0.5}
	if got := pmf.Total(); !approxEqual(got, 1) {
		t.Errorf("Total: got %f, want 1", got)
	}
}

func TestPmfCloneIsIndependent(t *testing.T) {
	pmf := ProbabilityMassFunction{1: 0.5}
	clone := pmf.Clone()
	clone.AddMass(1, 0.5)
	if got := pmf[1]; got != 0.5 {
		t.Errorf("Clone is not independent: original mass changed to %f", got)
	}
}

func TestPmfPruneNegligible(t *testing.T) {
	pmf := ProbabilityMassFunction{0: 0.5, 1: 1e-31, 2: 1e-29}
	removed := pmf.pruneNegligible()
	if !approxEqualTol(removed, 1e-31, 1e-40) {
		t.Errorf("pruneNegligible removed %e, want 1e-31", removed)
	}
	if _, present := pmf[1]; present {
		t.Errorf("pruneNegligible kept a negligible cell")
	}
	if _, present := pmf[2]; !present {
		t.Errorf("pruneNegligible removed a non-negligible cell")
	}
}

func TestPmfDenseRoundTrip(t *testing.T) {
	pmf := ProbabilityMassFunction{-2: 0.25, 0: 0.5, 3: 0.25}
	minIndex, masses := pmf.toDense()
	if minIndex != -2 {
		t.Errorf("toDense min index: got %d, want -2", minIndex)
	}
	if len(masses) != 6 {
		t.Errorf("toDense length: got %d, want 6", len(masses))
	}
	if masses[1] != 0 || masses[2] != 0.5 {
		t.Errorf("toDense layout: got %v", masses)
	}
	rebuilt := fromDense(minIndex, masses)
	if !cmp.Equal(rebuilt, pmf) {
		t.Errorf("fromDense(toDense(_)): got %v, want %v", rebuilt, pmf)
	}
}

func TestPmfSupportBounds(t *testing.T) {
	pmf := ProbabilityMassFunction{4: 0.5, -7: 0.5}
	minIndex, maxIndex, ok := pmf.supportBounds()
	if !ok || minIndex != -7 || maxIndex != 4 {
		t.Errorf("supportBounds: got (%d, %d, %t), want (-7, 4, true)", minIndex, maxIndex, ok)
	}
	if _, _, ok := make(ProbabilityMassFunction).supportBounds(); ok {
		t.Errorf("supportBounds on an empty PMF: got ok, want not ok")
	}
}

func TestTruncateUpperTail(t *testing.T) {
	pmf := ProbabilityMassFunction{0: 0.9, 1: 0.06, 2: 0.03, 3: 0.01}
	removed := truncateUpperTail(pmf, 0.05)
	if !approxEqual(removed, 0.04) {
		t.Errorf("truncateUpperTail removed %f, want 0.04", removed)
	}
	want := ProbabilityMassFunction{0: 0.9, 1: 0.06}
	if !cmp.Equal(pmf, want) {
		t.Errorf("truncateUpperTail left %v, want %v", pmf, want)
	}
}

func TestConvolveDirectMatchesFFT(t *testing.T) {
	a := []float64{0.2, 0.3, 0.5}
	b := []float64{0.6, 0.4}
	direct := convolveDirect(a, b)
	viaFFT := convolveFFT(a, b)
	if len(direct) != len(viaFFT) {
		t.Fatalf("convolution lengths differ: direct %d, FFT %d", len(direct), len(viaFFT))
	}
	for k := range direct {
		if !approxEqual(direct[k], viaFFT[k]) {
			t.Errorf("convolution cell %d: direct %e, FFT %e", k, direct[k], viaFFT[k])
		}
	}
}
