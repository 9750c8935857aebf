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

package checks

import (
	"math"
	"testing"
)

func TestCheckEpsilon(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		epsilon float64
		wantErr bool
	}{
		{"negative epsilon",
			-2,
			true},
		{"zero epsilon",
			0,
			false},
		{"epsilon is NaN",
			math.NaN(),
			true},
		{"epsilon is negative infinity",
			math.Inf(-1),
			true},
		{"epsilon is positive infinity",
			math.Inf(1),
			true},
		{"positive epsilon",
			50,
			false},
	} {
		if err := CheckEpsilon(tc.epsilon); (err != nil) != tc.wantErr {
			t.Errorf("CheckEpsilon: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckEpsilonStrict(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		epsilon float64
		wantErr bool
	}{
		{"negative epsilon",
			-2,
			true},
		{"zero epsilon",
			0,
			true},
		{"epsilon is NaN",
			math.NaN(),
			true},
		{"epsilon is positive infinity",
			math.Inf(1),
			true},
		{"positive epsilon",
			50,
			false},
	} {
		if err := CheckEpsilonStrict(tc.epsilon); (err != nil) != tc.wantErr {
			t.Errorf("CheckEpsilonStrict: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckDelta(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		delta   float64
		wantErr bool
	}{
		{"delta is negative",
			-1,
			true},
		{"delta is zero",
			0,
			false},
		{"delta is one",
			1,
			false},
		{"delta is larger than one",
			1.3,
			true},
		{"delta is NaN",
			math.NaN(),
			true},
		{"delta is between zero and one",
			0.3,
			false},
	} {
		if err := CheckDelta(tc.delta); (err != nil) != tc.wantErr {
			t.Errorf("CheckDelta: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckNoiseParameter(t *testing.T) {
	for _, tc := range []struct {
		desc           string
		noiseParameter float64
		wantErr        bool
	}{
		{"negative noise parameter",
			-0.5,
			true},
		{"zero noise parameter",
			0,
			false},
		{"noise parameter of one",
			1,
			false},
		{"noise parameter above one",
			1.2,
			true},
		{"noise parameter is NaN",
			math.NaN(),
			true},
		{"noise parameter within range",
			0.2,
			false},
	} {
		if err := CheckNoiseParameter(tc.noiseParameter); (err != nil) != tc.wantErr {
			t.Errorf("CheckNoiseParameter: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckNumBuckets(t *testing.T) {
	for _, tc := range []struct {
		desc       string
		numBuckets int
		wantErr    bool
	}{
		{"negative number of buckets", -1, true},
		{"zero buckets", 0, true},
		{"single bucket", 1, true},
		{"two buckets", 2, false},
		{"many buckets", 1000, false},
	} {
		if err := CheckNumBuckets(tc.numBuckets); (err != nil) != tc.wantErr {
			t.Errorf("CheckNumBuckets: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckParameter(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		parameter float64
		wantErr   bool
	}{
		{"negative parameter", -2, true},
		{"zero parameter", 0, true},
		{"parameter is NaN", math.NaN(), true},
		{"parameter is positive infinity", math.Inf(1), true},
		{"positive parameter", 0.5, false},
	} {
		if err := CheckParameter(tc.parameter); (err != nil) != tc.wantErr {
			t.Errorf("CheckParameter: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckStandardDeviation(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		sigma   float64
		wantErr bool
	}{
		{"negative standard deviation", -1, true},
		{"zero standard deviation", 0, true},
		{"standard deviation is NaN", math.NaN(), true},
		{"standard deviation is positive infinity", math.Inf(1), true},
		{"positive standard deviation", 1.5, false},
	} {
		if err := CheckStandardDeviation(tc.sigma); (err != nil) != tc.wantErr {
			t.Errorf("CheckStandardDeviation: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckSensitivity(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		sensitivity float64
		wantErr     bool
	}{
		{"negative sensitivity", -1, true},
		{"zero sensitivity", 0, true},
		{"sensitivity is NaN", math.NaN(), true},
		{"sensitivity is positive infinity", math.Inf(1), true},
		{"positive sensitivity", 2.5, false},
	} {
		if err := CheckSensitivity(tc.sensitivity); (err != nil) != tc.wantErr {
			t.Errorf("CheckSensitivity: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckSensitivityInt(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		sensitivity int
		wantErr     bool
	}{
		{"negative sensitivity", -1, true},
		{"zero sensitivity", 0, true},
		{"positive sensitivity", 3, false},
	} {
		if err := CheckSensitivityInt(tc.sensitivity); (err != nil) != tc.wantErr {
			t.Errorf("CheckSensitivityInt: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckDiscretizationInterval(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		interval float64
		wantErr  bool
	}{
		{"negative interval", -1e-4, true},
		{"zero interval", 0, true},
		{"interval is NaN", math.NaN(), true},
		{"interval is positive infinity", math.Inf(1), true},
		{"positive interval", 1e-4, false},
	} {
		if err := CheckDiscretizationInterval(tc.interval); (err != nil) != tc.wantErr {
			t.Errorf("CheckDiscretizationInterval: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckMassTruncationBound(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		bound   float64
		wantErr bool
	}{
		{"positive bound", 1, true},
		{"zero bound", 0, true},
		{"bound is NaN", math.NaN(), true},
		{"negative bound", -50, false},
		{"bound is negative infinity", math.Inf(-1), false},
	} {
		if err := CheckMassTruncationBound(tc.bound); (err != nil) != tc.wantErr {
			t.Errorf("CheckMassTruncationBound: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckTailMassTruncation(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		tau     float64
		wantErr bool
	}{
		{"negative budget", -1e-15, true},
		{"zero budget", 0, false},
		{"budget is NaN", math.NaN(), true},
		{"budget of one", 1, true},
		{"small positive budget", 1e-15, false},
	} {
		if err := CheckTailMassTruncation(tc.tau); (err != nil) != tc.wantErr {
			t.Errorf("CheckTailMassTruncation: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckTruncationBound(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		bound   int
		wantErr bool
	}{
		{"negative bound", -5, true},
		{"zero bound", 0, true},
		{"positive bound", 20, false},
	} {
		if err := CheckTruncationBound(tc.bound); (err != nil) != tc.wantErr {
			t.Errorf("CheckTruncationBound: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}
