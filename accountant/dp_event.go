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

// Package accountant tracks the cumulative privacy guarantee of a sequence of
// differentially private mechanisms with a privacy loss distribution.
//
// Mechanism applications are described by DpEvent values. An event describes
// what happened, mechanism by mechanism, without reference to any particular
// accounting technique; the PLDAccountant folds events into a running
// pessimistic privacy loss distribution and answers (epsilon, delta) queries
// about everything composed so far.
package accountant

// DpEvent represents the application of a differentially private mechanism.
// Events form a tree: leaf events describe single mechanisms and the
// composite events describe sequential composition.
type DpEvent interface {
	isDpEvent()
}

// NoOpDpEvent represents an operation with no privacy impact, such as pure
// post-processing. It is composition-neutral.
type NoOpDpEvent struct{}

// NonPrivateDpEvent represents an operation with no privacy guarantee at all,
// for example releasing the raw input. Any composition containing it is
// non-private.
type NonPrivateDpEvent struct{}

// GaussianDpEvent represents an application of the Gaussian mechanism with
// the given ratio of noise standard deviation to L2 sensitivity.
type GaussianDpEvent struct {
	NoiseMultiplier float64
}

// LaplaceDpEvent represents an application of the Laplace mechanism with the
// given ratio of noise scale to L1 sensitivity.
type LaplaceDpEvent struct {
	NoiseMultiplier float64
}

// DiscreteLaplaceDpEvent represents an application of the discrete Laplace
// mechanism.
type DiscreteLaplaceDpEvent struct {
	Parameter   float64
	Sensitivity int
}

// DiscreteGaussianDpEvent represents an application of the discrete Gaussian
// mechanism.
type DiscreteGaussianDpEvent struct {
	Sigma       float64
	Sensitivity int
}

// RandomizedResponseDpEvent represents an application of Randomized Response
// over NumBuckets buckets with the given probability of a random answer.
type RandomizedResponseDpEvent struct {
	NoiseParameter float64
	NumBuckets     int
}

// PrivacyParametersDpEvent represents an application of an otherwise unknown
// mechanism that satisfies (Epsilon, Delta)-differential privacy.
type PrivacyParametersDpEvent struct {
	Epsilon float64
	Delta   float64
}

// ComposedDpEvent represents the sequential composition of a series of
// mechanisms.
type ComposedDpEvent struct {
	Events []DpEvent
}

// SelfComposedDpEvent represents Count repeated applications of the same
// mechanism.
type SelfComposedDpEvent struct {
	Event DpEvent
	Count int
}

func (NoOpDpEvent) isDpEvent()               {}
func (NonPrivateDpEvent) isDpEvent()         {}
func (GaussianDpEvent) isDpEvent()           {}
func (LaplaceDpEvent) isDpEvent()            {}
func (DiscreteLaplaceDpEvent) isDpEvent()    {}
func (DiscreteGaussianDpEvent) isDpEvent()   {}
func (RandomizedResponseDpEvent) isDpEvent() {}
func (PrivacyParametersDpEvent) isDpEvent()  {}
func (ComposedDpEvent) isDpEvent()           {}
func (SelfComposedDpEvent) isDpEvent()       {}
