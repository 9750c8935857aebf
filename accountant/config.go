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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Mechanism types accepted in a Schedule.
const (
	MechanismGaussian           = "gaussian"
	MechanismLaplace            = "laplace"
	MechanismDiscreteLaplace    = "discrete_laplace"
	MechanismDiscreteGaussian   = "discrete_gaussian"
	MechanismRandomizedResponse = "randomized_response"
	MechanismPrivacyParameters  = "privacy_parameters"
)

// MechanismConfig describes one entry of an accounting schedule: a mechanism,
// its parameters, and how often it runs.
type MechanismConfig struct {
	Type            string  `yaml:"type"`
	NoiseMultiplier float64 `yaml:"noise_multiplier,omitempty"`
	Parameter       float64 `yaml:"parameter,omitempty"`
	Sigma           float64 `yaml:"sigma,omitempty"`
	Sensitivity     int     `yaml:"sensitivity,omitempty"`
	NoiseParameter  float64 `yaml:"noise_parameter,omitempty"`
	NumBuckets      int     `yaml:"num_buckets,omitempty"`
	Epsilon         float64 `yaml:"epsilon,omitempty"`
	Delta           float64 `yaml:"delta,omitempty"`
	Count           int     `yaml:"count,omitempty"` // Repetitions of the mechanism. Defaults to 1.
}

// Schedule is an accounting configuration: the mechanisms an analysis runs
// and the discretization the accountant should track them with.
type Schedule struct {
	DiscretizationInterval float64           `yaml:"discretization_interval,omitempty"`
	TailMassTruncation     float64           `yaml:"tail_mass_truncation,omitempty"`
	Mechanisms             []MechanismConfig `yaml:"mechanisms"`
}

// LoadSchedule loads an accounting schedule from a YAML file.
func LoadSchedule(filePath string) (*Schedule, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schedule file %s", filePath)
	}
	var schedule Schedule
	if err := yaml.Unmarshal(data, &schedule); err != nil {
		return nil, errors.Wrap(err, "failed to parse schedule file")
	}
	if err := schedule.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid schedule")
	}
	return &schedule, nil
}

// SaveSchedule saves an accounting schedule to a YAML file.
func SaveSchedule(schedule *Schedule, filePath string) error {
	data, err := yaml.Marshal(schedule)
	if err != nil {
		return errors.Wrap(err, "failed to marshal schedule")
	}
	return os.WriteFile(filePath, data, 0644)
}

// Validate checks the structural validity of the schedule. Parameter ranges
// are left to the mechanism constructors.
func (s *Schedule) Validate() error {
	if len(s.Mechanisms) == 0 {
		return errors.New("schedule contains no mechanisms")
	}
	if s.DiscretizationInterval < 0 {
		return errors.Errorf("discretization_interval is %e, must not be negative", s.DiscretizationInterval)
	}
	if s.TailMassTruncation < 0 {
		return errors.Errorf("tail_mass_truncation is %e, must not be negative", s.TailMassTruncation)
	}
	for i, m := range s.Mechanisms {
		switch m.Type {
		case MechanismGaussian, MechanismLaplace, MechanismDiscreteLaplace,
			MechanismDiscreteGaussian, MechanismRandomizedResponse, MechanismPrivacyParameters:
		default:
			return errors.Errorf("mechanism %d has unknown type %q", i, m.Type)
		}
		if m.Count < 0 {
			return errors.Errorf("mechanism %d has negative count %d", i, m.Count)
		}
	}
	return nil
}

// Event translates the schedule into the composed event it describes.
func (s *Schedule) Event() DpEvent {
	events := make([]DpEvent, 0, len(s.Mechanisms))
	for _, m := range s.Mechanisms {
		var event DpEvent
		switch m.Type {
		case MechanismGaussian:
			event = GaussianDpEvent{NoiseMultiplier: m.NoiseMultiplier}
		case MechanismLaplace:
			event = LaplaceDpEvent{NoiseMultiplier: m.NoiseMultiplier}
		case MechanismDiscreteLaplace:
			event = DiscreteLaplaceDpEvent{Parameter: m.Parameter, Sensitivity: m.Sensitivity}
		case MechanismDiscreteGaussian:
			event = DiscreteGaussianDpEvent{Sigma: m.Sigma, Sensitivity: m.Sensitivity}
		case MechanismRandomizedResponse:
			event = RandomizedResponseDpEvent{NoiseParameter: m.NoiseParameter, NumBuckets: m.NumBuckets}
		case MechanismPrivacyParameters:
			event = PrivacyParametersDpEvent{Epsilon: m.Epsilon, Delta: m.Delta}
		}
		if m.Count > 1 {
			event = SelfComposedDpEvent{Event: event, Count: m.Count}
		}
		events = append(events, event)
	}
	return ComposedDpEvent{Events: events}
}

// Accountant builds a PLDAccountant and folds the whole schedule into it.
func (s *Schedule) Accountant() (*PLDAccountant, error) {
	accountant := NewPLDAccountant(&PLDAccountantOptions{
		DiscretizationInterval: s.DiscretizationInterval,
		TailMassTruncation:     s.TailMassTruncation,
	})
	if err := accountant.Compose(s.Event()); err != nil {
		return nil, errors.Wrap(err, "failed to compose schedule")
	}
	return accountant, nil
}
