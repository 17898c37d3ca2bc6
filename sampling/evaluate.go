/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sampling

import (
	"go.uber.org/zap"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
)

// Evaluate is instance.Instance.Evaluate lifted to a sampling.State,
// exposed here so callers working in this package's vocabulary don't need
// to reach back into instance.Evaluate's map[VariableID]float64 signature.
func Evaluate(inst *instance.Instance, state State, atol float64) (instance.Solution, error) {
	return inst.Evaluate(state.Values(), atol)
}

// EvaluateSamples evaluates every distinct State in samples exactly once,
// exploiting Samples' compression, and assigns the resulting Solution to
// every sample id that State is bound to.
func EvaluateSamples(inst *instance.Instance, samples *Samples, atol float64) (*SampleSet, error) {
	ss := &SampleSet{
		sense:     inst.Sense(),
		sampleIDs: samples.SampleIDs(),
		solutions: make(map[ommx.SampleID]instance.Solution, samples.NumSamples()),
	}
	for _, e := range samples.Entries() {
		sol, err := inst.Evaluate(e.State.Values(), atol)
		if err != nil {
			return nil, err
		}
		for _, id := range e.IDs {
			ss.solutions[id] = sol
		}
	}
	ommx.Logger().Info("evaluate_samples", zap.Int("samples", samples.NumSamples()), zap.Int("distinct_states", len(samples.Entries())))
	return ss, nil
}
