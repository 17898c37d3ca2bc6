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
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
)

// SampleSet is the per-sample evaluation result: for each sample
// id, the full Solution a single instance.Evaluate call against that
// sample's State would have produced. Samples sharing a State (the
// "compression" Samples.Append performs) share the same Solution value
// rather than being recomputed.
type SampleSet struct {
	sense     ommx.Sense
	sampleIDs []ommx.SampleID
	solutions map[ommx.SampleID]instance.Solution
}

// Get reconstitutes the full Solution for a single sample id.
func (ss *SampleSet) Get(id ommx.SampleID) (instance.Solution, error) {
	sol, ok := ss.solutions[id]
	if !ok {
		return instance.Solution{}, &ommx.UnknownSampleIDError{ID: id}
	}
	return sol, nil
}

// SampleIDs returns every sample id in insertion order of first occurrence.
func (ss *SampleSet) SampleIDs() []ommx.SampleID {
	return append([]ommx.SampleID(nil), ss.sampleIDs...)
}

// Objectives returns every sample's objective value, keyed by sample id.
func (ss *SampleSet) Objectives() map[ommx.SampleID]float64 {
	out := make(map[ommx.SampleID]float64, len(ss.solutions))
	for id, sol := range ss.solutions {
		out[id] = sol.Objective
	}
	return out
}

// Sense returns the optimization direction the objectives were computed
// under.
func (ss *SampleSet) Sense() ommx.Sense { return ss.sense }

// BestFeasible returns the sample id with the optimal objective (per
// Sense) among samples with Solution.Feasible true (every constraint,
// remaining and removed, satisfied). Ties break toward the smallest
// sample id. Fails with NoFeasibleSampleError if no sample is feasible.
func (ss *SampleSet) BestFeasible() (ommx.SampleID, instance.Solution, error) {
	return ss.best(func(sol instance.Solution) bool { return sol.Feasible })
}

// BestFeasibleRelaxed is BestFeasible restricted to Solution.FeasibleRelaxed
// (remaining constraints only).
func (ss *SampleSet) BestFeasibleRelaxed() (ommx.SampleID, instance.Solution, error) {
	return ss.best(func(sol instance.Solution) bool { return sol.FeasibleRelaxed })
}

func (ss *SampleSet) best(accept func(instance.Solution) bool) (ommx.SampleID, instance.Solution, error) {
	ids := append([]ommx.SampleID(nil), ss.sampleIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var (
		bestID   ommx.SampleID
		bestSol  instance.Solution
		haveBest bool
	)
	for _, id := range ids {
		sol := ss.solutions[id]
		if !accept(sol) {
			continue
		}
		if !haveBest {
			bestID, bestSol, haveBest = id, sol, true
			continue
		}
		if better(ss.sense, sol.Objective, bestSol.Objective) {
			bestID, bestSol = id, sol
		}
	}
	if !haveBest {
		return 0, instance.Solution{}, &ommx.NoFeasibleSampleError{}
	}
	return bestID, bestSol, nil
}

func better(sense ommx.Sense, candidate, current float64) bool {
	if sense == ommx.Maximize {
		return candidate > current
	}
	return candidate < current
}
