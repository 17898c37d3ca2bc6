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

// Package sampling implements multi-sample evaluation: State, the
// compressed Samples container, SampleSet, and best-feasible selection.
package sampling

import (
	"math"
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
)

// State is a finite assignment of values to decision variable ids. Unlike
// the map type instance.Evaluate accepts directly, State validates up
// front that no value is NaN, so every downstream consumer can assume a
// validated State rather than re-checking.
type State struct {
	values map[ommx.VariableID]float64
}

// NewState validates and wraps values. Fails with InvalidCoefficientError
// if any value is NaN.
func NewState(values map[ommx.VariableID]float64) (State, error) {
	out := make(map[ommx.VariableID]float64, len(values))
	for id, v := range values {
		if math.IsNaN(v) {
			return State{}, &ommx.InvalidCoefficientError{Reason: "state value is NaN"}
		}
		out[id] = v
	}
	return State{values: out}, nil
}

// Values returns a copy of the underlying assignment.
func (s State) Values() map[ommx.VariableID]float64 {
	out := make(map[ommx.VariableID]float64, len(s.values))
	for id, v := range s.values {
		out[id] = v
	}
	return out
}

// Get looks up a single variable's value.
func (s State) Get(id ommx.VariableID) (float64, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Len returns the number of variables assigned.
func (s State) Len() int { return len(s.values) }

// Equal reports whether s and other assign exactly the same ids to exactly
// the same values, used by Samples.Append to detect when a new
// (ids, state) pair can be merged into an existing entry.
func (s State) Equal(other State) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for id, v := range s.values {
		ov, ok := other.values[id]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// sortedIDs returns the state's variable ids in ascending order, used by
// the wire codec for a deterministic encoding.
func (s State) sortedIDs() []ommx.VariableID {
	ids := make([]ommx.VariableID, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
