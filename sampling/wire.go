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
	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/internal/wire"
)

// ToBytes encodes s as a repeated (id, value) entry list, sorted by id for
// a deterministic encoding.
func (s State) ToBytes() []byte {
	w := wire.NewWriter()
	for _, id := range s.sortedIDs() {
		entry := wire.NewWriter()
		entry.VarintAlways(1, uint64(id))
		entry.DoubleAlways(2, s.values[id])
		w.Message(1, entry)
	}
	return w.Bytes()
}

// StateFromBytes decodes the format written by State.ToBytes.
func StateFromBytes(b []byte) (State, error) {
	r := wire.NewReader(b)
	values := map[ommx.VariableID]float64{}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return State{}, &ommx.DecodeError{Path: "State", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		if f.Number != 1 {
			continue
		}
		id, value, err := decodeStateEntry(f.Bytes)
		if err != nil {
			return State{}, err
		}
		values[id] = value
	}
	return NewState(values)
}

func decodeStateEntry(b []byte) (ommx.VariableID, float64, error) {
	r := wire.NewReader(b)
	var id ommx.VariableID
	var value float64
	for {
		f, ok, err := r.Next()
		if err != nil {
			return 0, 0, &ommx.DecodeError{Path: "State entry", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			id = ommx.VariableID(f.Varint)
		case 2:
			value = f.AsDouble()
		}
	}
	return id, value, nil
}

// ToBytes encodes the Samples container as a repeated (sample_ids, state)
// entry list, preserving insertion order.
func (s *Samples) ToBytes() []byte {
	w := wire.NewWriter()
	for _, e := range s.entries {
		entry := wire.NewWriter()
		for _, id := range e.ids {
			entry.VarintAlways(1, uint64(id))
		}
		entry.BytesField(2, e.state.ToBytes())
		w.Message(1, entry)
	}
	return w.Bytes()
}

// SamplesFromBytes decodes the format written by Samples.ToBytes.
func SamplesFromBytes(b []byte) (*Samples, error) {
	r := wire.NewReader(b)
	out := NewSamples()
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, &ommx.DecodeError{Path: "Samples", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		if f.Number != 1 {
			continue
		}
		ids, state, err := decodeSamplesEntry(f.Bytes)
		if err != nil {
			return nil, err
		}
		if err := out.Append(ids, state); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeSamplesEntry(b []byte) ([]ommx.SampleID, State, error) {
	r := wire.NewReader(b)
	var ids []ommx.SampleID
	var state State
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, State{}, &ommx.DecodeError{Path: "Samples entry", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			ids = append(ids, ommx.SampleID(f.Varint))
		case 2:
			state, err = StateFromBytes(f.Bytes)
			if err != nil {
				return nil, State{}, err
			}
		}
	}
	return ids, state, nil
}

// ToBytes encodes the SampleSet as a repeated (sample_id, Solution) entry
// list, in SampleIDs order.
func (ss *SampleSet) ToBytes() []byte {
	w := wire.NewWriter()
	w.VarintAlways(1, uint64(ss.sense))
	for _, id := range ss.sampleIDs {
		entry := wire.NewWriter()
		entry.VarintAlways(1, uint64(id))
		entry.BytesField(2, ss.solutions[id].ToBytes())
		w.Message(2, entry)
	}
	return w.Bytes()
}

// SampleSetFromBytes decodes the format written by SampleSet.ToBytes.
func SampleSetFromBytes(b []byte) (*SampleSet, error) {
	r := wire.NewReader(b)
	ss := &SampleSet{solutions: map[ommx.SampleID]instance.Solution{}}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, &ommx.DecodeError{Path: "SampleSet", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			ss.sense = ommx.Sense(f.Varint)
		case 2:
			id, sol, err := decodeSampleSetEntry(f.Bytes)
			if err != nil {
				return nil, err
			}
			ss.sampleIDs = append(ss.sampleIDs, id)
			ss.solutions[id] = sol
		}
	}
	return ss, nil
}

func decodeSampleSetEntry(b []byte) (ommx.SampleID, instance.Solution, error) {
	r := wire.NewReader(b)
	var id ommx.SampleID
	var sol instance.Solution
	for {
		f, ok, err := r.Next()
		if err != nil {
			return 0, instance.Solution{}, &ommx.DecodeError{Path: "SampleSet entry", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			id = ommx.SampleID(f.Varint)
		case 2:
			sol, err = instance.SolutionFromBytes(f.Bytes)
			if err != nil {
				return 0, instance.Solution{}, err
			}
		}
	}
	return id, sol, nil
}
