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
)

// entry is one compressed (sample id set, State) pair.
type entry struct {
	ids   []ommx.SampleID
	state State
}

// Samples is a compressed container of repeated (sample_id_set, State)
// entries where every sample id appears in exactly
// one entry, and the entry order is the insertion order of each sample
// id's first occurrence. Identical states appended under different ids
// merge into one entry rather than being stored twice.
type Samples struct {
	entries []entry
	index   map[ommx.SampleID]int // sample id -> index into entries
}

// NewSamples returns an empty Samples container.
func NewSamples() *Samples {
	return &Samples{index: map[ommx.SampleID]int{}}
}

// Append records state under every id in ids. If state equals an existing
// entry's state, ids are merged into that entry rather than creating a new
// one; this is the "compression" the container's name refers to. Fails
// with DuplicateSampleIDError if any id in ids is already bound to a
// different state.
func (s *Samples) Append(ids []ommx.SampleID, state State) error {
	for _, id := range ids {
		if i, ok := s.index[id]; ok && !s.entries[i].state.Equal(state) {
			return &ommx.DuplicateSampleIDError{ID: id}
		}
	}

	for i := range s.entries {
		if s.entries[i].state.Equal(state) {
			for _, id := range ids {
				if _, already := s.index[id]; already {
					continue
				}
				s.entries[i].ids = append(s.entries[i].ids, id)
				s.index[id] = i
			}
			return nil
		}
	}

	s.entries = append(s.entries, entry{ids: append([]ommx.SampleID(nil), ids...), state: state})
	idx := len(s.entries) - 1
	for _, id := range ids {
		s.index[id] = idx
	}
	return nil
}

// NumSamples returns the number of distinct sample ids recorded, not the
// number of compressed entries.
func (s *Samples) NumSamples() int { return len(s.index) }

// SampleIDs returns every recorded sample id in insertion order of first
// occurrence.
func (s *Samples) SampleIDs() []ommx.SampleID {
	out := make([]ommx.SampleID, 0, len(s.index))
	for _, e := range s.entries {
		out = append(out, e.ids...)
	}
	return out
}

// State looks up the State bound to id.
func (s *Samples) State(id ommx.SampleID) (State, bool) {
	i, ok := s.index[id]
	if !ok {
		return State{}, false
	}
	return s.entries[i].state, true
}

// SamplesEntry is one compressed (sample id set, State) pair as exposed to
// callers.
type SamplesEntry struct {
	IDs   []ommx.SampleID
	State State
}

// Entries exposes the compressed (ids, state) pairs directly, in insertion
// order, so a caller can evaluate each distinct state exactly once.
func (s *Samples) Entries() []SamplesEntry {
	out := make([]SamplesEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, SamplesEntry{IDs: append([]ommx.SampleID(nil), e.ids...), State: e.state})
	}
	return out
}
