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

package instance

import "github.com/Jij-Inc/ommx-sub001"

// OneHot records that the constraint identified by ID asserts exactly one
// of Variables equals 1.
type OneHot struct {
	ID        ommx.ConstraintID
	Variables []ommx.VariableID
}

// Sos1 records a special-ordered-set-of-type-1 structure: at most one of
// Variables is non-zero, with BinaryConstraintID/BigMConstraintIDs
// recording whichever reformulation constraints were attached to enforce
// it.
type Sos1 struct {
	BinaryConstraintID ommx.ConstraintID
	BigMConstraintIDs  []ommx.ConstraintID
	Variables          []ommx.VariableID
}

// ConstraintHints stores advisory structural hints that solvers may use to
// pick specialized algorithms. Hints never outlive the constraints they
// reference: RemoveConstraint and RemoveVariable both scrub references to
// ids no longer present.
type ConstraintHints struct {
	OneHot []OneHot
	Sos1   []Sos1
}

// RemoveConstraint drops any hint that refers to id, returning the updated
// hints. This keeps a relaxed or restored constraint from leaving a
// dangling hint behind.
func (h ConstraintHints) RemoveConstraint(id ommx.ConstraintID) ConstraintHints {
	out := ConstraintHints{}
	for _, oh := range h.OneHot {
		if oh.ID != id {
			out.OneHot = append(out.OneHot, oh)
		}
	}
	for _, s := range h.Sos1 {
		if s.BinaryConstraintID == id {
			continue
		}
		s = filterBigM(s, id)
		out.Sos1 = append(out.Sos1, s)
	}
	return out
}

func filterBigM(s Sos1, removed ommx.ConstraintID) Sos1 {
	kept := make([]ommx.ConstraintID, 0, len(s.BigMConstraintIDs))
	for _, id := range s.BigMConstraintIDs {
		if id != removed {
			kept = append(kept, id)
		}
	}
	s.BigMConstraintIDs = kept
	return s
}

// RemoveVariable drops any hint that refers to id, used when a variable is
// eliminated by Instance.SubstituteVariable (log_encode).
func (h ConstraintHints) RemoveVariable(id ommx.VariableID) ConstraintHints {
	out := ConstraintHints{}
	for _, oh := range h.OneHot {
		if !containsVar(oh.Variables, id) {
			out.OneHot = append(out.OneHot, oh)
		}
	}
	for _, s := range h.Sos1 {
		if !containsVar(s.Variables, id) {
			out.Sos1 = append(out.Sos1, s)
		}
	}
	return out
}

func containsVar(ids []ommx.VariableID, id ommx.VariableID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Validate checks that every id referenced by a hint exists among
// constraintIDs/variableIDs, supplementing the core invariant set with a
// diagnostic useful to Instance.Diagnose.
func (h ConstraintHints) Validate(constraintIDs map[ommx.ConstraintID]bool, variableIDs map[ommx.VariableID]bool) error {
	for _, oh := range h.OneHot {
		if !constraintIDs[oh.ID] {
			return &ommx.UnknownConstraintError{ID: oh.ID}
		}
		for _, v := range oh.Variables {
			if !variableIDs[v] {
				return &ommx.UnknownVariableError{ID: v}
			}
		}
	}
	for _, s := range h.Sos1 {
		if s.BinaryConstraintID != 0 && !constraintIDs[s.BinaryConstraintID] {
			return &ommx.UnknownConstraintError{ID: s.BinaryConstraintID}
		}
		for _, id := range s.BigMConstraintIDs {
			if !constraintIDs[id] {
				return &ommx.UnknownConstraintError{ID: id}
			}
		}
		for _, v := range s.Variables {
			if !variableIDs[v] {
				return &ommx.UnknownVariableError{ID: v}
			}
		}
	}
	return nil
}
