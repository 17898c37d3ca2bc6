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

import (
	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// Constraint looks up a single remaining constraint by id.
func (inst *Instance) Constraint(id ommx.ConstraintID) (Constraint, error) {
	c, ok := inst.constraints[id]
	if !ok {
		return Constraint{}, &ommx.UnknownConstraintError{ID: id}
	}
	return c, nil
}

// AddVariable registers a new decision variable, failing with
// DuplicateVariableIDError if its id is already taken.
func (inst *Instance) AddVariable(v DecisionVariable) error {
	if _, dup := inst.decisionVariables[v.id]; dup {
		return &ommx.DuplicateVariableIDError{ID: v.id}
	}
	inst.decisionVariables[v.id] = v
	return nil
}

// AddConstraint registers a new remaining constraint, failing with
// DuplicateConstraintIDError if its id is already taken (live or removed)
// or UnknownVariableError if its function references an unregistered
// variable.
func (inst *Instance) AddConstraint(c Constraint) error {
	if _, dup := inst.constraints[c.id]; dup {
		return &ommx.DuplicateConstraintIDError{ID: c.id}
	}
	if _, dup := inst.removedConstraints[c.id]; dup {
		return &ommx.DuplicateConstraintIDError{ID: c.id}
	}
	if err := requireKnownIDs(c.function.RequiredIDs(), inst.decisionVariables); err != nil {
		return err
	}
	inst.constraints[c.id] = c
	return nil
}

// ReplaceConstraint overwrites the function/equality of an existing
// remaining constraint, keeping its id, used by transformations that
// tighten or rewrite a constraint in place.
func (inst *Instance) ReplaceConstraint(c Constraint) error {
	if _, ok := inst.constraints[c.id]; !ok {
		return &ommx.UnknownConstraintError{ID: c.id}
	}
	if err := requireKnownIDs(c.function.RequiredIDs(), inst.decisionVariables); err != nil {
		return err
	}
	inst.constraints[c.id] = c
	return nil
}

// SubstituteVariable symbolically replaces every occurrence of id across
// the objective, every remaining constraint, and every existing
// dependency, then registers id itself as dependent on replacement. This
// is the primitive log_encode uses to retire an integer variable in favor
// of its binary expansion.
func (inst *Instance) SubstituteVariable(id ommx.VariableID, replacement polynomial.Function) error {
	trial := make(map[ommx.VariableID]polynomial.Function, len(inst.dependency)+1)
	for k, v := range inst.dependency {
		trial[k] = v
	}
	trial[id] = replacement
	if cyc := findCycle(trial); cyc != nil {
		return &ommx.DependencyCycleError{IDs: cyc}
	}

	inst.objective = inst.objective.SubstituteVariable(id, replacement)
	for cid, c := range inst.constraints {
		inst.constraints[cid] = c.WithFunction(c.function.SubstituteVariable(id, replacement))
	}
	for vid, f := range inst.dependency {
		if vid == id {
			continue
		}
		trial[vid] = f.SubstituteVariable(id, replacement)
	}
	inst.dependency = trial
	inst.hints = inst.hints.RemoveVariable(id)
	return nil
}

// Bounds returns a snapshot of every registered variable's bound, keyed by
// id, useful to transformations that need interval arithmetic without
// repeatedly looking up each variable.
func (inst *Instance) Bounds() map[ommx.VariableID]ommx.Bound {
	out := make(map[ommx.VariableID]ommx.Bound, len(inst.decisionVariables))
	for id, v := range inst.decisionVariables {
		out[id] = v.Bound()
	}
	return out
}
