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
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// EvaluatedDecisionVariable is a DecisionVariable together with the value
// it took under some evaluated State.
type EvaluatedDecisionVariable struct {
	Variable DecisionVariable
	Value    float64
}

// EvaluatedConstraint is a Constraint together with its evaluated value and
// feasibility under some evaluated State.
type EvaluatedConstraint struct {
	Constraint Constraint
	Value      float64
	Feasible   bool
}

// Solution is the read-only result of evaluating an Instance against a
// State: the objective value, every variable's resolved value, and every
// constraint's (remaining and removed) evaluated value and feasibility.
type Solution struct {
	Sense                ommx.Sense
	Objective            float64
	DecisionVariables    []EvaluatedDecisionVariable
	Constraints          []EvaluatedConstraint
	RemovedConstraints   []EvaluatedConstraint
	FeasibleRelaxed      bool
	FeasibleUnrelaxed    bool
	Feasible             bool
	// Optimality and Relaxation are pass-through fields not populated by
	// evaluation; a solver-facing layer may set them afterward.
	Optimality string
	Relaxation string
}

// DefaultAtol is the tolerance used by Evaluate/EvaluateSamples when the
// caller does not specify one.
const DefaultAtol = 1e-6

// Evaluate resolves state against the instance: provided values take
// precedence over substituted_value, which in turn seeds the evaluation of
// decision_variable_dependency entries in dependency order. Fails with
// MissingVariableError if a used, non-dependent id has no value anywhere,
// or InconsistentSubstitutionError if state disagrees with a recorded
// substituted_value.
func (inst *Instance) Evaluate(state map[ommx.VariableID]float64, atol float64) (Solution, error) {
	if atol <= 0 {
		atol = DefaultAtol
	}
	resolved, err := inst.resolveState(state)
	if err != nil {
		return Solution{}, err
	}

	objective, err := inst.objective.Evaluate(resolved)
	if err != nil {
		return Solution{}, err
	}

	vars := inst.DecisionVariables()
	evaluatedVars := make([]EvaluatedDecisionVariable, 0, len(vars))
	for _, v := range vars {
		value, ok := resolved[v.id]
		if !ok {
			continue
		}
		evaluatedVars = append(evaluatedVars, EvaluatedDecisionVariable{Variable: v, Value: value})
	}

	feasibleRelaxed := true
	cons := inst.Constraints()
	evaluatedCons := make([]EvaluatedConstraint, 0, len(cons))
	for _, c := range cons {
		value, feasible, err := c.Evaluate(resolved, atol)
		if err != nil {
			return Solution{}, err
		}
		if !feasible {
			feasibleRelaxed = false
		}
		evaluatedCons = append(evaluatedCons, EvaluatedConstraint{Constraint: c, Value: value, Feasible: feasible})
	}

	feasibleUnrelaxed := true
	removed := inst.RemovedConstraints()
	evaluatedRemoved := make([]EvaluatedConstraint, 0, len(removed))
	for _, rc := range removed {
		value, feasible, err := rc.Constraint.Evaluate(resolved, atol)
		if err != nil {
			return Solution{}, err
		}
		if !feasible {
			feasibleUnrelaxed = false
		}
		evaluatedRemoved = append(evaluatedRemoved, EvaluatedConstraint{Constraint: rc.Constraint, Value: value, Feasible: feasible})
	}

	return Solution{
		Sense:              inst.sense,
		Objective:          objective,
		DecisionVariables:  evaluatedVars,
		Constraints:        evaluatedCons,
		RemovedConstraints: evaluatedRemoved,
		FeasibleRelaxed:    feasibleRelaxed,
		FeasibleUnrelaxed:  feasibleUnrelaxed,
		Feasible:           feasibleRelaxed && feasibleUnrelaxed,
	}, nil
}

func (inst *Instance) resolveState(state map[ommx.VariableID]float64) (map[ommx.VariableID]float64, error) {
	resolved := make(map[ommx.VariableID]float64, len(state)+len(inst.decisionVariables))
	for id, v := range state {
		resolved[id] = v
	}
	for id, dv := range inst.decisionVariables {
		sv, ok := dv.SubstitutedValue()
		if !ok {
			continue
		}
		if existing, present := resolved[id]; present {
			if existing != sv {
				return nil, &ommx.InconsistentSubstitutionError{ID: id}
			}
			continue
		}
		resolved[id] = sv
	}

	order, err := topoOrder(inst.dependency)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		if _, already := resolved[id]; already {
			continue
		}
		v, err := inst.dependency[id].Evaluate(resolved)
		if err != nil {
			return nil, err
		}
		resolved[id] = v
	}

	for _, id := range inst.RequiredIDs() {
		if _, ok := resolved[id]; !ok {
			return nil, &ommx.MissingVariableError{ID: id}
		}
	}
	return resolved, nil
}

// topoOrder returns dependency map keys ordered so that, for each key, any
// other key appearing in its function's required ids comes earlier. The
// acyclicity invariant is assumed already enforced by AddDependency; this
// still defends against a hand-assembled Instance by returning
// DependencyCycleError if it finds one.
func topoOrder(dep map[ommx.VariableID]polynomial.Function) ([]ommx.VariableID, error) {
	if cyc := findCycle(dep); cyc != nil {
		return nil, &ommx.DependencyCycleError{IDs: cyc}
	}
	ids := make([]ommx.VariableID, 0, len(dep))
	for id := range dep {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	visited := make(map[ommx.VariableID]bool, len(dep))
	order := make([]ommx.VariableID, 0, len(dep))
	var visit func(ommx.VariableID)
	visit = func(id ommx.VariableID) {
		if visited[id] {
			return
		}
		visited[id] = true
		if f, ok := dep[id]; ok {
			for _, next := range f.RequiredIDs() {
				if _, isDep := dep[next]; isDep {
					visit(next)
				}
			}
		}
		order = append(order, id)
	}
	for _, id := range ids {
		visit(id)
	}
	return order, nil
}
