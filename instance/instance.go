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

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// Instance exclusively owns every decision variable, constraint, removed
// constraint, dependency, and hint it was built from or has since acquired
// through a transformation. There is no shared aliasing: every accessor
// below returns a copy, and every mutating method either fully succeeds or
// leaves the receiver unchanged.
type Instance struct {
	sense              ommx.Sense
	objective          polynomial.Function
	decisionVariables  map[ommx.VariableID]DecisionVariable
	constraints        map[ommx.ConstraintID]Constraint
	removedConstraints map[ommx.ConstraintID]RemovedConstraint
	dependency         map[ommx.VariableID]polynomial.Function
	hints              ConstraintHints
	description        string
	title              string
	parameters         map[string]string
}

// FromComponents validates and assembles an Instance. The first invariant
// violation encountered is the error returned; on error the zero Instance
// is returned and nothing is retained.
func FromComponents(
	sense ommx.Sense,
	objective polynomial.Function,
	decisionVariables []DecisionVariable,
	constraints []Constraint,
	description string,
	hints ConstraintHints,
) (*Instance, error) {
	vars := make(map[ommx.VariableID]DecisionVariable, len(decisionVariables))
	for _, v := range decisionVariables {
		if _, dup := vars[v.id]; dup {
			return nil, &ommx.DuplicateVariableIDError{ID: v.id}
		}
		vars[v.id] = v
	}

	cons := make(map[ommx.ConstraintID]Constraint, len(constraints))
	for _, c := range constraints {
		if _, dup := cons[c.id]; dup {
			return nil, &ommx.DuplicateConstraintIDError{ID: c.id}
		}
		cons[c.id] = c
	}

	if err := requireKnownIDs(objective.RequiredIDs(), vars); err != nil {
		return nil, err
	}
	for _, c := range cons {
		if err := requireKnownIDs(c.function.RequiredIDs(), vars); err != nil {
			return nil, err
		}
	}

	variableIDSet := make(map[ommx.VariableID]bool, len(vars))
	for id := range vars {
		variableIDSet[id] = true
	}
	constraintIDSet := make(map[ommx.ConstraintID]bool, len(cons))
	for id := range cons {
		constraintIDSet[id] = true
	}
	if err := hints.Validate(constraintIDSet, variableIDSet); err != nil {
		return nil, err
	}

	inst := &Instance{
		sense:              sense,
		objective:          objective,
		decisionVariables:  vars,
		constraints:        cons,
		removedConstraints: map[ommx.ConstraintID]RemovedConstraint{},
		dependency:         map[ommx.VariableID]polynomial.Function{},
		hints:              hints,
		description:        description,
		title:              NewAnonymousTitle(),
	}
	return inst, nil
}

func requireKnownIDs(ids []ommx.VariableID, vars map[ommx.VariableID]DecisionVariable) error {
	for _, id := range ids {
		if _, ok := vars[id]; !ok {
			return &ommx.UnknownVariableError{ID: id}
		}
	}
	return nil
}

func (inst *Instance) Sense() ommx.Sense                { return inst.sense }
func (inst *Instance) Objective() polynomial.Function   { return inst.objective }
func (inst *Instance) Description() string              { return inst.description }
func (inst *Instance) Title() string                    { return inst.title }

func (inst *Instance) SetTitle(title string) { inst.title = title }

func (inst *Instance) Parameters() map[string]string {
	out := make(map[string]string, len(inst.parameters))
	for k, v := range inst.parameters {
		out[k] = v
	}
	return out
}

func (inst *Instance) SetParameter(key, value string) {
	if inst.parameters == nil {
		inst.parameters = map[string]string{}
	}
	inst.parameters[key] = value
}

// DecisionVariables returns every registered variable, sorted ascending by
// id.
func (inst *Instance) DecisionVariables() []DecisionVariable {
	out := make([]DecisionVariable, 0, len(inst.decisionVariables))
	for _, v := range inst.decisionVariables {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// DecisionVariable looks up a single variable by id.
func (inst *Instance) DecisionVariable(id ommx.VariableID) (DecisionVariable, error) {
	v, ok := inst.decisionVariables[id]
	if !ok {
		return DecisionVariable{}, &ommx.UnknownVariableError{ID: id}
	}
	return v, nil
}

// Constraints returns every remaining constraint, sorted ascending by id.
func (inst *Instance) Constraints() []Constraint {
	out := make([]Constraint, 0, len(inst.constraints))
	for _, c := range inst.constraints {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// RemovedConstraints returns every removed constraint, sorted ascending by
// id.
func (inst *Instance) RemovedConstraints() []RemovedConstraint {
	out := make([]RemovedConstraint, 0, len(inst.removedConstraints))
	for _, c := range inst.removedConstraints {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Constraint.id < out[j].Constraint.id })
	return out
}

// ConstraintHints returns the current hint set.
func (inst *Instance) ConstraintHints() ConstraintHints { return inst.hints }

// Dependency returns the substitution function registered for id, if any.
func (inst *Instance) Dependency(id ommx.VariableID) (polynomial.Function, bool) {
	f, ok := inst.dependency[id]
	return f, ok
}

// UsedDecisionVariableIDs returns the sorted set of variable ids referenced
// by the objective, any remaining constraint, or any dependency's
// right-hand side.
func (inst *Instance) UsedDecisionVariableIDs() []ommx.VariableID {
	set := make(map[ommx.VariableID]bool)
	for _, id := range inst.objective.RequiredIDs() {
		set[id] = true
	}
	for _, c := range inst.constraints {
		for _, id := range c.function.RequiredIDs() {
			set[id] = true
		}
	}
	for _, f := range inst.dependency {
		for _, id := range f.RequiredIDs() {
			set[id] = true
		}
	}
	return sortedVariableIDs(set)
}

// RequiredIDs returns the union of required ids of the objective and every
// remaining constraint. Dependency right-hand sides are not included.
func (inst *Instance) RequiredIDs() []ommx.VariableID {
	set := make(map[ommx.VariableID]bool)
	for _, id := range inst.objective.RequiredIDs() {
		set[id] = true
	}
	for _, c := range inst.constraints {
		for _, id := range c.function.RequiredIDs() {
			set[id] = true
		}
	}
	return sortedVariableIDs(set)
}

func sortedVariableIDs(set map[ommx.VariableID]bool) []ommx.VariableID {
	out := make([]ommx.VariableID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetObjective replaces the objective, failing if it references an id not
// registered as a decision variable.
func (inst *Instance) SetObjective(f polynomial.Function) error {
	if err := requireKnownIDs(f.RequiredIDs(), inst.decisionVariables); err != nil {
		return err
	}
	inst.objective = f
	return nil
}

// AsMinimizationProblem negates the objective and flips the sense if it
// was Maximize, returning true if it did so. Idempotent: calling it again
// on an already-minimizing instance is a no-op returning false.
func (inst *Instance) AsMinimizationProblem() bool {
	if inst.sense == ommx.Minimize {
		return false
	}
	inst.objective = inst.objective.ScalarMul(-1)
	inst.sense = ommx.Minimize
	ommx.Logger().Info("as_minimization_problem", zap.String("previous_sense", "maximize"))
	return true
}

// AsMaximizationProblem is the mirror of AsMinimizationProblem.
func (inst *Instance) AsMaximizationProblem() bool {
	if inst.sense == ommx.Maximize {
		return false
	}
	inst.objective = inst.objective.ScalarMul(-1)
	inst.sense = ommx.Maximize
	ommx.Logger().Info("as_maximization_problem", zap.String("previous_sense", "minimize"))
	return true
}

// Clone returns a deep copy; no substructure is shared with the receiver.
func (inst *Instance) Clone() *Instance {
	out := &Instance{
		sense:       inst.sense,
		objective:   inst.objective,
		description: inst.description,
		title:       inst.title,
		hints:       cloneHints(inst.hints),
	}
	out.decisionVariables = make(map[ommx.VariableID]DecisionVariable, len(inst.decisionVariables))
	for id, v := range inst.decisionVariables {
		out.decisionVariables[id] = v
	}
	out.constraints = make(map[ommx.ConstraintID]Constraint, len(inst.constraints))
	for id, c := range inst.constraints {
		out.constraints[id] = c
	}
	out.removedConstraints = make(map[ommx.ConstraintID]RemovedConstraint, len(inst.removedConstraints))
	for id, c := range inst.removedConstraints {
		out.removedConstraints[id] = c
	}
	out.dependency = make(map[ommx.VariableID]polynomial.Function, len(inst.dependency))
	for id, f := range inst.dependency {
		out.dependency[id] = f
	}
	out.parameters = inst.Parameters()
	return out
}

func cloneHints(h ConstraintHints) ConstraintHints {
	out := ConstraintHints{
		OneHot: append([]OneHot(nil), h.OneHot...),
		Sos1:   append([]Sos1(nil), h.Sos1...),
	}
	return out
}

// RelaxConstraint moves constraint id into removed_constraints, dropping
// any hint that referenced it.
func (inst *Instance) RelaxConstraint(id ommx.ConstraintID, reason string, reasonParameters map[string]string) error {
	c, ok := inst.constraints[id]
	if !ok {
		return &ommx.UnknownConstraintError{ID: id}
	}
	delete(inst.constraints, id)
	inst.removedConstraints[id] = NewRemovedConstraint(c, reason, reasonParameters)
	inst.hints = inst.hints.RemoveConstraint(id)
	ommx.Logger().Info("relax_constraint", zap.Uint64("constraint_id", uint64(id)), zap.String("reason", reason))
	return nil
}

// RestoreConstraint moves constraint id back from removed_constraints,
// failing if it is absent there or already live.
func (inst *Instance) RestoreConstraint(id ommx.ConstraintID) error {
	if _, live := inst.constraints[id]; live {
		return &ommx.UnknownConstraintError{ID: id}
	}
	rc, ok := inst.removedConstraints[id]
	if !ok {
		return &ommx.UnknownConstraintError{ID: id}
	}
	delete(inst.removedConstraints, id)
	inst.constraints[id] = rc.Constraint
	ommx.Logger().Info("restore_constraint", zap.Uint64("constraint_id", uint64(id)))
	return nil
}

// AddDependency registers the substitution id := f, failing if f references
// an unknown variable or the resulting dependency graph contains a cycle.
func (inst *Instance) AddDependency(id ommx.VariableID, f polynomial.Function) error {
	if _, ok := inst.decisionVariables[id]; !ok {
		return &ommx.UnknownVariableError{ID: id}
	}
	if err := requireKnownIDs(f.RequiredIDs(), inst.decisionVariables); err != nil {
		return err
	}
	trial := make(map[ommx.VariableID]polynomial.Function, len(inst.dependency)+1)
	for k, v := range inst.dependency {
		trial[k] = v
	}
	trial[id] = f
	if cyc := findCycle(trial); cyc != nil {
		return &ommx.DependencyCycleError{IDs: cyc}
	}
	inst.dependency = trial
	return nil
}

func findCycle(dep map[ommx.VariableID]polynomial.Function) []ommx.VariableID {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[ommx.VariableID]int)
	var path []ommx.VariableID
	var cycle []ommx.VariableID

	ids := make([]ommx.VariableID, 0, len(dep))
	for id := range dep {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var visit func(ommx.VariableID) bool
	visit = func(id ommx.VariableID) bool {
		color[id] = gray
		path = append(path, id)
		f, ok := dep[id]
		if ok {
			for _, next := range f.RequiredIDs() {
				if _, isDep := dep[next]; !isDep {
					continue
				}
				switch color[next] {
				case gray:
					cycle = append(append([]ommx.VariableID(nil), path...), next)
					return true
				case white:
					if visit(next) {
						return true
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, id := range ids {
		if color[id] == white {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}

// PartialEvaluate substitutes every (id, value) pair in state that matches
// a registered decision variable: the variable's substituted_value is
// recorded, and the objective, every remaining constraint, and every
// existing dependency are rewritten via their own partial_evaluate. Fails
// with InconsistentSubstitutionError (and leaves the instance untouched)
// if any value lies outside its variable's bound.
func (inst *Instance) PartialEvaluate(state map[ommx.VariableID]float64) error {
	filtered := make(map[ommx.VariableID]float64, len(state))
	updated := make(map[ommx.VariableID]DecisionVariable, len(inst.decisionVariables))
	for id, v := range inst.decisionVariables {
		if value, ok := state[id]; ok {
			nv, err := v.WithSubstitutedValue(value)
			if err != nil {
				return err
			}
			updated[id] = nv
			filtered[id] = value
			continue
		}
		updated[id] = v
	}

	newObjective := inst.objective.PartialEvaluate(filtered)
	newConstraints := make(map[ommx.ConstraintID]Constraint, len(inst.constraints))
	for id, c := range inst.constraints {
		newConstraints[id] = c.WithFunction(c.function.PartialEvaluate(filtered))
	}
	newDependency := make(map[ommx.VariableID]polynomial.Function, len(inst.dependency))
	for id, f := range inst.dependency {
		newDependency[id] = f.PartialEvaluate(filtered)
	}

	inst.decisionVariables = updated
	inst.objective = newObjective
	inst.constraints = newConstraints
	inst.dependency = newDependency
	return nil
}

// Diagnose runs every invariant check FromComponents performs, but
// collects every violation instead of stopping at the first one. This
// supplements the fail-fast constructor with a full report useful for
// debugging a hand-assembled or transformed Instance.
func (inst *Instance) Diagnose() error {
	var err error
	for _, id := range inst.objective.RequiredIDs() {
		if _, ok := inst.decisionVariables[id]; !ok {
			err = multierr.Append(err, &ommx.UnknownVariableError{ID: id})
		}
	}
	for _, c := range inst.constraints {
		for _, id := range c.function.RequiredIDs() {
			if _, ok := inst.decisionVariables[id]; !ok {
				err = multierr.Append(err, &ommx.UnknownVariableError{ID: id})
			}
		}
	}
	for id, v := range inst.decisionVariables {
		if sv, ok := v.SubstitutedValue(); ok && !v.bound.Contains(sv) {
			err = multierr.Append(err, &ommx.InconsistentSubstitutionError{ID: id})
		}
	}
	if cyc := findCycle(inst.dependency); cyc != nil {
		err = multierr.Append(err, &ommx.DependencyCycleError{IDs: cyc})
	}
	variableIDSet := make(map[ommx.VariableID]bool, len(inst.decisionVariables))
	for id := range inst.decisionVariables {
		variableIDSet[id] = true
	}
	constraintIDSet := make(map[ommx.ConstraintID]bool, len(inst.constraints)+len(inst.removedConstraints))
	for id := range inst.constraints {
		constraintIDSet[id] = true
	}
	for id := range inst.removedConstraints {
		constraintIDSet[id] = true
	}
	if hErr := inst.hints.Validate(constraintIDSet, variableIDSet); hErr != nil {
		err = multierr.Append(err, hErr)
	}
	return err
}
