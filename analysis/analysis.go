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

// Package analysis computes read-only partitions over an Instance's
// decision variables: which are used where, which are effectively fixed,
// and which are neither used nor dependent.
package analysis

import (
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
)

// DecisionVariableAnalysis partitions an Instance's decision variables
// along several axes at once, computed eagerly from a single pass over
// the instance so repeated queries don't re-walk it.
type DecisionVariableAnalysis struct {
	usedByKind            map[ommx.Kind][]ommx.VariableID
	usedDecisionVariables []ommx.VariableID
	allDecisionVariables  []ommx.VariableID
	usedInObjective       []ommx.VariableID
	usedInConstraints     map[ommx.ConstraintID][]ommx.VariableID
	fixed                 []ommx.VariableID
	irrelevant            []ommx.VariableID
	dependent             []ommx.VariableID
}

// Analyze computes a DecisionVariableAnalysis for inst.
func Analyze(inst *instance.Instance) DecisionVariableAnalysis {
	a := DecisionVariableAnalysis{
		usedByKind:        map[ommx.Kind][]ommx.VariableID{},
		usedInConstraints: map[ommx.ConstraintID][]ommx.VariableID{},
	}

	usedSet := make(map[ommx.VariableID]bool)
	for _, id := range inst.Objective().RequiredIDs() {
		usedSet[id] = true
	}
	a.usedInObjective = sortedIDs(usedSet)

	for _, c := range inst.Constraints() {
		ids := c.Function().RequiredIDs()
		a.usedInConstraints[c.ID()] = ids
		for _, id := range ids {
			usedSet[id] = true
		}
	}
	a.usedDecisionVariables = sortedIDs(usedSet)

	dependentSet := make(map[ommx.VariableID]bool)
	for _, v := range inst.DecisionVariables() {
		if _, ok := inst.Dependency(v.ID()); ok {
			dependentSet[v.ID()] = true
		}
	}
	a.dependent = sortedIDs(dependentSet)

	for _, v := range inst.DecisionVariables() {
		a.allDecisionVariables = append(a.allDecisionVariables, v.ID())
		if usedSet[v.ID()] {
			a.usedByKind[v.Kind()] = append(a.usedByKind[v.Kind()], v.ID())
		}

		if _, isPoint := v.Bound().PointValue(); isPoint {
			a.fixed = append(a.fixed, v.ID())
		} else if f, ok := inst.Dependency(v.ID()); ok && f.Degree() == 0 {
			a.fixed = append(a.fixed, v.ID())
		}

		if !usedSet[v.ID()] && !dependentSet[v.ID()] {
			a.irrelevant = append(a.irrelevant, v.ID())
		}
	}
	sort.Slice(a.allDecisionVariables, func(i, j int) bool { return a.allDecisionVariables[i] < a.allDecisionVariables[j] })
	sort.Slice(a.fixed, func(i, j int) bool { return a.fixed[i] < a.fixed[j] })
	sort.Slice(a.irrelevant, func(i, j int) bool { return a.irrelevant[i] < a.irrelevant[j] })
	for k := range a.usedByKind {
		sort.Slice(a.usedByKind[k], func(i, j int) bool { return a.usedByKind[k][i] < a.usedByKind[k][j] })
	}
	return a
}

func sortedIDs(set map[ommx.VariableID]bool) []ommx.VariableID {
	out := make([]ommx.VariableID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (a DecisionVariableAnalysis) UsedBinary() []ommx.VariableID         { return a.usedByKind[ommx.Binary] }
func (a DecisionVariableAnalysis) UsedInteger() []ommx.VariableID        { return a.usedByKind[ommx.Integer] }
func (a DecisionVariableAnalysis) UsedContinuous() []ommx.VariableID     { return a.usedByKind[ommx.Continuous] }
func (a DecisionVariableAnalysis) UsedSemiInteger() []ommx.VariableID    { return a.usedByKind[ommx.SemiInteger] }
func (a DecisionVariableAnalysis) UsedSemiContinuous() []ommx.VariableID { return a.usedByKind[ommx.SemiContinuous] }

func (a DecisionVariableAnalysis) UsedDecisionVariableIDs() []ommx.VariableID { return a.usedDecisionVariables }
func (a DecisionVariableAnalysis) AllDecisionVariableIDs() []ommx.VariableID  { return a.allDecisionVariables }
func (a DecisionVariableAnalysis) UsedInObjective() []ommx.VariableID         { return a.usedInObjective }
func (a DecisionVariableAnalysis) UsedInConstraints() map[ommx.ConstraintID][]ommx.VariableID {
	return a.usedInConstraints
}
func (a DecisionVariableAnalysis) Fixed() []ommx.VariableID      { return a.fixed }
func (a DecisionVariableAnalysis) Irrelevant() []ommx.VariableID { return a.irrelevant }
func (a DecisionVariableAnalysis) Dependent() []ommx.VariableID  { return a.dependent }
