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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func newEvalTestInstance(t *testing.T) *instance.Instance {
	t.Helper()
	bound, err := ommx.NewBound(0, 10)
	require.NoError(t, err)
	x, err := instance.ContinuousVar(1, bound)
	require.NoError(t, err)
	objective := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, polynomial.FunctionFromVariable(1).Sub(polynomial.FunctionFromConstant(5)), ommx.LeqZero)
	inst, err := instance.FromComponents(ommx.Minimize, objective, []instance.DecisionVariable{x}, []instance.Constraint{c}, "eval test", instance.ConstraintHints{})
	require.NoError(t, err)
	return inst
}

func TestEvaluateMatchesInstanceEvaluate(t *testing.T) {
	inst := newEvalTestInstance(t)
	state := mustState(t, map[ommx.VariableID]float64{1: 3})

	sol, err := Evaluate(inst, state, instance.DefaultAtol)
	require.NoError(t, err)

	want, err := inst.Evaluate(state.Values(), instance.DefaultAtol)
	require.NoError(t, err)
	require.Equal(t, want.Objective, sol.Objective)
	require.Equal(t, want.Feasible, sol.Feasible)
}

func TestEvaluateSamplesReusesSolutionForIdenticalStates(t *testing.T) {
	inst := newEvalTestInstance(t)
	samples := NewSamples()
	require.NoError(t, samples.Append([]ommx.SampleID{1, 2}, mustState(t, map[ommx.VariableID]float64{1: 3})))
	require.NoError(t, samples.Append([]ommx.SampleID{3}, mustState(t, map[ommx.VariableID]float64{1: 7})))

	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	sol1, err := ss.Get(1)
	require.NoError(t, err)
	sol2, err := ss.Get(2)
	require.NoError(t, err)
	require.Equal(t, sol1.Objective, sol2.Objective)
	require.True(t, sol1.Feasible)

	sol3, err := ss.Get(3)
	require.NoError(t, err)
	require.False(t, sol3.Feasible)
}
