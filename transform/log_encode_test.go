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

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func newTestInstance(t *testing.T, vars []instance.DecisionVariable, objective polynomial.Function, constraints []instance.Constraint) *instance.Instance {
	t.Helper()
	inst, err := instance.FromComponents(ommx.Minimize, objective, vars, constraints, "test", instance.ConstraintHints{})
	require.NoError(t, err)
	return inst
}

func TestLogEncodeReplacesIntegerWithBits(t *testing.T) {
	bound, err := ommx.NewBound(0, 5)
	require.NoError(t, err)
	x, err := instance.Integer(1, bound)
	require.NoError(t, err)
	objective := polynomial.FunctionFromVariable(1)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, objective, nil)

	gen := ommx.NewIDGenerator()
	gen.ObserveVariableID(1)
	require.NoError(t, LogEncode(inst, gen, []ommx.VariableID{1}))

	for _, v := range inst.DecisionVariables() {
		if v.ID() == 1 {
			assert.Equal(t, ommx.Binary, v.Kind())
		}
	}

	state := map[ommx.VariableID]float64{}
	for _, v := range inst.DecisionVariables() {
		if v.ID() != 1 {
			state[v.ID()] = 1
		}
	}
	value, err := inst.Objective().Evaluate(state)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, value, 0.0)
	assert.LessOrEqual(t, value, 5.0)
}

func TestLogEncodeRejectsNonInteger(t *testing.T) {
	x := instance.Binary(1)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromVariable(1), nil)
	gen := ommx.NewIDGenerator()
	err := LogEncode(inst, gen, []ommx.VariableID{1})
	require.Error(t, err)
	var target *ommx.NotIntegerError
	require.ErrorAs(t, err, &target)
}
