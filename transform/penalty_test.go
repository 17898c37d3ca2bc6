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

func TestUniformPenaltyMethodFoldsConstraintsIntoObjective(t *testing.T) {
	x := instance.Binary(1)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.EqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	require.NoError(t, UniformPenaltyMethod(inst, 2.0))

	assert.Len(t, inst.Constraints(), 0)
	assert.Len(t, inst.RemovedConstraints(), 1)
	assert.Equal(t, "uniform_penalty_method", inst.RemovedConstraints()[0].Reason)

	value, err := inst.Objective().Evaluate(map[ommx.VariableID]float64{1: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)
}

func TestUniformPenaltyMethodDefaultsNonPositiveWeight(t *testing.T) {
	x := instance.Binary(1)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.EqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	require.NoError(t, UniformPenaltyMethod(inst, 0))

	value, err := inst.Objective().Evaluate(map[ommx.VariableID]float64{1: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)
}

func TestPenaltyMethodPenalizesInequalityToo(t *testing.T) {
	x := instance.Binary(1)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.LeqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	require.NoError(t, PenaltyMethod(inst))

	assert.Len(t, inst.Constraints(), 0)
	assert.Equal(t, "penalty_method", inst.RemovedConstraints()[0].Reason)
}
