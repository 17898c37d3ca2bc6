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

func TestConvertInequalityToEqualityWithIntegerSlack(t *testing.T) {
	b01, err := ommx.NewBound(0, 1)
	require.NoError(t, err)
	x, err := instance.Integer(1, b01)
	require.NoError(t, err)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.LeqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	gen := ommx.NewIDGenerator()
	gen.ObserveVariableID(1)
	require.NoError(t, ConvertInequalityToEqualityWithIntegerSlack(inst, gen, 10, 100))

	updated, err := inst.Constraint(10)
	require.NoError(t, err)
	assert.Equal(t, ommx.EqZero, updated.Equality())
}

func TestConvertInequalityToEqualityLeavesEqualityUntouched(t *testing.T) {
	x := instance.Binary(1)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.EqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	gen := ommx.NewIDGenerator()
	require.NoError(t, ConvertInequalityToEqualityWithIntegerSlack(inst, gen, 10, 100))

	updated, err := inst.Constraint(10)
	require.NoError(t, err)
	assert.Equal(t, ommx.EqZero, updated.Equality())
	assert.Len(t, inst.DecisionVariables(), 1, "no slack variable should have been introduced")
}

func TestConvertInequalityToEqualityTooLargeRange(t *testing.T) {
	b, err := ommx.NewBound(0, 1000)
	require.NoError(t, err)
	x, err := instance.Integer(1, b)
	require.NoError(t, err)
	// x1 - 1000 <= 0 with x1 in [0, 1000] needs a slack range of [0, 1000].
	f := polynomial.FunctionFromVariable(1).Sub(polynomial.FunctionFromConstant(1000))
	c := instance.NewConstraint(10, f, ommx.LeqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	gen := ommx.NewIDGenerator()
	gen.ObserveVariableID(1)
	err = ConvertInequalityToEqualityWithIntegerSlack(inst, gen, 10, 5)
	require.Error(t, err)
	var target *ommx.SlackRangeTooLargeError
	require.ErrorAs(t, err, &target)
}

func TestAddIntegerSlackToInequality(t *testing.T) {
	b, err := ommx.NewBound(0, 10)
	require.NoError(t, err)
	x, err := instance.Integer(1, b)
	require.NoError(t, err)
	f := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, f, ommx.LeqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromConstant(0), []instance.Constraint{c})

	gen := ommx.NewIDGenerator()
	gen.ObserveVariableID(1)
	coeff, ok, err := AddIntegerSlackToInequality(inst, gen, 10, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Greater(t, coeff, 0.0)
	assert.Len(t, inst.DecisionVariables(), 2)
}
