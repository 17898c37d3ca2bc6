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

func TestAsQuboFormatProjectsQuadraticObjective(t *testing.T) {
	x := instance.Binary(1)
	y := instance.Binary(2)
	quad := polynomial.NewQuadraticTerm(1, 2, 3)
	linear, err := polynomial.NewLinear(map[ommx.VariableID]float64{1: 1}, 0)
	require.NoError(t, err)
	objective := polynomial.FunctionFromQuadratic(quad.AddLinear(linear))
	inst := newTestInstance(t, []instance.DecisionVariable{x, y}, objective, nil)

	terms, offset, err := AsQuboFormat(inst)
	require.NoError(t, err)
	assert.Equal(t, 0.0, offset)
	assert.Equal(t, 3.0, terms[PairID{A: 1, B: 2}])
	assert.Equal(t, 1.0, terms[PairID{A: 1, B: 1}])
}

func TestAsQuboFormatRejectsNonBinary(t *testing.T) {
	b, err := ommx.NewBound(0, 5)
	require.NoError(t, err)
	x, err := instance.Integer(1, b)
	require.NoError(t, err)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, polynomial.FunctionFromVariable(1), nil)

	_, _, err = AsQuboFormat(inst)
	require.Error(t, err)
	var target *ommx.QuboRequiresBinaryError
	require.ErrorAs(t, err, &target)
}

func TestAsQuboFormatRejectsDegreeAboveTwo(t *testing.T) {
	x := instance.Binary(1)
	y := instance.Binary(2)
	z := instance.Binary(3)
	monomial := polynomial.NewMonomial([]ommx.VariableID{1, 2, 3}, 1)
	inst := newTestInstance(t, []instance.DecisionVariable{x, y, z}, polynomial.FunctionFromPolynomial(monomial), nil)

	_, _, err := AsQuboFormat(inst)
	require.Error(t, err)
	var target *ommx.DegreeTooHighForQuboError
	require.ErrorAs(t, err, &target)
}

func TestToQuboReformulatesIntegerAndInequality(t *testing.T) {
	b, err := ommx.NewBound(0, 3)
	require.NoError(t, err)
	x, err := instance.Integer(1, b)
	require.NoError(t, err)
	objective := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, polynomial.FunctionFromVariable(1).Sub(polynomial.FunctionFromConstant(2)), ommx.LeqZero)
	inst := newTestInstance(t, []instance.DecisionVariable{x}, objective, []instance.Constraint{c})

	gen := ommx.NewIDGenerator()
	gen.ObserveVariableID(1)
	terms, _, err := ToQubo(inst, gen, QuboOptions{MaxIntegerRange: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, terms)
	for _, v := range inst.DecisionVariables() {
		assert.Equal(t, ommx.Binary, v.Kind())
	}
}
