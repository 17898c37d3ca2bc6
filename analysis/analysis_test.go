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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func TestAnalyzePartitions(t *testing.T) {
	x := instance.Binary(1)
	y := instance.Binary(2)
	pointBound, _ := ommx.NewBound(3, 3)
	z, err := instance.ContinuousVar(3, pointBound)
	require.NoError(t, err)
	unused := instance.Binary(4)

	objective := polynomial.FunctionFromVariable(1)
	c := instance.NewConstraint(10, polynomial.FunctionFromVariable(2), ommx.LeqZero)

	inst, err := instance.FromComponents(ommx.Minimize, objective,
		[]instance.DecisionVariable{x, y, z, unused}, []instance.Constraint{c}, "", instance.ConstraintHints{})
	require.NoError(t, err)

	a := Analyze(inst)
	assert.Equal(t, []ommx.VariableID{1}, a.UsedInObjective())
	assert.Equal(t, []ommx.VariableID{1, 2}, a.UsedDecisionVariableIDs())
	assert.Equal(t, []ommx.VariableID{1, 2, 3, 4}, a.AllDecisionVariableIDs())
	assert.Equal(t, []ommx.VariableID{3}, a.Fixed())
	assert.Equal(t, []ommx.VariableID{4}, a.Irrelevant())
	assert.Empty(t, a.Dependent())
}

func TestAnalyzeDependentVariables(t *testing.T) {
	x := instance.Binary(1)
	y := instance.Binary(2)
	objective := polynomial.FunctionFromVariable(1)
	inst, err := instance.FromComponents(ommx.Minimize, objective,
		[]instance.DecisionVariable{x, y}, nil, "", instance.ConstraintHints{})
	require.NoError(t, err)
	require.NoError(t, inst.AddDependency(2, polynomial.FunctionFromConstant(0)))

	a := Analyze(inst)
	assert.Equal(t, []ommx.VariableID{2}, a.Dependent())
	assert.Equal(t, []ommx.VariableID{2}, a.Fixed())
}
