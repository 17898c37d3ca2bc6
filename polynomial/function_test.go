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

package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
)

func TestFunctionDemotesOnSubtraction(t *testing.T) {
	a := FunctionFromQuadratic(NewQuadraticTerm(1, 2, 3))
	b := FunctionFromQuadratic(NewQuadraticTerm(1, 2, 3))
	diff := a.Sub(b)
	assert.Equal(t, "constant", diff.Kind())
}

func TestFunctionAddAndConstantMulDemoteToConstant(t *testing.T) {
	x := FunctionFromVariable(1)
	one := FunctionFromConstant(1)
	negOne := FunctionFromConstant(-1)

	// (x+1) * 0 = 0, trivially constant; check a less trivial case:
	// (x - x) treated as a Function stays linear/constant through Add.
	sum := x.Add(x.ScalarMul(-1))
	assert.Equal(t, "constant", sum.Kind())

	prod := one.Mul(negOne)
	assert.Equal(t, "constant", prod.Kind())
}

func TestFunctionWireRoundTripEachVariant(t *testing.T) {
	cases := []Function{
		FunctionFromConstant(3.5),
		FunctionFromLinear(LinearFromVariable(1)),
		FunctionFromQuadratic(NewQuadraticTerm(1, 2, 2)),
		FunctionFromPolynomial(NewMonomial([]ommx.VariableID{1, 1, 1}, 1)),
	}
	for _, f := range cases {
		encoded := f.ToBytes()
		decoded, err := FunctionFromBytes(encoded)
		require.NoError(t, err)
		assert.True(t, f.Equal(decoded), "round trip of %s", f.Kind())
	}
}

func TestFunctionEvaluateHomomorphism(t *testing.T) {
	state := map[ommx.VariableID]float64{1: 2, 2: 3}
	a := FunctionFromLinear(LinearFromVariable(1))
	b := FunctionFromQuadratic(NewQuadraticTerm(1, 2, 1))

	sumVal, err := a.Add(b).Evaluate(state)
	require.NoError(t, err)
	av, _ := a.Evaluate(state)
	bv, _ := b.Evaluate(state)
	assert.Equal(t, av+bv, sumVal)

	prodVal, err := a.Mul(b).Evaluate(state)
	require.NoError(t, err)
	assert.Equal(t, av*bv, prodVal)
}
