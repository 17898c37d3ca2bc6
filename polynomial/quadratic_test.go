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

func TestQuadraticPairCanonicalization(t *testing.T) {
	q1 := NewQuadraticTerm(1, 2, 3)
	q2 := NewQuadraticTerm(2, 1, 3)
	assert.True(t, q1.Equal(q2), "x1*x2 and x2*x1 must canonicalize to the same term")
}

func TestMulLinearProducesQuadratic(t *testing.T) {
	a, _ := NewLinear(map[ommx.VariableID]float64{1: 1}, 1)
	b, _ := NewLinear(map[ommx.VariableID]float64{1: 1}, -1)
	q := MulLinear(a, b) // (x+1)(x-1) = x^2 - 1
	v, err := q.Evaluate(map[ommx.VariableID]float64{1: 3})
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)
}

func TestQuadraticPartialEvaluate(t *testing.T) {
	q := NewQuadraticTerm(1, 2, 2)
	partial := q.PartialEvaluate(map[ommx.VariableID]float64{1: 3})
	// 2*x1*x2 with x1=3 becomes 6*x2, a linear remainder
	assert.Equal(t, 0, partial.NumTerms())
	assert.Equal(t, 6.0, partial.Linear().Coefficient(2))
}

func TestQuadraticDegree(t *testing.T) {
	q := NewQuadraticTerm(1, 1, 1) // x1^2
	assert.Equal(t, 2, q.Degree())
	assert.Equal(t, Quadratic{}.Degree(), 0)
}
