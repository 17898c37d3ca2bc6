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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
)

func TestLinearAddAndEvaluate(t *testing.T) {
	a, err := NewLinear(map[ommx.VariableID]float64{1: 2, 2: 3}, 1)
	require.NoError(t, err)
	b, err := NewLinear(map[ommx.VariableID]float64{2: -3, 3: 4}, 5)
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, 2, sum.NumTerms(), "the x2 terms should cancel, leaving x1 and x3")
	v, err := sum.Evaluate(map[ommx.VariableID]float64{1: 1, 3: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0+4.0+6.0, v)
}

func TestLinearEvaluateMissingVariable(t *testing.T) {
	l := LinearFromVariable(1)
	_, err := l.Evaluate(map[ommx.VariableID]float64{})
	require.Error(t, err)
	var target *ommx.MissingVariableError
	require.ErrorAs(t, err, &target)
}

func TestLinearPartialEvaluate(t *testing.T) {
	l, _ := NewLinear(map[ommx.VariableID]float64{1: 2, 2: 3}, 1)
	partial := l.PartialEvaluate(map[ommx.VariableID]float64{1: 5})
	assert.Equal(t, []ommx.VariableID{2}, partial.RequiredIDs())
	assert.Equal(t, 11.0, partial.Constant())
}

func TestLinearAlmostEqual(t *testing.T) {
	a, _ := NewLinear(map[ommx.VariableID]float64{1: 1.0000001}, 0)
	b, _ := NewLinear(map[ommx.VariableID]float64{1: 1}, 0)
	assert.True(t, a.AlmostEqual(b, 1e-6))
	assert.False(t, a.Equal(b))
}

func TestLinearRejectsNaN(t *testing.T) {
	_, err := NewLinear(map[ommx.VariableID]float64{1: math.NaN()}, 0)
	require.Error(t, err)
}
