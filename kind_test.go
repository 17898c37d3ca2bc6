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

package ommx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValidateBoundBinary(t *testing.T) {
	b, _ := NewBound(0, 1)
	require.NoError(t, Binary.ValidateBound(b))

	b, _ = NewBound(0, 2)
	require.Error(t, Binary.ValidateBound(b))

	b, _ = NewBound(0.5, 1)
	require.Error(t, Binary.ValidateBound(b))
}

func TestKindValidateBoundInteger(t *testing.T) {
	b, _ := NewBound(-3, math.Inf(1))
	require.NoError(t, Integer.ValidateBound(b))

	b, _ = NewBound(0.5, 3)
	require.Error(t, Integer.ValidateBound(b))
}

func TestKindAllowsValueSemiContinuous(t *testing.T) {
	b, _ := NewBound(5, 10)
	assert.True(t, SemiContinuous.AllowsValue(0, b))
	assert.True(t, SemiContinuous.AllowsValue(7, b))
	assert.False(t, SemiContinuous.AllowsValue(3, b))
}

func TestEqualitySatisfied(t *testing.T) {
	assert.True(t, EqZero.Satisfied(1e-9, 1e-6))
	assert.False(t, EqZero.Satisfied(1e-3, 1e-6))
	assert.True(t, LeqZero.Satisfied(-5, 1e-6))
	assert.False(t, LeqZero.Satisfied(5, 1e-6))
}

func TestSenseOpposite(t *testing.T) {
	assert.Equal(t, Maximize, Minimize.Opposite())
	assert.Equal(t, Minimize, Maximize.Opposite())
}
