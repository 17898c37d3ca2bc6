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

package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
)

func TestIntegerRejectsFractionalBound(t *testing.T) {
	b, _ := ommx.NewBound(0.5, 3)
	_, err := Integer(1, b)
	require.Error(t, err)
}

func TestWithSubstitutedValueOutOfBound(t *testing.T) {
	v := Binary(1)
	_, err := v.WithSubstitutedValue(2)
	require.Error(t, err)
	var target *ommx.InconsistentSubstitutionError
	require.ErrorAs(t, err, &target)
}

func TestWithSubstitutedValueInBound(t *testing.T) {
	v := Binary(1)
	updated, err := v.WithSubstitutedValue(1)
	require.NoError(t, err)
	val, ok := updated.SubstitutedValue()
	require.True(t, ok)
	assert.Equal(t, 1.0, val)
}

func TestDecisionVariableWireRoundTrip(t *testing.T) {
	v := Binary(1).SetName("x1").AddSubscripts(1, 2).AddParameter("unit", "kg")
	encoded := v.ToBytes()
	decoded, err := DecisionVariableFromBytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, v.ID(), decoded.ID())
	assert.Equal(t, v.Name(), decoded.Name())
	assert.Equal(t, v.Subscripts(), decoded.Subscripts())
	assert.Equal(t, v.Parameters(), decoded.Parameters())
}
