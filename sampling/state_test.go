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

package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
)

func TestNewStateRejectsNaN(t *testing.T) {
	_, err := NewState(map[ommx.VariableID]float64{1: math.NaN()})
	require.Error(t, err)
}

func TestStateEqual(t *testing.T) {
	a, err := NewState(map[ommx.VariableID]float64{1: 1.0, 2: 2.0})
	require.NoError(t, err)
	b, err := NewState(map[ommx.VariableID]float64{2: 2.0, 1: 1.0})
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	c, err := NewState(map[ommx.VariableID]float64{1: 1.0, 2: 2.5})
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}

func TestStateToBytesRoundTrip(t *testing.T) {
	s, err := NewState(map[ommx.VariableID]float64{1: 0.0, 5: -3.5, 9: 42})
	require.NoError(t, err)

	decoded, err := StateFromBytes(s.ToBytes())
	require.NoError(t, err)
	require.True(t, s.Equal(decoded))

	v, ok := decoded.Get(1)
	require.True(t, ok)
	require.Equal(t, 0.0, v)
}
