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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
)

func mustState(t *testing.T, values map[ommx.VariableID]float64) State {
	t.Helper()
	s, err := NewState(values)
	require.NoError(t, err)
	return s
}

func TestSamplesCompressesIdenticalStates(t *testing.T) {
	samples := NewSamples()
	state := mustState(t, map[ommx.VariableID]float64{1: 1.0})

	require.NoError(t, samples.Append([]ommx.SampleID{1, 2}, state))
	require.NoError(t, samples.Append([]ommx.SampleID{3}, state))

	require.Equal(t, 3, samples.NumSamples())
	require.Len(t, samples.Entries(), 1)
	require.ElementsMatch(t, []ommx.SampleID{1, 2, 3}, samples.Entries()[0].IDs)
}

func TestSamplesDistinctStatesGetSeparateEntries(t *testing.T) {
	samples := NewSamples()
	a := mustState(t, map[ommx.VariableID]float64{1: 1.0})
	b := mustState(t, map[ommx.VariableID]float64{1: 2.0})

	require.NoError(t, samples.Append([]ommx.SampleID{1}, a))
	require.NoError(t, samples.Append([]ommx.SampleID{2}, b))

	require.Equal(t, 2, samples.NumSamples())
	require.Len(t, samples.Entries(), 2)
	require.Equal(t, []ommx.SampleID{1, 2}, samples.SampleIDs())
}

func TestSamplesAppendRejectsConflictingID(t *testing.T) {
	samples := NewSamples()
	a := mustState(t, map[ommx.VariableID]float64{1: 1.0})
	b := mustState(t, map[ommx.VariableID]float64{1: 2.0})

	require.NoError(t, samples.Append([]ommx.SampleID{1}, a))
	err := samples.Append([]ommx.SampleID{1}, b)
	require.Error(t, err)
	require.IsType(t, &ommx.DuplicateSampleIDError{}, err)
}

func TestSamplesToBytesRoundTrip(t *testing.T) {
	samples := NewSamples()
	state := mustState(t, map[ommx.VariableID]float64{1: 1.0, 2: -2.5})
	require.NoError(t, samples.Append([]ommx.SampleID{1, 2}, state))
	require.NoError(t, samples.Append([]ommx.SampleID{3}, mustState(t, map[ommx.VariableID]float64{1: 0.0})))

	decoded, err := SamplesFromBytes(samples.ToBytes())
	require.NoError(t, err)
	require.Equal(t, samples.NumSamples(), decoded.NumSamples())
	require.Equal(t, samples.SampleIDs(), decoded.SampleIDs())

	got, ok := decoded.State(2)
	require.True(t, ok)
	require.True(t, got.Equal(state))
}
