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
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func newMinimizeInstance(t *testing.T) *instance.Instance {
	t.Helper()
	bound, err := ommx.NewBound(0, 10)
	require.NoError(t, err)
	x, err := instance.ContinuousVar(1, bound)
	require.NoError(t, err)
	c := instance.NewConstraint(10, polynomial.FunctionFromVariable(1).Sub(polynomial.FunctionFromConstant(5)), ommx.LeqZero)
	inst, err := instance.FromComponents(ommx.Minimize, polynomial.FunctionFromVariable(1), []instance.DecisionVariable{x}, []instance.Constraint{c}, "sampleset test", instance.ConstraintHints{})
	require.NoError(t, err)
	return inst
}

func TestBestFeasiblePicksSmallestObjectiveAmongFeasible(t *testing.T) {
	inst := newMinimizeInstance(t)
	samples := NewSamples()
	require.NoError(t, samples.Append([]ommx.SampleID{1}, mustState(t, map[ommx.VariableID]float64{1: 3})))
	require.NoError(t, samples.Append([]ommx.SampleID{2}, mustState(t, map[ommx.VariableID]float64{1: 1})))
	require.NoError(t, samples.Append([]ommx.SampleID{3}, mustState(t, map[ommx.VariableID]float64{1: 9})))

	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	id, sol, err := ss.BestFeasible()
	require.NoError(t, err)
	require.Equal(t, ommx.SampleID(2), id)
	require.Equal(t, 1.0, sol.Objective)
}

func TestBestFeasibleTieBreaksOnAscendingID(t *testing.T) {
	inst := newMinimizeInstance(t)
	samples := NewSamples()
	state := mustState(t, map[ommx.VariableID]float64{1: 2})
	require.NoError(t, samples.Append([]ommx.SampleID{5, 2}, state))

	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	id, _, err := ss.BestFeasible()
	require.NoError(t, err)
	require.Equal(t, ommx.SampleID(2), id)
}

func TestBestFeasibleFailsWhenNoneFeasible(t *testing.T) {
	inst := newMinimizeInstance(t)
	samples := NewSamples()
	require.NoError(t, samples.Append([]ommx.SampleID{1}, mustState(t, map[ommx.VariableID]float64{1: 9})))

	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	_, _, err = ss.BestFeasible()
	require.Error(t, err)
	require.IsType(t, &ommx.NoFeasibleSampleError{}, err)
}

func TestSampleSetGetUnknownID(t *testing.T) {
	inst := newMinimizeInstance(t)
	samples := NewSamples()
	require.NoError(t, samples.Append([]ommx.SampleID{1}, mustState(t, map[ommx.VariableID]float64{1: 1})))
	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	_, err = ss.Get(99)
	require.Error(t, err)
	require.IsType(t, &ommx.UnknownSampleIDError{}, err)
}

func TestSampleSetToBytesRoundTrip(t *testing.T) {
	inst := newMinimizeInstance(t)
	samples := NewSamples()
	require.NoError(t, samples.Append([]ommx.SampleID{1}, mustState(t, map[ommx.VariableID]float64{1: 3})))
	require.NoError(t, samples.Append([]ommx.SampleID{2}, mustState(t, map[ommx.VariableID]float64{1: 1})))

	ss, err := EvaluateSamples(inst, samples, instance.DefaultAtol)
	require.NoError(t, err)

	decoded, err := SampleSetFromBytes(ss.ToBytes())
	require.NoError(t, err)
	require.Equal(t, ss.Sense(), decoded.Sense())

	id, sol, err := decoded.BestFeasible()
	require.NoError(t, err)
	require.Equal(t, ommx.SampleID(2), id)
	require.Equal(t, 1.0, sol.Objective)
}
