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

package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameSeedProducesIdenticalOutput(t *testing.T) {
	opts := Options{NumTerms: 5, MaxDegree: 3, MaxID: 10}

	a := NewGenerator(42).Polynomial(opts)
	b := NewGenerator(42).Polynomial(opts)
	require.True(t, a.Equal(b))
}

func TestDifferentSeedsDiverge(t *testing.T) {
	opts := Options{NumTerms: 5, MaxDegree: 3, MaxID: 10}

	a := NewGenerator(1).Polynomial(opts)
	b := NewGenerator(2).Polynomial(opts)
	require.False(t, a.Equal(b))
}

func TestLinearStaysWithinRequestedIDs(t *testing.T) {
	opts := Options{NumTerms: 20, MaxID: 4}
	l := NewGenerator(7).Linear(opts)
	for _, id := range l.RequiredIDs() {
		require.LessOrEqual(t, uint64(id), uint64(4))
		require.GreaterOrEqual(t, uint64(id), uint64(1))
	}
}

func TestFunctionVariantFollowsMaxDegree(t *testing.T) {
	g := NewGenerator(3)

	require.Equal(t, "constant", g.Function(Options{MaxDegree: 0}).Kind())
	require.Equal(t, "linear", g.Function(Options{NumTerms: 2, MaxDegree: 1, MaxID: 3}).Kind())
	require.Equal(t, "quadratic", g.Function(Options{NumTerms: 2, MaxDegree: 2, MaxID: 3}).Kind())
	require.Equal(t, "polynomial", g.Function(Options{NumTerms: 2, MaxDegree: 4, MaxID: 3}).Kind())
}

func TestStateCoversEveryIDUpToMax(t *testing.T) {
	s := NewGenerator(9).State(Options{MaxID: 5})
	require.Equal(t, 5, s.Len())
}

func TestSamplesProducesRequestedCount(t *testing.T) {
	samples := NewGenerator(11).Samples(Options{MaxID: 3, NumSamples: 4})
	require.Equal(t, 4, samples.NumSamples())
}

func TestInstanceIsStructurallyValid(t *testing.T) {
	inst, err := NewGenerator(5).Instance(Options{NumTerms: 3, MaxID: 4})
	require.NoError(t, err)
	require.Len(t, inst.DecisionVariables(), 4)
}

func TestSnapshotIsDeterministicAcrossCalls(t *testing.T) {
	p := NewGenerator(100).Polynomial(Options{NumTerms: 3, MaxDegree: 2, MaxID: 5})
	m := map[string]float64{}
	for _, ids := range p.Monomials() {
		m[p.String()] = p.Coefficient(ids)
	}

	a, err := Snapshot(m)
	require.NoError(t, err)
	b, err := Snapshot(m)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
