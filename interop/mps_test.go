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

package interop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func writeTempMPS(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.mps")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const simpleMPS = `NAME          SIMPLE
ROWS
 N  COST
 L  LIM1
 G  LIM2
COLUMNS
    X1        COST         1.0   LIM1         1.0
    X1        LIM2         1.0
    X2        COST         2.0   LIM1         1.0
RHS
    RHS       LIM1        10.0   LIM2         1.0
BOUNDS
 UP BND       X1          10.0
ENDATA
`

func TestLoadMPSBuildsLinearObjectiveAndConstraints(t *testing.T) {
	path := writeTempMPS(t, simpleMPS)

	inst, err := LoadMPS(path)
	require.NoError(t, err)

	require.Len(t, inst.DecisionVariables(), 2)
	require.Len(t, inst.Constraints(), 2)

	objLinear, ok := inst.Objective().AsLinear()
	require.True(t, ok)
	assert.Equal(t, 1.0, objLinear.Terms()[ommx.VariableID(1)])
	assert.Equal(t, 2.0, objLinear.Terms()[ommx.VariableID(2)])
}

func TestLoadMPSAppliesUpperBound(t *testing.T) {
	path := writeTempMPS(t, simpleMPS)

	inst, err := LoadMPS(path)
	require.NoError(t, err)

	var x1 *ommx.Bound
	for _, v := range inst.DecisionVariables() {
		if v.ID() == 1 {
			b := v.Bound()
			x1 = &b
		}
	}
	require.NotNil(t, x1)
	assert.Equal(t, 10.0, x1.Upper)
}

const rangedMPS = `NAME
ROWS
 N  COST
 L  LIM1
COLUMNS
    X1        COST         1.0   LIM1         1.0
RHS
    RHS       LIM1        10.0
RANGES
    RNG       LIM1         4.0
ENDATA
`

func TestLoadMPSRangedRowSplitsIntoTwoConstraints(t *testing.T) {
	path := writeTempMPS(t, rangedMPS)

	inst, err := LoadMPS(path)
	require.NoError(t, err)
	require.Len(t, inst.Constraints(), 2)
	for _, c := range inst.Constraints() {
		assert.Equal(t, ommx.LeqZero, c.Equality())
	}
}

const integerMPS = `NAME
ROWS
 N  COST
 L  LIM1
COLUMNS
    MARKER                 'MARKER'                 'INTORG'
    X1        COST         1.0   LIM1         1.0
    MARKER                 'MARKER'                 'INTEND'
    X2        COST         1.0   LIM1         1.0
RHS
    RHS       LIM1        10.0
BOUNDS
 UP BND       X1          5.0
ENDATA
`

func TestLoadMPSMarksIntegerVariablesInsideMarkerBlock(t *testing.T) {
	path := writeTempMPS(t, integerMPS)

	inst, err := LoadMPS(path)
	require.NoError(t, err)
	kinds := map[ommx.VariableID]ommx.Kind{}
	for _, v := range inst.DecisionVariables() {
		kinds[v.ID()] = v.Kind()
	}
	assert.Equal(t, ommx.Integer, kinds[1])
	assert.Equal(t, ommx.Continuous, kinds[2])
}

func TestSaveMPSThenLoadMPSRoundTripsLinearModel(t *testing.T) {
	path := writeTempMPS(t, simpleMPS)
	inst, err := LoadMPS(path)
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "out.mps")
	require.NoError(t, SaveMPS(inst, outPath, false))

	reloaded, err := LoadMPS(outPath)
	require.NoError(t, err)
	require.Len(t, reloaded.DecisionVariables(), len(inst.DecisionVariables()))
	require.Len(t, reloaded.Constraints(), len(inst.Constraints()))
}

func TestSaveMPSRejectsQuadraticObjective(t *testing.T) {
	b01, err := ommx.NewBound(0, 1)
	require.NoError(t, err)
	x2, err := instance.ContinuousVar(2, b01)
	require.NoError(t, err)

	quad := polynomial.NewQuadraticTerm(1, 2, 1.0)
	objective := polynomial.FunctionFromQuadratic(quad)

	inst, err := instance.FromComponents(ommx.Minimize, objective, []instance.DecisionVariable{instance.Binary(1), x2}, nil, "", instance.ConstraintHints{})
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "out.mps")
	err = SaveMPS(inst, outPath, false)
	var encErr *ommx.EncodeError
	require.ErrorAs(t, err, &encErr)
}
