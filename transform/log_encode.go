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

package transform

import (
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc"
	"go.uber.org/zap"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// LogEncode replaces each integer variable in ids by a binary expansion:
// x = l + sum_{i=0}^{m-2} 2^i*b_i + (r - 2^(m-1) + 1)*b_{m-1}, where
// r = u-l and m = ceil(log2(r+1)) is the fewest bits that can reach every
// integer in [l, u]. Fresh binary variable ids are drawn from gen. Fails
// with NotIntegerError or UnknownVariableError and leaves the instance
// untouched if any id is invalid.
func LogEncode(inst *instance.Instance, gen *ommx.IDGenerator, ids []ommx.VariableID) error {
	for _, id := range ids {
		v, err := inst.DecisionVariable(id)
		if err != nil {
			return err
		}
		if v.Kind() != ommx.Integer {
			return &ommx.NotIntegerError{ID: id}
		}
	}

	for _, id := range ids {
		if err := logEncodeOne(inst, gen, id); err != nil {
			return err
		}
	}
	return nil
}

func logEncodeOne(inst *instance.Instance, gen *ommx.IDGenerator, id ommx.VariableID) error {
	v, err := inst.DecisionVariable(id)
	if err != nil {
		return err
	}
	l, u := v.Bound().Lower, v.Bound().Upper
	r := uint64(u - l)
	m := bitWidth(r)

	expr := polynomial.FunctionFromConstant(l)
	for i := 0; i < m-1; i++ {
		b := instance.Binary(gen.NextVariableID())
		if err := inst.AddVariable(b); err != nil {
			return err
		}
		expr = expr.Add(polynomial.FunctionFromVariable(b.ID()).ScalarMul(float64(uint64(1) << uint(i))))
	}
	if m >= 1 {
		lastCoeff := float64(r) - float64(uint64(1)<<uint(m-1)) + 1
		last := instance.Binary(gen.NextVariableID())
		if err := inst.AddVariable(last); err != nil {
			return err
		}
		expr = expr.Add(polynomial.FunctionFromVariable(last.ID()).ScalarMul(lastCoeff))
	}

	if err := inst.SubstituteVariable(id, expr); err != nil {
		return err
	}
	ommx.Logger().Info("log_encode",
		zap.Uint64("variable_id", uint64(id)),
		zap.Int("bits", m),
	)
	return nil
}

// bitWidth returns ceil(log2(r+1)), the fewest bits needed to represent
// every integer in [0, r]. It is computed via the next-power-of-two of
// r+1 rather than a floating log2, so it is exact for every uint64 input.
func bitWidth(r uint64) int {
	npot := ecc.NextPowerOfTwo(r + 1)
	return bits.TrailingZeros64(npot)
}
