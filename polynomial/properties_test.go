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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Jij-Inc/ommx-sub001"
)

// genLinear produces small Linear expressions over variable ids 1..4, with
// coefficients in a bounded range so evaluation never overflows, and a
// constant of 0.
func genLinear() gopter.Gen {
	return gen.MapOf(
		gen.UInt64Range(1, 4),
		gen.Float64Range(-10, 10),
	).Map(func(m map[uint64]float64) Linear {
		terms := make(map[ommx.VariableID]float64, len(m))
		for id, c := range m {
			terms[ommx.VariableID(id)] = c
		}
		l, _ := NewLinear(terms, 0)
		return l
	})
}

func genState() map[ommx.VariableID]float64 {
	return map[ommx.VariableID]float64{1: 1.5, 2: -2, 3: 3, 4: 0.5}
}

func TestFunctionProperties(t *testing.T) {
	props := gopter.NewProperties(nil)

	props.Property("evaluate is additive over +", prop.ForAll(
		func(a, b Linear) bool {
			fa, fb := FunctionFromLinear(a), FunctionFromLinear(b)
			state := genState()
			va, err1 := fa.Evaluate(state)
			vb, err2 := fb.Evaluate(state)
			vsum, err3 := fa.Add(fb).Evaluate(state)
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			return almostEqualFloat(va+vb, vsum, 1e-9)
		},
		genLinear(), genLinear(),
	))

	props.Property("evaluate is multiplicative over *", prop.ForAll(
		func(a, b Linear) bool {
			fa, fb := FunctionFromLinear(a), FunctionFromLinear(b)
			state := genState()
			va, err1 := fa.Evaluate(state)
			vb, err2 := fb.Evaluate(state)
			vprod, err3 := fa.Mul(fb).Evaluate(state)
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			return almostEqualFloat(va*vb, vprod, 1e-6)
		},
		genLinear(), genLinear(),
	))

	props.Property("to_bytes/from_bytes round trip preserves the function", prop.ForAll(
		func(a Linear) bool {
			f := FunctionFromLinear(a)
			decoded, err := FunctionFromBytes(f.ToBytes())
			if err != nil {
				return false
			}
			return f.Equal(decoded)
		},
		genLinear(),
	))

	props.Property("reduce_binary_power is idempotent", prop.ForAll(
		func(a Linear) bool {
			p := FromLinear(a).Mul(FromLinear(a)).Mul(FromLinear(a))
			once := p.ReduceBinaryPower()
			twice := once.ReduceBinaryPower()
			return once.Equal(twice)
		},
		genLinear(),
	))

	props.TestingRun(t)
}

func TestAlmostEqualExpansionProperty(t *testing.T) {
	x := FunctionFromVariable(1)
	one := FunctionFromConstant(1)
	lhs := x.Add(one).Mul(x.Add(one))
	rhs := x.Mul(x).Add(x.ScalarMul(2)).Add(one)
	if !lhs.AlmostEqual(rhs, 1e-9) {
		t.Fatalf("(x+1)^2 should almost_equal x^2+2x+1, got %s vs %s", lhs, rhs)
	}
}

func almostEqualFloat(a, b, atol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= atol
}
