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
	"math/big"
)

// ContentFactor computes the rational content of a list of coefficients:
// the largest positive rational g such that every coefficient divided by g
// is an integer. This resolves the open question of how a floating-point
// coefficient set should be rescaled to an integer-coefficient form (e.g.
// before handing a QUBO off to a sampler that expects integer weights):
// each coefficient is read back as an exact rational via big.Rat.SetFloat64
// (which recovers the precise binary value, not a decimal approximation),
// then g is the GCD of the numerators over the LCM of the denominators.
//
// Returns 1 for an empty or all-zero input.
func ContentFactor(coeffs []float64) float64 {
	var numGCD, denLCM *big.Int
	for _, c := range coeffs {
		if c == 0 {
			continue
		}
		r := new(big.Rat).SetFloat64(c)
		if r == nil {
			continue
		}
		num := new(big.Int).Abs(r.Num())
		den := new(big.Int).Abs(r.Denom())
		if numGCD == nil {
			numGCD = num
			denLCM = den
			continue
		}
		numGCD = new(big.Int).GCD(nil, nil, numGCD, num)
		denLCM = lcm(denLCM, den)
	}
	if numGCD == nil || numGCD.Sign() == 0 {
		return 1
	}
	g := new(big.Rat).SetFrac(numGCD, denLCM)
	f, _ := g.Float64()
	return f
}

func lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return big.NewInt(0)
	}
	g := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Div(new(big.Int).Mul(a, b), g)
}
