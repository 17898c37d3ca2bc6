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

import "github.com/Jij-Inc/ommx-sub001"

// SubstituteVariable replaces every occurrence of id in p with replacement,
// symbolically (unlike PartialEvaluate, which substitutes concrete numeric
// values). A monomial containing id k times becomes coeff * remainder *
// replacement^k, expanded back into the general polynomial form. This is
// the primitive log_encode and the slack-introduction transforms build on:
// both replace a variable by an expression over fresh variables rather
// than by a number.
func (p Polynomial) SubstituteVariable(id ommx.VariableID, replacement Polynomial) Polynomial {
	result := Polynomial{terms: map[monomialKey]polyTerm{}}
	for _, t := range p.terms {
		count := 0
		var remainder []ommx.VariableID
		for _, v := range t.ids {
			if v == id {
				count++
			} else {
				remainder = append(remainder, v)
			}
		}
		contribution := NewMonomial(remainder, t.coeff)
		for i := 0; i < count; i++ {
			contribution = contribution.Mul(replacement)
		}
		result = result.Add(contribution)
	}
	return result
}

// SubstituteVariable replaces every occurrence of id in f with replacement,
// re-demoting the representation if the substitution lowered the degree.
func (f Function) SubstituteVariable(id ommx.VariableID, replacement Function) Function {
	return FunctionFromPolynomial(f.AsPolynomial().SubstituteVariable(id, replacement.AsPolynomial()))
}
