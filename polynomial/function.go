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
	"github.com/Jij-Inc/ommx-sub001"
)

// functionKind tags which concrete representation a Function currently
// holds.
type functionKind int

const (
	kindConstant functionKind = iota
	kindLinear
	kindQuadratic
	kindPolynomial
)

// Function is the minimum-variant sum type used everywhere a degree-free
// expression is needed: an objective, the left-hand side of a constraint,
// or a decision-variable substitution. Every constructor and arithmetic
// operation demotes to the lowest variant that represents the value
// exactly, so (x+1)*(x-1) - x*x + 1 ends up stored as a constant 0, not as
// a Polynomial with cancelling terms.
type Function struct {
	kind     functionKind
	constant float64
	linear   Linear
	quad     Quadratic
	poly     Polynomial
}

// FunctionFromConstant builds a constant Function.
func FunctionFromConstant(c float64) Function {
	return Function{kind: kindConstant, constant: c}
}

// FunctionFromVariable builds the Function 1*x_id.
func FunctionFromVariable(id ommx.VariableID) Function {
	return FunctionFromLinear(LinearFromVariable(id))
}

// FunctionFromLinear wraps l, demoting to a constant if l has no terms.
func FunctionFromLinear(l Linear) Function {
	if l.NumTerms() == 0 {
		return FunctionFromConstant(l.Constant())
	}
	return Function{kind: kindLinear, linear: l}
}

// FunctionFromQuadratic wraps q, demoting to Linear or constant as far as
// possible.
func FunctionFromQuadratic(q Quadratic) Function {
	if q.NumTerms() == 0 {
		return FunctionFromLinear(q.Linear())
	}
	return Function{kind: kindQuadratic, quad: q}
}

// FunctionFromPolynomial wraps p, demoting to Quadratic, Linear, or
// constant as far as possible.
func FunctionFromPolynomial(p Polynomial) Function {
	if q, ok := p.AsQuadratic(); ok {
		return FunctionFromQuadratic(q)
	}
	return Function{kind: kindPolynomial, poly: p}
}

// Kind returns a short tag identifying the current representation:
// "constant", "linear", "quadratic", or "polynomial".
func (f Function) Kind() string {
	switch f.kind {
	case kindConstant:
		return "constant"
	case kindLinear:
		return "linear"
	case kindQuadratic:
		return "quadratic"
	default:
		return "polynomial"
	}
}

// AsPolynomial lifts the current variant up to the general Polynomial
// representation, for code paths that want a single shape to operate on.
func (f Function) AsPolynomial() Polynomial {
	switch f.kind {
	case kindConstant:
		return FromLinear(LinearFromConstant(f.constant))
	case kindLinear:
		return FromLinear(f.linear)
	case kindQuadratic:
		return FromQuadratic(f.quad)
	default:
		return f.poly
	}
}

// AsLinear reports whether f's degree is <= 1 and, if so, its Linear form.
func (f Function) AsLinear() (Linear, bool) {
	switch f.kind {
	case kindConstant:
		return LinearFromConstant(f.constant), true
	case kindLinear:
		return f.linear, true
	default:
		return Linear{}, false
	}
}

// AsQuadratic reports whether f's degree is <= 2 and, if so, its Quadratic
// form.
func (f Function) AsQuadratic() (Quadratic, bool) {
	switch f.kind {
	case kindConstant:
		return Quadratic{linear: LinearFromConstant(f.constant)}, true
	case kindLinear:
		return Quadratic{linear: f.linear}, true
	case kindQuadratic:
		return f.quad, true
	default:
		return f.poly.AsQuadratic()
	}
}

// Degree returns the expression's polynomial degree.
func (f Function) Degree() int {
	switch f.kind {
	case kindConstant:
		return 0
	case kindLinear:
		return f.linear.Degree()
	case kindQuadratic:
		return f.quad.Degree()
	default:
		return f.poly.Degree()
	}
}

// NumTerms returns the number of nonzero terms at or above degree 1 (the
// constant, if any, does not count as a term).
func (f Function) NumTerms() int {
	switch f.kind {
	case kindConstant:
		return 0
	case kindLinear:
		return f.linear.NumTerms()
	case kindQuadratic:
		return f.quad.NumTerms() + f.linear0(f.quad.Linear())
	default:
		n := f.poly.NumTerms()
		if f.poly.Coefficient(nil) != 0 {
			n--
		}
		return n
	}
}

func (f Function) linear0(l Linear) int { return l.NumTerms() }

// RequiredIDs returns the sorted set of variable ids f depends on.
func (f Function) RequiredIDs() []ommx.VariableID {
	switch f.kind {
	case kindConstant:
		return nil
	case kindLinear:
		return f.linear.RequiredIDs()
	case kindQuadratic:
		return f.quad.RequiredIDs()
	default:
		return f.poly.RequiredIDs()
	}
}

// Add returns f + other, at the lowest representation that holds exactly.
func (f Function) Add(other Function) Function {
	if f.kind <= kindLinear && other.kind <= kindLinear {
		fl, _ := f.AsLinear()
		ol, _ := other.AsLinear()
		return FunctionFromLinear(fl.Add(ol))
	}
	if f.kind <= kindQuadratic && other.kind <= kindQuadratic {
		fq, _ := f.AsQuadratic()
		oq, _ := other.AsQuadratic()
		return FunctionFromQuadratic(fq.Add(oq))
	}
	return FunctionFromPolynomial(f.AsPolynomial().Add(other.AsPolynomial()))
}

// Sub returns f - other.
func (f Function) Sub(other Function) Function {
	return f.Add(other.ScalarMul(-1))
}

// ScalarMul returns f * k.
func (f Function) ScalarMul(k float64) Function {
	switch f.kind {
	case kindConstant:
		return FunctionFromConstant(f.constant * k)
	case kindLinear:
		return FunctionFromLinear(f.linear.ScalarMul(k))
	case kindQuadratic:
		return FunctionFromQuadratic(f.quad.ScalarMul(k))
	default:
		return FunctionFromPolynomial(f.poly.ScalarMul(k))
	}
}

// Mul returns the full product f * other, at the lowest representation
// that holds exactly (e.g. a linear expression times a constant stays
// Linear rather than becoming Quadratic).
func (f Function) Mul(other Function) Function {
	if f.kind <= kindLinear && other.kind <= kindLinear {
		fl, _ := f.AsLinear()
		ol, _ := other.AsLinear()
		return FunctionFromQuadratic(MulLinear(fl, ol))
	}
	return FunctionFromPolynomial(f.AsPolynomial().Mul(other.AsPolynomial()))
}

// ReduceBinaryPower collapses repeated-variable monomials under the
// assumption that every variable involved is binary, demoting back down
// when the result's degree drops.
func (f Function) ReduceBinaryPower() Function {
	return FunctionFromPolynomial(f.AsPolynomial().ReduceBinaryPower())
}

// Evaluate substitutes state for every required id.
func (f Function) Evaluate(state map[ommx.VariableID]float64) (float64, error) {
	switch f.kind {
	case kindConstant:
		return f.constant, nil
	case kindLinear:
		return f.linear.Evaluate(state)
	case kindQuadratic:
		return f.quad.Evaluate(state)
	default:
		return f.poly.Evaluate(state)
	}
}

// PartialEvaluate substitutes only the ids present in state, re-demoting
// the representation if the substitution lowered the degree.
func (f Function) PartialEvaluate(state map[ommx.VariableID]float64) Function {
	switch f.kind {
	case kindConstant:
		return f
	case kindLinear:
		return FunctionFromLinear(f.linear.PartialEvaluate(state))
	case kindQuadratic:
		return FunctionFromQuadratic(f.quad.PartialEvaluate(state))
	default:
		return FunctionFromPolynomial(f.poly.PartialEvaluate(state))
	}
}

// Equal reports exact equality. Functions in different representations
// compare equal when their lifted polynomial forms match exactly, since
// demotion is deterministic and canonical.
func (f Function) Equal(other Function) bool {
	if f.kind == other.kind {
		switch f.kind {
		case kindConstant:
			return f.constant == other.constant
		case kindLinear:
			return f.linear.Equal(other.linear)
		case kindQuadratic:
			return f.quad.Equal(other.quad)
		default:
			return f.poly.Equal(other.poly)
		}
	}
	return f.AsPolynomial().Equal(other.AsPolynomial())
}

// AlmostEqual reports equality up to atol per coefficient, regardless of
// the two operands' concrete representation.
func (f Function) AlmostEqual(other Function, atol float64) bool {
	return f.AsPolynomial().AlmostEqual(other.AsPolynomial(), atol)
}

// String renders a human-readable form for diagnostics.
func (f Function) String() string {
	switch f.kind {
	case kindConstant:
		return FunctionFromConstant(f.constant).AsPolynomial().String()
	case kindLinear:
		return f.linear.String()
	case kindQuadratic:
		return f.quad.String()
	default:
		return f.poly.String()
	}
}
