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

// Package polynomial implements the polynomial algebra that decision
// variables, constraints, and objectives are built from: Linear, Quadratic,
// and general Polynomial, unified behind the Function sum type. Every
// arithmetic operation here is careful to return the lowest-degree concrete
// type that represents its result exactly, so a Function built from
// products of linear terms demotes back to Linear (or a constant) the
// moment an addition or subtraction cancels the higher-degree terms.
package polynomial

import (
	"fmt"
	"math"
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
)

// Linear is a first-degree polynomial: a weighted sum of decision variables
// plus a constant term.
type Linear struct {
	terms    map[ommx.VariableID]float64
	constant float64
}

// NewLinear builds a Linear from a term map and constant. Zero-valued
// coefficients are dropped; a NaN or infinite coefficient or constant is
// rejected.
func NewLinear(terms map[ommx.VariableID]float64, constant float64) (Linear, error) {
	if !isFinite(constant) {
		return Linear{}, &ommx.InvalidCoefficientError{Reason: "linear constant must be finite"}
	}
	out := make(map[ommx.VariableID]float64, len(terms))
	for id, c := range terms {
		if !isFinite(c) {
			return Linear{}, &ommx.InvalidCoefficientError{Reason: fmt.Sprintf("coefficient for variable %d must be finite", id)}
		}
		if c == 0 {
			continue
		}
		out[id] = c
	}
	return Linear{terms: out, constant: constant}, nil
}

// LinearFromConstant builds a constant Linear (0 terms).
func LinearFromConstant(c float64) Linear {
	return Linear{constant: c}
}

// LinearFromVariable builds the monomial 1*x_id.
func LinearFromVariable(id ommx.VariableID) Linear {
	return Linear{terms: map[ommx.VariableID]float64{id: 1}}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Constant returns the constant term.
func (l Linear) Constant() float64 { return l.constant }

// Terms returns a copy of the coefficient map, keyed by variable id.
func (l Linear) Terms() map[ommx.VariableID]float64 {
	out := make(map[ommx.VariableID]float64, len(l.terms))
	for k, v := range l.terms {
		out[k] = v
	}
	return out
}

// Coefficient returns the coefficient of id, or 0 if absent.
func (l Linear) Coefficient(id ommx.VariableID) float64 { return l.terms[id] }

// NumTerms returns the number of nonzero linear terms (excluding the
// constant).
func (l Linear) NumTerms() int { return len(l.terms) }

// Degree returns the polynomial degree: 1 if any term is present, else 0.
func (l Linear) Degree() int {
	if len(l.terms) == 0 {
		return 0
	}
	return 1
}

// RequiredIDs returns the sorted set of variable ids this linear expression
// depends on.
func (l Linear) RequiredIDs() []ommx.VariableID {
	ids := make([]ommx.VariableID, 0, len(l.terms))
	for id := range l.terms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Add returns l + other.
func (l Linear) Add(other Linear) Linear {
	out := make(map[ommx.VariableID]float64, len(l.terms)+len(other.terms))
	for id, c := range l.terms {
		out[id] = c
	}
	for id, c := range other.terms {
		out[id] += c
	}
	dropZeros(out)
	return Linear{terms: out, constant: l.constant + other.constant}
}

// Sub returns l - other.
func (l Linear) Sub(other Linear) Linear {
	return l.Add(other.ScalarMul(-1))
}

// ScalarMul returns l * k.
func (l Linear) ScalarMul(k float64) Linear {
	if k == 0 {
		return Linear{}
	}
	out := make(map[ommx.VariableID]float64, len(l.terms))
	for id, c := range l.terms {
		out[id] = c * k
	}
	return Linear{terms: out, constant: l.constant * k}
}

// AddAssign adds other into l in place.
func (l *Linear) AddAssign(other Linear) {
	if l.terms == nil {
		l.terms = make(map[ommx.VariableID]float64, len(other.terms))
	}
	for id, c := range other.terms {
		l.terms[id] += c
	}
	dropZeros(l.terms)
	l.constant += other.constant
}

func dropZeros(m map[ommx.VariableID]float64) {
	for id, c := range m {
		if c == 0 {
			delete(m, id)
		}
	}
}

// Evaluate substitutes state for every required id and returns the
// resulting value. It fails with MissingVariableError if state omits an id
// this expression depends on.
func (l Linear) Evaluate(state map[ommx.VariableID]float64) (float64, error) {
	sum := l.constant
	for id, c := range l.terms {
		v, ok := state[id]
		if !ok {
			return 0, &ommx.MissingVariableError{ID: id}
		}
		sum += c * v
	}
	return sum, nil
}

// PartialEvaluate substitutes only the ids present in state, returning a
// Linear over the remaining ids.
func (l Linear) PartialEvaluate(state map[ommx.VariableID]float64) Linear {
	out := make(map[ommx.VariableID]float64, len(l.terms))
	constant := l.constant
	for id, c := range l.terms {
		if v, ok := state[id]; ok {
			constant += c * v
			continue
		}
		out[id] = c
	}
	return Linear{terms: out, constant: constant}
}

// Equal reports exact equality (same nonzero terms, same constant).
func (l Linear) Equal(other Linear) bool {
	if l.constant != other.constant {
		return false
	}
	if len(l.terms) != len(other.terms) {
		return false
	}
	for id, c := range l.terms {
		if other.terms[id] != c {
			return false
		}
	}
	return true
}

// AlmostEqual reports equality up to atol per coefficient and the constant.
func (l Linear) AlmostEqual(other Linear, atol float64) bool {
	seen := make(map[ommx.VariableID]bool, len(l.terms))
	for id, c := range l.terms {
		seen[id] = true
		if math.Abs(c-other.terms[id]) > atol {
			return false
		}
	}
	for id, c := range other.terms {
		if seen[id] {
			continue
		}
		if math.Abs(c) > atol {
			return false
		}
	}
	return math.Abs(l.constant-other.constant) <= atol
}

// String renders a human-readable form for diagnostics, in ascending id
// order.
func (l Linear) String() string {
	if len(l.terms) == 0 {
		return fmt.Sprintf("%g", l.constant)
	}
	ids := l.RequiredIDs()
	s := ""
	for i, id := range ids {
		c := l.terms[id]
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%g*x%d", c, id)
	}
	if l.constant != 0 {
		s += fmt.Sprintf(" + %g", l.constant)
	}
	return s
}
