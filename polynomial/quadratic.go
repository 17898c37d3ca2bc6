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
	"fmt"
	"math"
	"sort"

	"github.com/Jij-Inc/ommx-sub001"
)

// pairKey canonicalizes an unordered pair of variable ids as (min, max) so
// x_i*x_j and x_j*x_i collide in the term map.
type pairKey struct {
	A, B ommx.VariableID
}

func newPairKey(a, b ommx.VariableID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// Quadratic is a second-degree polynomial: a weighted sum of variable
// pairs, plus a linear part.
type Quadratic struct {
	terms  map[pairKey]float64
	linear Linear
}

// NewQuadratic builds a Quadratic from pairwise coefficients and a linear
// remainder. Zero coefficients are dropped; non-finite ones are rejected.
func NewQuadratic(pairs map[pairKey]float64, linear Linear) (Quadratic, error) {
	out := make(map[pairKey]float64, len(pairs))
	for k, c := range pairs {
		if !isFinite(c) {
			return Quadratic{}, &ommx.InvalidCoefficientError{Reason: fmt.Sprintf("coefficient for pair (%d,%d) must be finite", k.A, k.B)}
		}
		if c == 0 {
			continue
		}
		out[newPairKey(k.A, k.B)] = c
	}
	return Quadratic{terms: out, linear: linear}, nil
}

// NewQuadraticTerm builds a single monomial coeff*x_a*x_b (a==b gives a
// squared term), with zero linear part.
func NewQuadraticTerm(a, b ommx.VariableID, coeff float64) Quadratic {
	if coeff == 0 {
		return Quadratic{}
	}
	return Quadratic{terms: map[pairKey]float64{newPairKey(a, b): coeff}}
}

// Linear returns the linear (and constant) remainder.
func (q Quadratic) Linear() Linear { return q.linear }

// Pairs returns a copy of the pairwise coefficient map.
func (q Quadratic) Pairs() map[pairKey]float64 {
	out := make(map[pairKey]float64, len(q.terms))
	for k, v := range q.terms {
		out[k] = v
	}
	return out
}

// IDs exposes a pairKey's two (already-canonicalized) ids.
func (k pairKey) IDs() (ommx.VariableID, ommx.VariableID) { return k.A, k.B }

// NumTerms returns the number of nonzero quadratic terms (excludes the
// linear part).
func (q Quadratic) NumTerms() int { return len(q.terms) }

// Degree returns 2 if any quadratic term is present, else the linear
// part's degree.
func (q Quadratic) Degree() int {
	if len(q.terms) > 0 {
		return 2
	}
	return q.linear.Degree()
}

// RequiredIDs returns the sorted set of all variable ids this expression
// depends on, quadratic and linear combined.
func (q Quadratic) RequiredIDs() []ommx.VariableID {
	set := make(map[ommx.VariableID]bool)
	for k := range q.terms {
		set[k.A] = true
		set[k.B] = true
	}
	for _, id := range q.linear.RequiredIDs() {
		set[id] = true
	}
	ids := make([]ommx.VariableID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Add returns q + other.
func (q Quadratic) Add(other Quadratic) Quadratic {
	out := make(map[pairKey]float64, len(q.terms)+len(other.terms))
	for k, c := range q.terms {
		out[k] = c
	}
	for k, c := range other.terms {
		out[k] += c
	}
	dropZeroPairs(out)
	return Quadratic{terms: out, linear: q.linear.Add(other.linear)}
}

// Sub returns q - other.
func (q Quadratic) Sub(other Quadratic) Quadratic {
	return q.Add(other.ScalarMul(-1))
}

// ScalarMul returns q * k.
func (q Quadratic) ScalarMul(k float64) Quadratic {
	if k == 0 {
		return Quadratic{}
	}
	out := make(map[pairKey]float64, len(q.terms))
	for p, c := range q.terms {
		out[p] = c * k
	}
	return Quadratic{terms: out, linear: q.linear.ScalarMul(k)}
}

// AddLinear adds a Linear into q, folding it into the linear part.
func (q Quadratic) AddLinear(l Linear) Quadratic {
	return Quadratic{terms: q.terms, linear: q.linear.Add(l)}
}

// MulLinear multiplies two Linear expressions into a Quadratic.
func MulLinear(a, b Linear) Quadratic {
	terms := make(map[pairKey]float64)
	for ai, ac := range a.terms {
		for bi, bc := range b.terms {
			terms[newPairKey(ai, bi)] += ac * bc
		}
	}
	// cross terms with the other's constant contribute to the linear part
	l1 := make(map[ommx.VariableID]float64, len(a.terms))
	for ai, ac := range a.terms {
		l1[ai] = ac * b.constant
	}
	l2 := make(map[ommx.VariableID]float64, len(b.terms))
	for bi, bc := range b.terms {
		l2[bi] += bc * a.constant
	}
	linear, _ := NewLinear(l1, a.constant*b.constant)
	rest, _ := NewLinear(l2, 0)
	dropZeroPairs(terms)
	return Quadratic{terms: terms, linear: linear.Add(rest)}
}

func dropZeroPairs(m map[pairKey]float64) {
	for k, c := range m {
		if c == 0 {
			delete(m, k)
		}
	}
}

// Evaluate substitutes state for every required id.
func (q Quadratic) Evaluate(state map[ommx.VariableID]float64) (float64, error) {
	sum, err := q.linear.Evaluate(state)
	if err != nil {
		return 0, err
	}
	for k, c := range q.terms {
		va, ok := state[k.A]
		if !ok {
			return 0, &ommx.MissingVariableError{ID: k.A}
		}
		vb, ok := state[k.B]
		if !ok {
			return 0, &ommx.MissingVariableError{ID: k.B}
		}
		sum += c * va * vb
	}
	return sum, nil
}

// PartialEvaluate substitutes only the ids present in state.
func (q Quadratic) PartialEvaluate(state map[ommx.VariableID]float64) Quadratic {
	terms := make(map[pairKey]float64, len(q.terms))
	extraLinear := make(map[ommx.VariableID]float64)
	extraConst := 0.0
	for k, c := range q.terms {
		va, aok := state[k.A]
		vb, bok := state[k.B]
		switch {
		case aok && bok:
			extraConst += c * va * vb
		case aok && !bok:
			extraLinear[k.B] += c * va
		case !aok && bok:
			extraLinear[k.A] += c * vb
		default:
			terms[newPairKey(k.A, k.B)] += c
		}
	}
	dropZeroPairs(terms)
	lin := q.linear.PartialEvaluate(state)
	add, _ := NewLinear(extraLinear, extraConst)
	return Quadratic{terms: terms, linear: lin.Add(add)}
}

// Equal reports exact equality.
func (q Quadratic) Equal(other Quadratic) bool {
	if !q.linear.Equal(other.linear) {
		return false
	}
	if len(q.terms) != len(other.terms) {
		return false
	}
	for k, c := range q.terms {
		if other.terms[k] != c {
			return false
		}
	}
	return true
}

// AlmostEqual reports equality up to atol.
func (q Quadratic) AlmostEqual(other Quadratic, atol float64) bool {
	if !q.linear.AlmostEqual(other.linear, atol) {
		return false
	}
	seen := make(map[pairKey]bool, len(q.terms))
	for k, c := range q.terms {
		seen[k] = true
		if math.Abs(c-other.terms[k]) > atol {
			return false
		}
	}
	for k, c := range other.terms {
		if seen[k] {
			continue
		}
		if math.Abs(c) > atol {
			return false
		}
	}
	return true
}

// String renders a human-readable form for diagnostics.
func (q Quadratic) String() string {
	keys := make([]pairKey, 0, len(q.terms))
	for k := range q.terms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%g*x%d*x%d", q.terms[k], k.A, k.B)
	}
	lin := q.linear.String()
	if lin != "0" {
		if s != "" {
			s += " + "
		}
		s += lin
	}
	if s == "" {
		return "0"
	}
	return s
}
