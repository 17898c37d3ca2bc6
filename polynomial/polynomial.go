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
	"strconv"
	"strings"

	"github.com/Jij-Inc/ommx-sub001"
)

// monomialKey canonically identifies a monomial by its sorted multiset of
// variable ids, joined into a comparable string. A fixed-size array can't
// represent an arbitrary-degree monomial, and a slice isn't a valid map
// key, so the sorted ids are encoded as a string instead.
type monomialKey string

func monomialKeyOf(ids []ommx.VariableID) monomialKey {
	sorted := append([]ommx.VariableID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return monomialKey(b.String())
}

type polyTerm struct {
	ids   []ommx.VariableID // sorted, may repeat (x*x means degree-2 in one variable)
	coeff float64
}

// Polynomial is a general multivariate polynomial of arbitrary degree,
// represented as a map from canonical monomial key to its term.
type Polynomial struct {
	terms map[monomialKey]polyTerm
}

// NewPolynomial builds a Polynomial from a set of monomials, each given as
// the list of variable ids it multiplies (with repeats for powers) and its
// coefficient. Zero coefficients are dropped.
func NewPolynomial(monomials map[string][]ommx.VariableID, coeffs map[string]float64) (Polynomial, error) {
	terms := make(map[monomialKey]polyTerm, len(monomials))
	for name, ids := range monomials {
		c := coeffs[name]
		if !isFinite(c) {
			return Polynomial{}, &ommx.InvalidCoefficientError{Reason: fmt.Sprintf("coefficient for monomial %v must be finite", ids)}
		}
		if c == 0 {
			continue
		}
		key := monomialKeyOf(ids)
		sorted := append([]ommx.VariableID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		if existing, ok := terms[key]; ok {
			terms[key] = polyTerm{ids: sorted, coeff: existing.coeff + c}
		} else {
			terms[key] = polyTerm{ids: sorted, coeff: c}
		}
	}
	for k, t := range terms {
		if t.coeff == 0 {
			delete(terms, k)
		}
	}
	return Polynomial{terms: terms}, nil
}

// NewMonomial builds a single-term Polynomial coeff * prod(ids).
func NewMonomial(ids []ommx.VariableID, coeff float64) Polynomial {
	if coeff == 0 {
		return Polynomial{}
	}
	sorted := append([]ommx.VariableID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Polynomial{terms: map[monomialKey]polyTerm{
		monomialKeyOf(sorted): {ids: sorted, coeff: coeff},
	}}
}

// FromLinear lifts a Linear to a Polynomial.
func FromLinear(l Linear) Polynomial {
	terms := make(map[monomialKey]polyTerm, len(l.terms)+1)
	for id, c := range l.terms {
		ids := []ommx.VariableID{id}
		terms[monomialKeyOf(ids)] = polyTerm{ids: ids, coeff: c}
	}
	if l.constant != 0 {
		terms[monomialKeyOf(nil)] = polyTerm{ids: nil, coeff: l.constant}
	}
	return Polynomial{terms: terms}
}

// FromQuadratic lifts a Quadratic to a Polynomial.
func FromQuadratic(q Quadratic) Polynomial {
	p := FromLinear(q.linear)
	for k, c := range q.terms {
		ids := []ommx.VariableID{k.A, k.B}
		p.terms[monomialKeyOf(ids)] = polyTerm{ids: ids, coeff: c}
	}
	return p
}

// NumTerms returns the number of nonzero monomials.
func (p Polynomial) NumTerms() int { return len(p.terms) }

// Degree returns the maximum monomial degree, or 0 for the zero polynomial.
func (p Polynomial) Degree() int {
	max := 0
	for _, t := range p.terms {
		if len(t.ids) > max {
			max = len(t.ids)
		}
	}
	return max
}

// RequiredIDs returns the sorted set of variable ids appearing in any
// monomial.
func (p Polynomial) RequiredIDs() []ommx.VariableID {
	set := make(map[ommx.VariableID]bool)
	for _, t := range p.terms {
		for _, id := range t.ids {
			set[id] = true
		}
	}
	ids := make([]ommx.VariableID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Monomials returns the variable ids of every monomial, in canonical
// ascending-key order; coefficients are not included (see Coefficient).
func (p Polynomial) Monomials() [][]ommx.VariableID {
	keys := p.sortedKeys()
	out := make([][]ommx.VariableID, len(keys))
	for i, k := range keys {
		out[i] = append([]ommx.VariableID(nil), p.terms[k].ids...)
	}
	return out
}

// Coefficient returns the coefficient attached to the monomial with the
// given (unsorted is fine) ids, or 0 if absent.
func (p Polynomial) Coefficient(ids []ommx.VariableID) float64 {
	return p.terms[monomialKeyOf(ids)].coeff
}

func (p Polynomial) sortedKeys() []monomialKey {
	keys := make([]monomialKey, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Add returns p + other.
func (p Polynomial) Add(other Polynomial) Polynomial {
	out := make(map[monomialKey]polyTerm, len(p.terms)+len(other.terms))
	for k, t := range p.terms {
		out[k] = t
	}
	for k, t := range other.terms {
		if existing, ok := out[k]; ok {
			out[k] = polyTerm{ids: t.ids, coeff: existing.coeff + t.coeff}
		} else {
			out[k] = t
		}
	}
	for k, t := range out {
		if t.coeff == 0 {
			delete(out, k)
		}
	}
	return Polynomial{terms: out}
}

// Sub returns p - other.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	return p.Add(other.ScalarMul(-1))
}

// ScalarMul returns p * k.
func (p Polynomial) ScalarMul(k float64) Polynomial {
	if k == 0 {
		return Polynomial{}
	}
	out := make(map[monomialKey]polyTerm, len(p.terms))
	for key, t := range p.terms {
		out[key] = polyTerm{ids: t.ids, coeff: t.coeff * k}
	}
	return Polynomial{terms: out}
}

// Mul returns p * other, the full polynomial product.
func (p Polynomial) Mul(other Polynomial) Polynomial {
	out := make(map[monomialKey]polyTerm)
	for _, a := range p.terms {
		for _, b := range other.terms {
			ids := make([]ommx.VariableID, 0, len(a.ids)+len(b.ids))
			ids = append(ids, a.ids...)
			ids = append(ids, b.ids...)
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			key := monomialKeyOf(ids)
			if existing, ok := out[key]; ok {
				out[key] = polyTerm{ids: ids, coeff: existing.coeff + a.coeff*b.coeff}
			} else {
				out[key] = polyTerm{ids: ids, coeff: a.coeff * b.coeff}
			}
		}
	}
	for k, t := range out {
		if t.coeff == 0 {
			delete(out, k)
		}
	}
	return Polynomial{terms: out}
}

// ReduceBinaryPower collapses any run of repeated ids in a monomial down to
// a single occurrence, valid when every variable referenced is known
// binary (x^n == x for x in {0,1}, n>=1). Monomials that collapse to the
// same reduced key are summed. It is idempotent: applying it twice yields
// the same result as applying it once.
func (p Polynomial) ReduceBinaryPower() Polynomial {
	out := make(map[monomialKey]polyTerm, len(p.terms))
	for _, t := range p.terms {
		reduced := dedupSorted(t.ids)
		key := monomialKeyOf(reduced)
		if existing, ok := out[key]; ok {
			out[key] = polyTerm{ids: reduced, coeff: existing.coeff + t.coeff}
		} else {
			out[key] = polyTerm{ids: reduced, coeff: t.coeff}
		}
	}
	for k, t := range out {
		if t.coeff == 0 {
			delete(out, k)
		}
	}
	return Polynomial{terms: out}
}

func dedupSorted(ids []ommx.VariableID) []ommx.VariableID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]ommx.VariableID, 0, len(ids))
	out = append(out, ids[0])
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Evaluate substitutes state for every required id.
func (p Polynomial) Evaluate(state map[ommx.VariableID]float64) (float64, error) {
	sum := 0.0
	for _, t := range p.terms {
		term := t.coeff
		for _, id := range t.ids {
			v, ok := state[id]
			if !ok {
				return 0, &ommx.MissingVariableError{ID: id}
			}
			term *= v
		}
		sum += term
	}
	return sum, nil
}

// PartialEvaluate substitutes only the ids present in state.
func (p Polynomial) PartialEvaluate(state map[ommx.VariableID]float64) Polynomial {
	out := make(map[monomialKey]polyTerm, len(p.terms))
	for _, t := range p.terms {
		coeff := t.coeff
		var remaining []ommx.VariableID
		for _, id := range t.ids {
			if v, ok := state[id]; ok {
				coeff *= v
				continue
			}
			remaining = append(remaining, id)
		}
		if coeff == 0 {
			continue
		}
		key := monomialKeyOf(remaining)
		if existing, ok := out[key]; ok {
			out[key] = polyTerm{ids: remaining, coeff: existing.coeff + coeff}
		} else {
			out[key] = polyTerm{ids: remaining, coeff: coeff}
		}
	}
	for k, t := range out {
		if t.coeff == 0 {
			delete(out, k)
		}
	}
	return Polynomial{terms: out}
}

// AsLinear reports whether p has degree <= 1 and, if so, returns the
// equivalent Linear.
func (p Polynomial) AsLinear() (Linear, bool) {
	if p.Degree() > 1 {
		return Linear{}, false
	}
	terms := make(map[ommx.VariableID]float64)
	constant := 0.0
	for _, t := range p.terms {
		switch len(t.ids) {
		case 0:
			constant += t.coeff
		case 1:
			terms[t.ids[0]] += t.coeff
		}
	}
	l, _ := NewLinear(terms, constant)
	return l, true
}

// AsQuadratic reports whether p has degree <= 2 and, if so, returns the
// equivalent Quadratic.
func (p Polynomial) AsQuadratic() (Quadratic, bool) {
	if p.Degree() > 2 {
		return Quadratic{}, false
	}
	pairs := make(map[pairKey]float64)
	linTerms := make(map[ommx.VariableID]float64)
	constant := 0.0
	for _, t := range p.terms {
		switch len(t.ids) {
		case 0:
			constant += t.coeff
		case 1:
			linTerms[t.ids[0]] += t.coeff
		case 2:
			pairs[newPairKey(t.ids[0], t.ids[1])] += t.coeff
		}
	}
	lin, _ := NewLinear(linTerms, constant)
	q, _ := NewQuadratic(pairs, lin)
	return q, true
}

// Equal reports exact equality.
func (p Polynomial) Equal(other Polynomial) bool {
	if len(p.terms) != len(other.terms) {
		return false
	}
	for k, t := range p.terms {
		ot, ok := other.terms[k]
		if !ok || ot.coeff != t.coeff {
			return false
		}
	}
	return true
}

// AlmostEqual reports equality up to atol per coefficient.
func (p Polynomial) AlmostEqual(other Polynomial, atol float64) bool {
	seen := make(map[monomialKey]bool, len(p.terms))
	for k, t := range p.terms {
		seen[k] = true
		if math.Abs(t.coeff-other.terms[k].coeff) > atol {
			return false
		}
	}
	for k, t := range other.terms {
		if seen[k] {
			continue
		}
		if math.Abs(t.coeff) > atol {
			return false
		}
	}
	return true
}

// String renders a human-readable form for diagnostics, in canonical
// ascending monomial-key order.
func (p Polynomial) String() string {
	keys := p.sortedKeys()
	if len(keys) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, k := range keys {
		t := p.terms[k]
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(fmt.Sprintf("%g", t.coeff))
		for _, id := range t.ids {
			b.WriteString(fmt.Sprintf("*x%d", id))
		}
	}
	return b.String()
}
