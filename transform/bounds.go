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

// Package transform implements reformulation passes over an instance.Instance:
// relaxation/restoration (the mutating half lives on Instance itself, see
// instance.RelaxConstraint), log-encoding, inequality-to-equality conversion,
// penalty methods, and the QUBO/HUBO projection and driver.
package transform

import (
	"math"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// interval is a closed real interval used for bound propagation.
type interval struct{ lo, hi float64 }

func pointInterval(v float64) interval { return interval{v, v} }

func (a interval) mul(b interval) interval {
	candidates := [4]float64{a.lo * b.lo, a.lo * b.hi, a.hi * b.lo, a.hi * b.hi}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return interval{lo, hi}
}

func (a interval) add(b interval) interval {
	return interval{a.lo + b.lo, a.hi + b.hi}
}

func (a interval) scale(k float64) interval {
	if k >= 0 {
		return interval{a.lo * k, a.hi * k}
	}
	return interval{a.hi * k, a.lo * k}
}

// evaluateInterval computes a conservative enclosure of f's range given an
// interval for every variable it depends on. Monomials are bounded by
// repeated interval multiplication of each factor's interval; this is not
// tight when the same variable appears more than once in a monomial (it
// doesn't account for the correlation between the two occurrences), but it
// is a sound over-approximation, which is all the slack-sizing and
// tightening transforms need.
func evaluateInterval(f polynomial.Function, bounds map[ommx.VariableID]ommx.Bound) (interval, error) {
	poly := f.AsPolynomial()
	total := interval{0, 0}
	for _, ids := range poly.Monomials() {
		coeff := poly.Coefficient(ids)
		term := interval{1, 1}
		for _, id := range ids {
			b, ok := bounds[id]
			if !ok {
				return interval{}, &ommx.UnknownVariableError{ID: id}
			}
			term = term.mul(interval{b.Lower, b.Upper})
		}
		total = total.add(term.scale(coeff))
	}
	return total, nil
}

// UpperBound returns a conservative upper bound on f's value over the
// given variable bounds, or +Inf if any contributing variable is
// unbounded above (the caller is expected to treat +Inf as "no usable
// bound", e.g. by failing with SlackRangeTooLargeError).
func UpperBound(f polynomial.Function, bounds map[ommx.VariableID]ommx.Bound) (float64, error) {
	iv, err := evaluateInterval(f, bounds)
	if err != nil {
		return 0, err
	}
	if math.IsInf(iv.hi, 1) {
		return math.Inf(1), nil
	}
	return iv.hi, nil
}

// LowerBound returns a conservative lower bound on f's value over the
// given variable bounds, or -Inf if any contributing variable is
// unbounded below.
func LowerBound(f polynomial.Function, bounds map[ommx.VariableID]ommx.Bound) (float64, error) {
	iv, err := evaluateInterval(f, bounds)
	if err != nil {
		return 0, err
	}
	if math.IsInf(iv.lo, -1) {
		return math.Inf(-1), nil
	}
	return iv.lo, nil
}
