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
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// ConvertInequalityToEqualityWithIntegerSlack rewrites the inequality
// constraint f(x) <= 0 identified by id into the equality a*f(x) + s = 0,
// where a is the reciprocal of f's coefficient content (so a*f has integer
// coefficients) and s is a fresh integer slack bounded by [0, S]. S is
// derived from an interval enclosure of a*f's range; if that exceeds
// maxIntegerRange the constraint is left untouched and
// SlackRangeTooLargeError is returned. An equality constraint is already
// in the required form and is left untouched.
func ConvertInequalityToEqualityWithIntegerSlack(inst *instance.Instance, gen *ommx.IDGenerator, id ommx.ConstraintID, maxIntegerRange int64) error {
	c, err := inst.Constraint(id)
	if err != nil {
		return err
	}
	if c.Equality() == ommx.EqZero {
		return nil
	}

	coeffs := c.Function().AsPolynomial()
	content := polynomial.ContentFactor(collectCoefficients(coeffs))
	if content == 0 {
		content = 1
	}
	a := 1 / content
	scaled := c.Function().ScalarMul(a)

	// f(x) <= 0 becomes f(x) + s = 0 for a slack s = -f(x) >= 0; s's range
	// is therefore [0, -lower_bound(f)].
	bounds := inst.Bounds()
	lower, err := LowerBound(scaled, bounds)
	if err != nil {
		return err
	}
	if math.IsInf(lower, -1) {
		return &ommx.SlackRangeTooLargeError{Range: math.MaxInt64, Max: maxIntegerRange}
	}
	s := int64(math.Ceil(-lower))
	if s < 0 {
		s = 0
	}
	if s > maxIntegerRange {
		return &ommx.SlackRangeTooLargeError{Range: s, Max: maxIntegerRange}
	}

	slackBound, err := ommx.NewBound(0, float64(s))
	if err != nil {
		return err
	}
	slackVar, err := instance.Integer(gen.NextVariableID(), slackBound)
	if err != nil {
		return err
	}
	if err := inst.AddVariable(slackVar); err != nil {
		return err
	}

	newFunction := scaled.Add(polynomial.FunctionFromVariable(slackVar.ID()))
	rewritten := c.WithFunction(newFunction).WithEquality(ommx.EqZero).
		AddParameter("ommx.slack_content_scale", strconv.FormatFloat(a, 'g', -1, 64))
	if err := inst.ReplaceConstraint(rewritten); err != nil {
		return err
	}

	ommx.Logger().Info("convert_inequality_to_equality_with_integer_slack",
		zap.Uint64("constraint_id", uint64(id)),
		zap.Int64("slack_upper_bound", s),
	)
	return nil
}

// AddIntegerSlackToInequality tightens f(x) <= 0 into f(x) + b*s <= 0 for a
// fresh integer slack s in [0, slackUpperBound] and some b > 0 chosen so
// the tightened region still contains the original feasible region. If no
// positive b keeps the constraint meaningful (f's range has no slack to
// give, e.g. the constraint is already tight at its interval upper bound),
// returns ok=false and leaves the instance unchanged.
func AddIntegerSlackToInequality(inst *instance.Instance, gen *ommx.IDGenerator, id ommx.ConstraintID, slackUpperBound int64) (b float64, ok bool, err error) {
	c, err := inst.Constraint(id)
	if err != nil {
		return 0, false, err
	}
	if c.Equality() != ommx.LeqZero {
		return 0, false, nil
	}
	if slackUpperBound <= 0 {
		return 0, false, nil
	}

	bounds := inst.Bounds()
	upper, err := UpperBound(c.Function(), bounds)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(upper, 1) || upper <= 0 {
		return 0, false, nil
	}
	b = upper / float64(slackUpperBound)

	slackBound, err := ommx.NewBound(0, float64(slackUpperBound))
	if err != nil {
		return 0, false, err
	}
	slackVar, err := instance.Integer(gen.NextVariableID(), slackBound)
	if err != nil {
		return 0, false, err
	}
	if err := inst.AddVariable(slackVar); err != nil {
		return 0, false, err
	}

	newFunction := c.Function().Add(polynomial.FunctionFromVariable(slackVar.ID()).ScalarMul(b))
	if err := inst.ReplaceConstraint(c.WithFunction(newFunction)); err != nil {
		return 0, false, err
	}
	ommx.Logger().Info("add_integer_slack_to_inequality",
		zap.Uint64("constraint_id", uint64(id)),
		zap.Float64("b", b),
	)
	return b, true, nil
}

func collectCoefficients(p polynomial.Polynomial) []float64 {
	out := make([]float64, 0, p.NumTerms())
	for _, ids := range p.Monomials() {
		out = append(out, p.Coefficient(ids))
	}
	return out
}
