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
)

// PairID identifies a QUBO term coeff*x_a*x_b with a <= b; a == b is a
// linear term x_a^2 = x_a for binary x_a.
type PairID struct{ A, B ommx.VariableID }

// AsQuboFormat projects inst's objective onto a QUBO (quadratic unconstrained
// binary optimization) map, failing with QuboRequiresBinaryError if any
// variable used by the objective is not Binary, or DegreeTooHighForQuboError
// if the objective's degree exceeds 2 after reduce_binary_power. inst must
// already have no remaining constraints; the caller is expected to have run
// a reformulation pipeline (log_encode, slack/penalty, ReduceBinaryPower)
// first, see ToQubo.
func AsQuboFormat(inst *instance.Instance) (terms map[PairID]float64, offset float64, err error) {
	reduced := inst.Objective().ReduceBinaryPower()
	for _, id := range reduced.RequiredIDs() {
		v, err := inst.DecisionVariable(id)
		if err != nil {
			return nil, 0, err
		}
		if v.Kind() != ommx.Binary {
			return nil, 0, &ommx.QuboRequiresBinaryError{ID: id}
		}
	}
	if reduced.Degree() > 2 {
		return nil, 0, &ommx.DegreeTooHighForQuboError{Degree: reduced.Degree()}
	}

	quad, _ := reduced.AsQuadratic()
	terms = make(map[PairID]float64, quad.NumTerms()+quad.Linear().NumTerms())
	for k, coeff := range quad.Pairs() {
		a, b := k.IDs()
		terms[PairID{A: a, B: b}] += coeff
	}
	for id, coeff := range quad.Linear().Terms() {
		terms[PairID{A: id, B: id}] += coeff
	}
	return terms, quad.Linear().Constant(), nil
}

// AsHuboFormat projects inst's objective onto a HUBO (higher-order
// unconstrained binary optimization) map keyed by the sorted, deduplicated
// variable ids of each monomial, without AsQuboFormat's degree-2 ceiling.
// Still requires every used variable to be Binary.
func AsHuboFormat(inst *instance.Instance) (terms map[string][]ommx.VariableID, coefficients map[string]float64, offset float64, err error) {
	reduced := inst.Objective().ReduceBinaryPower()
	for _, id := range reduced.RequiredIDs() {
		v, err := inst.DecisionVariable(id)
		if err != nil {
			return nil, nil, 0, err
		}
		if v.Kind() != ommx.Binary {
			return nil, nil, 0, &ommx.QuboRequiresBinaryError{ID: id}
		}
	}

	poly := reduced.AsPolynomial()
	terms = map[string][]ommx.VariableID{}
	coefficients = map[string]float64{}
	for _, ids := range poly.Monomials() {
		if len(ids) == 0 {
			offset += poly.Coefficient(ids)
			continue
		}
		key := huboKey(ids)
		terms[key] = ids
		coefficients[key] += poly.Coefficient(ids)
	}
	return terms, coefficients, offset, nil
}

func huboKey(ids []ommx.VariableID) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += strconv.FormatUint(uint64(id), 10)
	}
	return s
}

// QuboOptions configures ToQubo's reformulation pipeline.
type QuboOptions struct {
	// MaxIntegerRange bounds the integer slack introduced when an
	// inequality is converted to an equality; if exceeded the constraint
	// falls back to UniformPenaltyMethod instead. Zero means unlimited.
	MaxIntegerRange int64
	// PenaltyWeight is passed to UniformPenaltyMethod; zero uses its
	// documented default of 1.0.
	PenaltyWeight float64
}

// ToQubo runs the full reformulation pipeline for projecting an arbitrary
// instance onto QUBO form: log-encode every
// remaining integer variable, reformulate each inequality into an
// equality with an integer slack where the slack range permits, fold
// every remaining constraint (equalities, and any inequality whose slack
// range was too large to convert) into the objective via
// uniform_penalty_method, and finally project with AsQuboFormat, which
// applies reduce_binary_power itself. inst is mutated in place; on error
// it may be partially reformulated, unlike the single-step transformations
// which are atomic.
func ToQubo(inst *instance.Instance, gen *ommx.IDGenerator, opts QuboOptions) (terms map[PairID]float64, offset float64, err error) {
	if err := reformulateForBinaryProjection(inst, gen, opts); err != nil {
		return nil, 0, err
	}
	terms, offset, err = AsQuboFormat(inst)
	if err != nil {
		return nil, 0, err
	}
	ommx.Logger().Info("to_qubo", zap.Int("terms", len(terms)))
	return terms, offset, nil
}

// ToHubo is ToQubo's higher-order counterpart, stopping short of
// AsQuboFormat's degree-2 requirement.
func ToHubo(inst *instance.Instance, gen *ommx.IDGenerator, opts QuboOptions) (terms map[string][]ommx.VariableID, coefficients map[string]float64, offset float64, err error) {
	if err := reformulateForBinaryProjection(inst, gen, opts); err != nil {
		return nil, nil, 0, err
	}
	terms, coefficients, offset, err = AsHuboFormat(inst)
	if err != nil {
		return nil, nil, 0, err
	}
	ommx.Logger().Info("to_hubo", zap.Int("terms", len(terms)))
	return terms, coefficients, offset, nil
}

func reformulateForBinaryProjection(inst *instance.Instance, gen *ommx.IDGenerator, opts QuboOptions) error {
	if err := logEncodeAllIntegers(inst, gen); err != nil {
		return err
	}

	maxRange := opts.MaxIntegerRange
	if maxRange <= 0 {
		maxRange = math.MaxInt64
	}
	for _, c := range inst.Constraints() {
		if c.Equality() != ommx.LeqZero {
			continue
		}
		if err := ConvertInequalityToEqualityWithIntegerSlack(inst, gen, c.ID(), maxRange); err != nil {
			if _, tooLarge := err.(*ommx.SlackRangeTooLargeError); !tooLarge {
				return err
			}
			continue
		}
	}

	// The slack variables just introduced are Integer, not Binary; encode
	// them too before the penalty fold and the final AsQuboFormat check.
	if err := logEncodeAllIntegers(inst, gen); err != nil {
		return err
	}

	if err := UniformPenaltyMethod(inst, opts.PenaltyWeight); err != nil {
		return err
	}

	return nil
}

func logEncodeAllIntegers(inst *instance.Instance, gen *ommx.IDGenerator) error {
	var integerIDs []ommx.VariableID
	for _, v := range inst.DecisionVariables() {
		if v.Kind() == ommx.Integer {
			integerIDs = append(integerIDs, v.ID())
		}
	}
	if len(integerIDs) == 0 {
		return nil
	}
	return LogEncode(inst, gen, integerIDs)
}
