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

package interop

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// LoadQPLIB reads a QPLIB-format file: a name, a problem-type code, a
// sense, variable/constraint counts, then the objective (quadratic terms,
// linear terms, constant), each constraint in the same shape plus a
// [lower, upper] range, variable bounds, and a per-variable kind letter
// (C/B/I). Everything after that (starting-point data) is ignored.
func LoadQPLIB(path string) (*instance.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ommx.IoError{Context: "opening QPLIB file", Err: errors.WithStack(err)}
	}
	defer f.Close()

	tok := newQPLIBTokenizer(f)
	return parseQPLIB(tok)
}

// qplibTokenizer reads whitespace-separated tokens across lines, which is
// all a QPLIB file's free-form records need: each "line" in the textual
// spec is really just the next run of tokens, and comment annotations
// after the data on a line are untokenized trailing text.
type qplibTokenizer struct {
	scanner *bufio.Scanner
	pending []string
}

func newQPLIBTokenizer(r io.Reader) *qplibTokenizer {
	return &qplibTokenizer{scanner: bufio.NewScanner(r)}
}

func (t *qplibTokenizer) next() (string, error) {
	for len(t.pending) == 0 {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", &ommx.IoError{Context: "reading QPLIB file", Err: errors.WithStack(err)}
			}
			return "", io.EOF
		}
		t.pending = strings.Fields(t.scanner.Text())
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, nil
}

func (t *qplibTokenizer) int() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ommx.DecodeError{Path: "QPLIB", Reason: "expected an integer, got " + s, Err: errors.WithStack(err)}
	}
	return v, nil
}

func (t *qplibTokenizer) float() (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ommx.DecodeError{Path: "QPLIB", Reason: "expected a number, got " + s, Err: errors.WithStack(err)}
	}
	return v, nil
}

func parseQPLIB(t *qplibTokenizer) (*instance.Instance, error) {
	if _, err := t.next(); err != nil { // problem name, unused
		return nil, err
	}
	if _, err := t.next(); err != nil { // problem type code (QP, QCQP, ...), unused beyond informing the reader
		return nil, err
	}
	senseTok, err := t.next()
	if err != nil {
		return nil, err
	}
	sense := ommx.Minimize
	if strings.EqualFold(senseTok, "maximize") || strings.EqualFold(senseTok, "max") {
		sense = ommx.Maximize
	}

	numVars, err := t.int()
	if err != nil {
		return nil, err
	}
	numCons, err := t.int()
	if err != nil {
		return nil, err
	}

	objQuad, objLinear, objConstant, err := readQPLIBExpression(t)
	if err != nil {
		return nil, err
	}
	objective := polynomial.FunctionFromQuadratic(objQuad.AddLinear(objLinear).AddLinear(polynomial.LinearFromConstant(objConstant)))

	constraints := make([]instance.Constraint, 0, numCons)
	nextConstraintID := ommx.ConstraintID(1)
	for i := 0; i < numCons; i++ {
		quad, linear, constant, err := readQPLIBExpression(t)
		if err != nil {
			return nil, err
		}
		lower, err := t.float()
		if err != nil {
			return nil, err
		}
		upper, err := t.float()
		if err != nil {
			return nil, err
		}
		expr := quad.AddLinear(linear)
		built, err := buildQPLIBConstraints(&nextConstraintID, expr, constant, lower, upper)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, built...)
	}

	vars, err := readQPLIBVariables(t, numVars)
	if err != nil {
		return nil, err
	}

	return instance.FromComponents(sense, objective, vars, constraints, "", instance.ConstraintHints{})
}

// readQPLIBExpression reads one (quadratic terms, linear terms, constant)
// record: a count of quadratic (row, col, value) triples (1-indexed,
// row<=col), then a count of linear (index, value) pairs, then the
// constant.
func readQPLIBExpression(t *qplibTokenizer) (polynomial.Quadratic, polynomial.Linear, float64, error) {
	numQuad, err := t.int()
	if err != nil {
		return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
	}
	quad := polynomial.Quadratic{}
	for i := 0; i < numQuad; i++ {
		row, err := t.int()
		if err != nil {
			return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
		}
		col, err := t.int()
		if err != nil {
			return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
		}
		value, err := t.float()
		if err != nil {
			return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
		}
		quad = quad.Add(polynomial.NewQuadraticTerm(ommx.VariableID(row), ommx.VariableID(col), value))
	}

	numLinear, err := t.int()
	if err != nil {
		return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
	}
	terms := make(map[ommx.VariableID]float64, numLinear)
	for i := 0; i < numLinear; i++ {
		idx, err := t.int()
		if err != nil {
			return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
		}
		value, err := t.float()
		if err != nil {
			return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
		}
		terms[ommx.VariableID(idx)] = value
	}

	constant, err := t.float()
	if err != nil {
		return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
	}
	linear, err := polynomial.NewLinear(terms, 0)
	if err != nil {
		return polynomial.Quadratic{}, polynomial.Linear{}, 0, err
	}
	return quad, linear, constant, nil
}

// buildQPLIBConstraints turns a [lower, upper] ranged expression into this
// engine's LeqZero-only form, splitting into two constraints when both
// sides are finite and distinct. nextID is advanced past every constraint
// it assigns, so IDs stay unique across the full set of QPLIB records even
// when some split into two and others into one.
func buildQPLIBConstraints(nextID *ommx.ConstraintID, expr polynomial.Quadratic, constant, lower, upper float64) ([]instance.Constraint, error) {
	var out []instance.Constraint
	if lower == upper {
		f := polynomial.FunctionFromQuadratic(expr.AddLinear(polynomial.LinearFromConstant(constant - lower)))
		id := *nextID
		*nextID++
		out = append(out, instance.NewConstraint(id, f, ommx.EqZero))
		return out, nil
	}
	if !posInfinite(upper) {
		f := polynomial.FunctionFromQuadratic(expr.AddLinear(polynomial.LinearFromConstant(constant - upper)))
		id := *nextID
		*nextID++
		out = append(out, instance.NewConstraint(id, f, ommx.LeqZero))
	}
	if !negInfinite(lower) {
		negated := expr.ScalarMul(-1)
		f := polynomial.FunctionFromQuadratic(negated.AddLinear(polynomial.LinearFromConstant(lower - constant)))
		id := *nextID
		*nextID++
		out = append(out, instance.NewConstraint(id, f, ommx.LeqZero))
	}
	return out, nil
}

func negInfinite(v float64) bool { return v <= -1e20 }
func posInfinite(v float64) bool { return v >= 1e20 }

func readQPLIBVariables(t *qplibTokenizer, numVars int) ([]instance.DecisionVariable, error) {
	lowers := make([]float64, numVars)
	uppers := make([]float64, numVars)
	for i := 0; i < numVars; i++ {
		v, err := t.float()
		if err != nil {
			return nil, err
		}
		lowers[i] = v
	}
	for i := 0; i < numVars; i++ {
		v, err := t.float()
		if err != nil {
			return nil, err
		}
		uppers[i] = v
	}

	vars := make([]instance.DecisionVariable, 0, numVars)
	for i := 0; i < numVars; i++ {
		kindTok, err := t.next()
		if err != nil {
			return nil, err
		}
		id := ommx.VariableID(i + 1)
		lower, upper := lowers[i], uppers[i]
		if negInfinite(lower) {
			lower = negInf
		}
		if posInfinite(upper) {
			upper = posInf
		}

		switch strings.ToUpper(kindTok) {
		case "B":
			vars = append(vars, instance.Binary(id))
		case "I":
			bound, err := ommx.NewBound(lower, upper)
			if err != nil {
				return nil, err
			}
			v, err := instance.Integer(id, bound)
			if err != nil {
				return nil, err
			}
			vars = append(vars, v)
		default:
			bound, err := ommx.NewBound(lower, upper)
			if err != nil {
				return nil, err
			}
			v, err := instance.ContinuousVar(id, bound)
			if err != nil {
				return nil, err
			}
			vars = append(vars, v)
		}
	}
	return vars, nil
}
