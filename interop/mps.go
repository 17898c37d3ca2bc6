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

// Package interop implements free-form MPS and QPLIB readers/writers that
// load and save an instance.Instance from byte streams, independent of the
// in-memory engine's own wire codec.
package interop

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

type mpsRowKind byte

const (
	rowObjective mpsRowKind = 'N'
	rowLeq       mpsRowKind = 'L'
	rowGeq       mpsRowKind = 'G'
	rowEq        mpsRowKind = 'E'
)

type mpsModel struct {
	objectiveRow string
	rows         []string // constraint row names, in first-seen order
	rowKind      map[string]mpsRowKind
	columns      []string // variable names, in first-seen order
	columnSeen   map[string]bool
	objective    map[string]float64            // column -> coeff
	rowCoeffs    map[string]map[string]float64 // row -> column -> coeff
	rhs          map[string]float64
	ranges       map[string]float64
	lower        map[string]float64
	upper        map[string]float64
	integer      map[string]bool
	binary       map[string]bool
}

func newMPSModel() *mpsModel {
	return &mpsModel{
		rowKind:    map[string]mpsRowKind{},
		columnSeen: map[string]bool{},
		objective:  map[string]float64{},
		rowCoeffs:  map[string]map[string]float64{},
		rhs:        map[string]float64{},
		ranges:     map[string]float64{},
		lower:      map[string]float64{},
		upper:      map[string]float64{},
		integer:    map[string]bool{},
		binary:     map[string]bool{},
	}
}

// LoadMPS reads a free-form MPS file at path and builds an Instance. Rows
// are linear: row type N is the objective (only the first is used, later
// N rows are free rows and are dropped), L/G/E become a LeqZero or EqZero
// Constraint. A RANGES entry on a row splits it into two Constraints
// bounding the expression on both sides.
func LoadMPS(path string) (*instance.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ommx.IoError{Context: "opening MPS file", Err: errors.WithStack(err)}
	}
	defer f.Close()

	r, err := decodeMPSText(f)
	if err != nil {
		return nil, err
	}
	model, err := parseMPS(r)
	if err != nil {
		return nil, err
	}
	return model.toInstance()
}

// decodeMPSText wraps r so Latin-1 (common in legacy MPS files) is
// transcoded to UTF-8; input already valid UTF-8 passes through unchanged.
func decodeMPSText(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ommx.IoError{Context: "reading MPS file", Err: errors.WithStack(err)}
	}
	if utf8.Valid(data) {
		return strings.NewReader(string(data)), nil
	}
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, &ommx.IoError{Context: "transcoding MPS file from Latin-1", Err: errors.WithStack(err)}
	}
	return strings.NewReader(string(decoded)), nil
}

func parseMPS(r io.Reader) (*mpsModel, error) {
	model := newMPSModel()
	scanner := bufio.NewScanner(r)
	var section string
	inInteger := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "*") {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			fields := strings.Fields(line)
			section = strings.ToUpper(fields[0])
			if section == "ENDATA" {
				break
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch section {
		case "ROWS":
			if err := model.addRow(fields, lineNo); err != nil {
				return nil, err
			}
		case "COLUMNS":
			var err error
			inInteger, err = model.addColumnEntry(fields, inInteger, lineNo)
			if err != nil {
				return nil, err
			}
		case "RHS":
			if err := model.addValuePairs(fields[1:], model.rhs, lineNo); err != nil {
				return nil, err
			}
		case "RANGES":
			if err := model.addValuePairs(fields[1:], model.ranges, lineNo); err != nil {
				return nil, err
			}
		case "BOUNDS":
			if err := model.addBound(fields, lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ommx.IoError{Context: "scanning MPS file", Err: errors.WithStack(err)}
	}
	return model, nil
}

func (m *mpsModel) addRow(fields []string, lineNo int) error {
	if len(fields) < 2 {
		return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "ROWS entry needs a type and a name"}
	}
	kind := mpsRowKind(strings.ToUpper(fields[0])[0])
	name := fields[1]
	switch kind {
	case rowObjective:
		if m.objectiveRow == "" {
			m.objectiveRow = name
		}
	case rowLeq, rowGeq, rowEq:
		m.rows = append(m.rows, name)
		m.rowKind[name] = kind
		m.rowCoeffs[name] = map[string]float64{}
	default:
		return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "unknown row type " + string(kind)}
	}
	return nil
}

func (m *mpsModel) addColumnEntry(fields []string, inInteger bool, lineNo int) (bool, error) {
	if len(fields) >= 3 && strings.Contains(fields[1], "MARKER") {
		switch {
		case strings.Contains(fields[2], "INTORG"):
			return true, nil
		case strings.Contains(fields[2], "INTEND"):
			return false, nil
		}
		return inInteger, nil
	}

	col := fields[0]
	if !m.columnSeen[col] {
		m.columnSeen[col] = true
		m.columns = append(m.columns, col)
		if inInteger {
			m.integer[col] = true
		}
	}

	rest := fields[1:]
	if len(rest)%2 != 0 {
		return inInteger, &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "COLUMNS entry has an unpaired row/value"}
	}
	for i := 0; i < len(rest); i += 2 {
		row, valueStr := rest[i], rest[i+1]
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return inInteger, &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "malformed coefficient", Err: errors.WithStack(err)}
		}
		if row == m.objectiveRow {
			m.objective[col] += value
			continue
		}
		if coeffs, ok := m.rowCoeffs[row]; ok {
			coeffs[col] += value
		}
	}
	return inInteger, nil
}

func (m *mpsModel) addValuePairs(fields []string, dest map[string]float64, lineNo int) error {
	if len(fields)%2 != 0 {
		return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "entry has an unpaired name/value"}
	}
	for i := 0; i < len(fields); i += 2 {
		value, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "malformed value", Err: errors.WithStack(err)}
		}
		dest[fields[i]] = value
	}
	return nil
}

func (m *mpsModel) addBound(fields []string, lineNo int) error {
	if len(fields) < 3 {
		return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "BOUNDS entry needs type, column and (usually) value"}
	}
	kind := strings.ToUpper(fields[0])
	col := fields[2]
	if !m.columnSeen[col] {
		m.columnSeen[col] = true
		m.columns = append(m.columns, col)
	}
	var value float64
	var err error
	if len(fields) >= 4 {
		value, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "malformed bound value", Err: errors.WithStack(err)}
		}
	}
	switch kind {
	case "UP":
		m.upper[col] = value
	case "LO":
		m.lower[col] = value
	case "FX":
		m.lower[col] = value
		m.upper[col] = value
	case "FR":
		m.lower[col] = negInf
		m.upper[col] = posInf
	case "MI":
		m.lower[col] = negInf
	case "PL":
		m.upper[col] = posInf
	case "BV":
		m.binary[col] = true
	case "LI":
		m.integer[col] = true
		m.lower[col] = value
	case "UI":
		m.integer[col] = true
		m.upper[col] = value
	default:
		return &ommx.DecodeError{Path: fmt.Sprintf("MPS line %d", lineNo), Reason: "unsupported bound type " + kind}
	}
	return nil
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// toInstance assembles the parsed sections into a validated Instance. The
// objective's RHS entry, if present, is treated as a constant subtracted
// from the objective (the common MPS convention for a shifted objective).
func (m *mpsModel) toInstance() (*instance.Instance, error) {
	ids := make(map[string]ommx.VariableID, len(m.columns))
	vars := make([]instance.DecisionVariable, 0, len(m.columns))
	for i, col := range m.columns {
		id := ommx.VariableID(i + 1)
		ids[col] = id

		lower, hasLower := m.lower[col]
		upper, hasUpper := m.upper[col]
		if !hasLower {
			lower = 0
		}
		if !hasUpper {
			upper = posInf
		}

		switch {
		case m.binary[col]:
			vars = append(vars, instance.Binary(id))
		case m.integer[col]:
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

	objTerms := make(map[ommx.VariableID]float64, len(m.objective))
	for col, coeff := range m.objective {
		objTerms[ids[col]] = coeff
	}
	objConstant := 0.0
	if rhs, ok := m.rhs[m.objectiveRow]; ok {
		objConstant = -rhs
	}
	objLinear, err := polynomial.NewLinear(objTerms, objConstant)
	if err != nil {
		return nil, err
	}
	objective := polynomial.FunctionFromLinear(objLinear)

	var constraints []instance.Constraint
	nextConstraintID := ommx.ConstraintID(1)
	for _, row := range m.rows {
		terms := make(map[ommx.VariableID]float64, len(m.rowCoeffs[row]))
		for col, coeff := range m.rowCoeffs[row] {
			terms[ids[col]] = coeff
		}
		rhs := m.rhs[row]
		kind := m.rowKind[row]
		rangeVal, hasRange := m.ranges[row]

		built, err := buildRowConstraints(&nextConstraintID, terms, rhs, kind, rangeVal, hasRange)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, built...)
	}

	return instance.FromComponents(ommx.Minimize, objective, vars, constraints, "", instance.ConstraintHints{})
}

// buildRowConstraints turns one MPS row into one Constraint (L/G/E without
// a RANGES entry) or two (a ranged row, bounded on both sides: this engine
// only expresses <= 0 and == 0, so a double-sided bound needs a pair of
// LeqZero constraints).
func buildRowConstraints(nextID *ommx.ConstraintID, terms map[ommx.VariableID]float64, rhs float64, kind mpsRowKind, rangeVal float64, hasRange bool) ([]instance.Constraint, error) {
	leq := func(lim float64) (instance.Constraint, error) {
		l, err := polynomial.NewLinear(terms, -lim)
		if err != nil {
			return instance.Constraint{}, err
		}
		id := *nextID
		*nextID++
		return instance.NewConstraint(id, polynomial.FunctionFromLinear(l), ommx.LeqZero), nil
	}
	geq := func(lim float64) (instance.Constraint, error) {
		negated := make(map[ommx.VariableID]float64, len(terms))
		for id, c := range terms {
			negated[id] = -c
		}
		l, err := polynomial.NewLinear(negated, lim)
		if err != nil {
			return instance.Constraint{}, err
		}
		id := *nextID
		*nextID++
		return instance.NewConstraint(id, polynomial.FunctionFromLinear(l), ommx.LeqZero), nil
	}
	eq := func(target float64) (instance.Constraint, error) {
		l, err := polynomial.NewLinear(terms, -target)
		if err != nil {
			return instance.Constraint{}, err
		}
		id := *nextID
		*nextID++
		return instance.NewConstraint(id, polynomial.FunctionFromLinear(l), ommx.EqZero), nil
	}

	if !hasRange {
		switch kind {
		case rowLeq:
			c, err := leq(rhs)
			return []instance.Constraint{c}, err
		case rowGeq:
			c, err := geq(rhs)
			return []instance.Constraint{c}, err
		default:
			c, err := eq(rhs)
			return []instance.Constraint{c}, err
		}
	}

	r := math.Abs(rangeVal)
	var lower, upper float64
	switch kind {
	case rowGeq:
		lower, upper = rhs, rhs+r
	case rowLeq:
		lower, upper = rhs-r, rhs
	default: // rowEq
		if rangeVal >= 0 {
			lower, upper = rhs, rhs+r
		} else {
			lower, upper = rhs-r, rhs
		}
	}
	cUpper, err := leq(upper)
	if err != nil {
		return nil, err
	}
	cLower, err := geq(lower)
	if err != nil {
		return nil, err
	}
	return []instance.Constraint{cUpper, cLower}, nil
}
