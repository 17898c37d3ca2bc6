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

package instance

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/internal/wire"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

func zigzagAppend(w *wire.Writer, field protowire.Number, v int64) {
	w.VarintAlways(field, protowire.EncodeZigZag(v))
}

func zigzagDecode(v uint64) int64 { return protowire.DecodeZigZag(v) }

func writeStringMap(w *wire.Writer, field protowire.Number, m map[string]string) {
	for k, v := range m {
		entry := wire.NewWriter()
		entry.String(1, k)
		entry.String(2, v)
		w.Message(field, entry)
	}
}

func decodeStringMapEntry(b []byte) (string, string, error) {
	r := wire.NewReader(b)
	var k, v string
	for {
		f, ok, err := r.Next()
		if err != nil {
			return "", "", &ommx.DecodeError{Path: "parameter entry", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			k = string(f.Bytes)
		case 2:
			v = string(f.Bytes)
		}
	}
	return k, v, nil
}

// ToBytes encodes v per the DecisionVariable wire schema.
func (v DecisionVariable) ToBytes() []byte {
	w := wire.NewWriter()
	w.VarintAlways(1, uint64(v.id))
	w.VarintAlways(2, uint64(v.kind))
	w.DoubleAlways(3, v.bound.Lower)
	w.DoubleAlways(4, v.bound.Upper)
	w.String(5, v.name)
	for _, s := range v.subscripts {
		zigzagAppend(w, 6, s)
	}
	writeStringMap(w, 7, v.parameters)
	w.String(8, v.description)
	if v.substitutedValue != nil {
		w.DoubleAlways(9, *v.substitutedValue)
		w.Bool(10, true)
	}
	return w.Bytes()
}

// DecisionVariableFromBytes decodes the format written by
// DecisionVariable.ToBytes.
func DecisionVariableFromBytes(b []byte) (DecisionVariable, error) {
	r := wire.NewReader(b)
	var v DecisionVariable
	var hasSubstituted bool
	var substituted float64
	v.parameters = map[string]string{}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return DecisionVariable{}, &ommx.DecodeError{Path: "DecisionVariable", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			v.id = ommx.VariableID(f.Varint)
		case 2:
			v.kind = ommx.Kind(f.Varint)
		case 3:
			v.bound.Lower = f.AsDouble()
		case 4:
			v.bound.Upper = f.AsDouble()
		case 5:
			v.name = string(f.Bytes)
		case 6:
			v.subscripts = append(v.subscripts, zigzagDecode(f.Varint))
		case 7:
			k, val, err := decodeStringMapEntry(f.Bytes)
			if err != nil {
				return DecisionVariable{}, err
			}
			v.parameters[k] = val
		case 8:
			v.description = string(f.Bytes)
		case 9:
			substituted = f.AsDouble()
		case 10:
			hasSubstituted = f.AsBool()
		}
	}
	if hasSubstituted {
		v.substitutedValue = &substituted
	}
	return v, nil
}

// ToBytes encodes c per the Constraint wire schema.
func (c Constraint) ToBytes() []byte {
	w := wire.NewWriter()
	w.VarintAlways(1, uint64(c.id))
	w.VarintAlways(2, uint64(c.equality))
	w.BytesField(3, c.function.ToBytes())
	w.String(4, c.name)
	for _, s := range c.subscripts {
		zigzagAppend(w, 5, s)
	}
	writeStringMap(w, 6, c.parameters)
	w.String(7, c.description)
	return w.Bytes()
}

// ConstraintFromBytes decodes the format written by Constraint.ToBytes.
func ConstraintFromBytes(b []byte) (Constraint, error) {
	r := wire.NewReader(b)
	var c Constraint
	c.parameters = map[string]string{}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Constraint{}, &ommx.DecodeError{Path: "Constraint", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			c.id = ommx.ConstraintID(f.Varint)
		case 2:
			c.equality = ommx.Equality(f.Varint)
		case 3:
			fn, err := polynomial.FunctionFromBytes(f.Bytes)
			if err != nil {
				return Constraint{}, err
			}
			c.function = fn
		case 4:
			c.name = string(f.Bytes)
		case 5:
			c.subscripts = append(c.subscripts, zigzagDecode(f.Varint))
		case 6:
			k, v, err := decodeStringMapEntry(f.Bytes)
			if err != nil {
				return Constraint{}, err
			}
			c.parameters[k] = v
		case 7:
			c.description = string(f.Bytes)
		}
	}
	return c, nil
}

// ToBytes encodes rc per the RemovedConstraint wire schema.
func (rc RemovedConstraint) ToBytes() []byte {
	w := wire.NewWriter()
	w.BytesField(1, rc.Constraint.ToBytes())
	w.String(2, rc.Reason)
	writeStringMap(w, 3, rc.ReasonParameters)
	return w.Bytes()
}

// RemovedConstraintFromBytes decodes the format written by
// RemovedConstraint.ToBytes.
func RemovedConstraintFromBytes(b []byte) (RemovedConstraint, error) {
	r := wire.NewReader(b)
	rc := RemovedConstraint{ReasonParameters: map[string]string{}}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return RemovedConstraint{}, &ommx.DecodeError{Path: "RemovedConstraint", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			c, err := ConstraintFromBytes(f.Bytes)
			if err != nil {
				return RemovedConstraint{}, err
			}
			rc.Constraint = c
		case 2:
			rc.Reason = string(f.Bytes)
		case 3:
			k, v, err := decodeStringMapEntry(f.Bytes)
			if err != nil {
				return RemovedConstraint{}, err
			}
			rc.ReasonParameters[k] = v
		}
	}
	return rc, nil
}

// ToBytes encodes h per the ConstraintHints wire schema.
func (h ConstraintHints) ToBytes() []byte {
	w := wire.NewWriter()
	for _, oh := range h.OneHot {
		sub := wire.NewWriter()
		sub.VarintAlways(1, uint64(oh.ID))
		for _, id := range oh.Variables {
			sub.VarintAlways(2, uint64(id))
		}
		w.Message(1, sub)
	}
	for _, s := range h.Sos1 {
		sub := wire.NewWriter()
		sub.VarintAlways(1, uint64(s.BinaryConstraintID))
		for _, id := range s.BigMConstraintIDs {
			sub.VarintAlways(2, uint64(id))
		}
		for _, id := range s.Variables {
			sub.VarintAlways(3, uint64(id))
		}
		w.Message(2, sub)
	}
	return w.Bytes()
}

// ConstraintHintsFromBytes decodes the format written by
// ConstraintHints.ToBytes.
func ConstraintHintsFromBytes(b []byte) (ConstraintHints, error) {
	r := wire.NewReader(b)
	var h ConstraintHints
	for {
		f, ok, err := r.Next()
		if err != nil {
			return ConstraintHints{}, &ommx.DecodeError{Path: "ConstraintHints", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			oh, err := decodeOneHot(f.Bytes)
			if err != nil {
				return ConstraintHints{}, err
			}
			h.OneHot = append(h.OneHot, oh)
		case 2:
			s, err := decodeSos1(f.Bytes)
			if err != nil {
				return ConstraintHints{}, err
			}
			h.Sos1 = append(h.Sos1, s)
		}
	}
	return h, nil
}

func decodeOneHot(b []byte) (OneHot, error) {
	r := wire.NewReader(b)
	var oh OneHot
	for {
		f, ok, err := r.Next()
		if err != nil {
			return OneHot{}, &ommx.DecodeError{Path: "OneHot", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			oh.ID = ommx.ConstraintID(f.Varint)
		case 2:
			oh.Variables = append(oh.Variables, ommx.VariableID(f.Varint))
		}
	}
	return oh, nil
}

func decodeSos1(b []byte) (Sos1, error) {
	r := wire.NewReader(b)
	var s Sos1
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Sos1{}, &ommx.DecodeError{Path: "Sos1", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			s.BinaryConstraintID = ommx.ConstraintID(f.Varint)
		case 2:
			s.BigMConstraintIDs = append(s.BigMConstraintIDs, ommx.ConstraintID(f.Varint))
		case 3:
			s.Variables = append(s.Variables, ommx.VariableID(f.Varint))
		}
	}
	return s, nil
}

// ToBytes encodes the full Instance: sense, objective, every decision
// variable and constraint and removed constraint, dependencies, hints,
// and descriptive metadata.
func (inst *Instance) ToBytes() []byte {
	w := wire.NewWriter()
	w.VarintAlways(1, uint64(inst.sense))
	w.BytesField(2, inst.objective.ToBytes())
	for _, v := range inst.DecisionVariables() {
		w.BytesField(3, v.ToBytes())
	}
	for _, c := range inst.Constraints() {
		w.BytesField(4, c.ToBytes())
	}
	for _, rc := range inst.RemovedConstraints() {
		w.BytesField(5, rc.ToBytes())
	}
	w.String(6, inst.description)
	w.String(7, inst.title)
	w.BytesField(8, inst.hints.ToBytes())
	writeStringMap(w, 9, inst.parameters)
	for id, f := range inst.dependency {
		dep := wire.NewWriter()
		dep.VarintAlways(1, uint64(id))
		dep.BytesField(2, f.ToBytes())
		w.Message(10, dep)
	}
	return w.Bytes()
}

// InstanceFromBytes decodes the format written by Instance.ToBytes. The
// result has not been revalidated against the engine's structural
// invariants; callers that need that guarantee should call Diagnose after
// decoding untrusted bytes.
func InstanceFromBytes(b []byte) (*Instance, error) {
	r := wire.NewReader(b)
	inst := &Instance{
		decisionVariables:  map[ommx.VariableID]DecisionVariable{},
		constraints:        map[ommx.ConstraintID]Constraint{},
		removedConstraints: map[ommx.ConstraintID]RemovedConstraint{},
		dependency:         map[ommx.VariableID]polynomial.Function{},
		parameters:         map[string]string{},
	}
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, &ommx.DecodeError{Path: "Instance", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			inst.sense = ommx.Sense(f.Varint)
		case 2:
			fn, err := polynomial.FunctionFromBytes(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.objective = fn
		case 3:
			v, err := DecisionVariableFromBytes(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.decisionVariables[v.id] = v
		case 4:
			c, err := ConstraintFromBytes(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.constraints[c.id] = c
		case 5:
			rc, err := RemovedConstraintFromBytes(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.removedConstraints[rc.Constraint.id] = rc
		case 6:
			inst.description = string(f.Bytes)
		case 7:
			inst.title = string(f.Bytes)
		case 8:
			h, err := ConstraintHintsFromBytes(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.hints = h
		case 9:
			k, v, err := decodeStringMapEntry(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.parameters[k] = v
		case 10:
			id, fn, err := decodeDependencyEntry(f.Bytes)
			if err != nil {
				return nil, err
			}
			inst.dependency[id] = fn
		}
	}
	return inst, nil
}

func decodeDependencyEntry(b []byte) (ommx.VariableID, polynomial.Function, error) {
	r := wire.NewReader(b)
	var id ommx.VariableID
	var fn polynomial.Function
	for {
		f, ok, err := r.Next()
		if err != nil {
			return 0, polynomial.Function{}, &ommx.DecodeError{Path: "dependency entry", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			id = ommx.VariableID(f.Varint)
		case 2:
			decoded, err := polynomial.FunctionFromBytes(f.Bytes)
			if err != nil {
				return 0, polynomial.Function{}, err
			}
			fn = decoded
		}
	}
	return id, fn, nil
}

// ToBytes encodes v per the EvaluatedDecisionVariable wire schema: the
// underlying variable followed by its value.
func (v EvaluatedDecisionVariable) ToBytes() []byte {
	w := wire.NewWriter()
	w.BytesField(1, v.Variable.ToBytes())
	w.DoubleAlways(2, v.Value)
	return w.Bytes()
}

// EvaluatedDecisionVariableFromBytes decodes the format written by
// EvaluatedDecisionVariable.ToBytes.
func EvaluatedDecisionVariableFromBytes(b []byte) (EvaluatedDecisionVariable, error) {
	r := wire.NewReader(b)
	var out EvaluatedDecisionVariable
	for {
		f, ok, err := r.Next()
		if err != nil {
			return EvaluatedDecisionVariable{}, &ommx.DecodeError{Path: "EvaluatedDecisionVariable", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			v, err := DecisionVariableFromBytes(f.Bytes)
			if err != nil {
				return EvaluatedDecisionVariable{}, err
			}
			out.Variable = v
		case 2:
			out.Value = f.AsDouble()
		}
	}
	return out, nil
}

// ToBytes encodes c per the EvaluatedConstraint wire schema: the
// underlying constraint followed by its value and feasibility.
func (c EvaluatedConstraint) ToBytes() []byte {
	w := wire.NewWriter()
	w.BytesField(1, c.Constraint.ToBytes())
	w.DoubleAlways(2, c.Value)
	w.Bool(3, c.Feasible)
	return w.Bytes()
}

// EvaluatedConstraintFromBytes decodes the format written by
// EvaluatedConstraint.ToBytes.
func EvaluatedConstraintFromBytes(b []byte) (EvaluatedConstraint, error) {
	r := wire.NewReader(b)
	var out EvaluatedConstraint
	for {
		f, ok, err := r.Next()
		if err != nil {
			return EvaluatedConstraint{}, &ommx.DecodeError{Path: "EvaluatedConstraint", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			c, err := ConstraintFromBytes(f.Bytes)
			if err != nil {
				return EvaluatedConstraint{}, err
			}
			out.Constraint = c
		case 2:
			out.Value = f.AsDouble()
		case 3:
			out.Feasible = f.AsBool()
		}
	}
	return out, nil
}

// ToBytes encodes s per the Solution wire schema.
func (s Solution) ToBytes() []byte {
	w := wire.NewWriter()
	w.VarintAlways(1, uint64(s.Sense))
	w.DoubleAlways(2, s.Objective)
	for _, v := range s.DecisionVariables {
		w.BytesField(3, v.ToBytes())
	}
	for _, c := range s.Constraints {
		w.BytesField(4, c.ToBytes())
	}
	for _, c := range s.RemovedConstraints {
		w.BytesField(5, c.ToBytes())
	}
	w.Bool(6, s.FeasibleRelaxed)
	w.Bool(7, s.FeasibleUnrelaxed)
	w.Bool(8, s.Feasible)
	w.String(9, s.Optimality)
	w.String(10, s.Relaxation)
	return w.Bytes()
}

// SolutionFromBytes decodes the format written by Solution.ToBytes.
func SolutionFromBytes(b []byte) (Solution, error) {
	r := wire.NewReader(b)
	var s Solution
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Solution{}, &ommx.DecodeError{Path: "Solution", Reason: "malformed field", Err: err}
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			s.Sense = ommx.Sense(f.Varint)
		case 2:
			s.Objective = f.AsDouble()
		case 3:
			v, err := EvaluatedDecisionVariableFromBytes(f.Bytes)
			if err != nil {
				return Solution{}, err
			}
			s.DecisionVariables = append(s.DecisionVariables, v)
		case 4:
			c, err := EvaluatedConstraintFromBytes(f.Bytes)
			if err != nil {
				return Solution{}, err
			}
			s.Constraints = append(s.Constraints, c)
		case 5:
			c, err := EvaluatedConstraintFromBytes(f.Bytes)
			if err != nil {
				return Solution{}, err
			}
			s.RemovedConstraints = append(s.RemovedConstraints, c)
		case 6:
			s.FeasibleRelaxed = f.AsBool()
		case 7:
			s.FeasibleUnrelaxed = f.AsBool()
		case 8:
			s.Feasible = f.AsBool()
		case 9:
			s.Optimality = string(f.Bytes)
		case 10:
			s.Relaxation = string(f.Bytes)
		}
	}
	return s, nil
}

