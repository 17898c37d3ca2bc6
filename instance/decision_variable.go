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

// Package instance implements the Instance container: decision variables,
// constraints, hints, and the Instance type itself that exclusively owns
// them. This is the layer that enforces the id-namespace and dependency
// invariants of the data model; the polynomial package above it knows
// nothing about what a variable id "means".
package instance

import (
	"github.com/google/uuid"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// DecisionVariable is a value object describing one decision variable: its
// kind, bound, and descriptive metadata. A DecisionVariable never holds a
// reference back to the Instance that owns it.
type DecisionVariable struct {
	id               ommx.VariableID
	kind             ommx.Kind
	bound            ommx.Bound
	name             string
	subscripts       []int64
	parameters       map[string]string
	description      string
	substitutedValue *float64
}

// NewDecisionVariable constructs a variable of kind with the given bound,
// failing with InvalidBoundForKindError if the bound is incompatible.
func NewDecisionVariable(id ommx.VariableID, kind ommx.Kind, bound ommx.Bound) (DecisionVariable, error) {
	if err := kind.ValidateBound(bound); err != nil {
		return DecisionVariable{}, err
	}
	return DecisionVariable{id: id, kind: kind, bound: bound}, nil
}

// Binary constructs a binary variable with bound [0,1].
func Binary(id ommx.VariableID) DecisionVariable {
	b, _ := ommx.NewBound(0, 1)
	v, _ := NewDecisionVariable(id, ommx.Binary, b)
	return v
}

// Integer constructs an integer variable with the given bound.
func Integer(id ommx.VariableID, bound ommx.Bound) (DecisionVariable, error) {
	return NewDecisionVariable(id, ommx.Integer, bound)
}

// ContinuousVar constructs a continuous variable with the given bound.
func ContinuousVar(id ommx.VariableID, bound ommx.Bound) (DecisionVariable, error) {
	return NewDecisionVariable(id, ommx.Continuous, bound)
}

// SemiInteger constructs a semi-integer variable with the given bound.
func SemiInteger(id ommx.VariableID, bound ommx.Bound) (DecisionVariable, error) {
	return NewDecisionVariable(id, ommx.SemiInteger, bound)
}

// SemiContinuousVar constructs a semi-continuous variable with the given
// bound.
func SemiContinuousVar(id ommx.VariableID, bound ommx.Bound) (DecisionVariable, error) {
	return NewDecisionVariable(id, ommx.SemiContinuous, bound)
}

func (v DecisionVariable) ID() ommx.VariableID { return v.id }
func (v DecisionVariable) Kind() ommx.Kind      { return v.kind }
func (v DecisionVariable) Bound() ommx.Bound    { return v.bound }
func (v DecisionVariable) Name() string         { return v.name }
func (v DecisionVariable) Description() string  { return v.description }

func (v DecisionVariable) Subscripts() []int64 {
	return append([]int64(nil), v.subscripts...)
}

func (v DecisionVariable) Parameters() map[string]string {
	out := make(map[string]string, len(v.parameters))
	for k, val := range v.parameters {
		out[k] = val
	}
	return out
}

// SubstitutedValue returns the value recorded by a prior partial_evaluate,
// if any.
func (v DecisionVariable) SubstitutedValue() (float64, bool) {
	if v.substitutedValue == nil {
		return 0, false
	}
	return *v.substitutedValue, true
}

// WithSubstitutedValue returns a copy of v with substituted_value set,
// failing with InconsistentSubstitutionError if value is outside the
// variable's bound.
func (v DecisionVariable) WithSubstitutedValue(value float64) (DecisionVariable, error) {
	if !v.bound.Contains(value) {
		return DecisionVariable{}, &ommx.InconsistentSubstitutionError{ID: v.id}
	}
	out := v
	val := value
	out.substitutedValue = &val
	return out, nil
}

// SetName returns a copy of v with name set.
func (v DecisionVariable) SetName(name string) DecisionVariable {
	out := v
	out.name = name
	return out
}

// SetDescription returns a copy of v with description set.
func (v DecisionVariable) SetDescription(description string) DecisionVariable {
	out := v
	out.description = description
	return out
}

// AddSubscripts returns a copy of v with the given subscripts appended.
func (v DecisionVariable) AddSubscripts(subscripts ...int64) DecisionVariable {
	out := v
	out.subscripts = append(append([]int64(nil), v.subscripts...), subscripts...)
	return out
}

// AddParameter returns a copy of v with parameters[key] = value set.
func (v DecisionVariable) AddParameter(key, value string) DecisionVariable {
	out := v
	out.parameters = v.Parameters()
	out.parameters[key] = value
	return out
}

// NewAnonymousTitle generates a stable-format, unique default title for an
// Instance that was not given one explicitly, using a random UUID so two
// anonymous instances never collide on disk or in a content-addressed
// store.
func NewAnonymousTitle() string {
	return "untitled-" + uuid.New().String()
}

// AllowsValue reports whether value is a legal value for v (bound and kind
// both respected).
func (v DecisionVariable) AllowsValue(value float64) bool {
	return v.kind.AllowsValue(value, v.bound)
}

// AsFunction lifts v to the Function 1*x_id, useful when substituting it
// into a larger expression.
func (v DecisionVariable) AsFunction() polynomial.Function {
	return polynomial.FunctionFromVariable(v.id)
}
