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
	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
)

// Constraint pairs a Function with the equality relation it must satisfy,
// plus descriptive annotations. Ids are assigned by the caller (typically
// from an IDGenerator, see id_generator.go) rather than by hidden global
// state; SetID is the only way to change one after construction.
type Constraint struct {
	id          ommx.ConstraintID
	equality    ommx.Equality
	function    polynomial.Function
	name        string
	subscripts  []int64
	parameters  map[string]string
	description string
}

// NewConstraint constructs a constraint asserting function's equality
// relation against zero.
func NewConstraint(id ommx.ConstraintID, function polynomial.Function, equality ommx.Equality) Constraint {
	return Constraint{id: id, function: function, equality: equality}
}

func (c Constraint) ID() ommx.ConstraintID      { return c.id }
func (c Constraint) Equality() ommx.Equality    { return c.equality }
func (c Constraint) Function() polynomial.Function { return c.function }
func (c Constraint) Name() string               { return c.name }
func (c Constraint) Description() string        { return c.description }

func (c Constraint) Subscripts() []int64 {
	return append([]int64(nil), c.subscripts...)
}

func (c Constraint) Parameters() map[string]string {
	out := make(map[string]string, len(c.parameters))
	for k, v := range c.parameters {
		out[k] = v
	}
	return out
}

// SetID returns a copy of c with a new id. This is the only sanctioned way
// to override the id a constraint was constructed with.
func (c Constraint) SetID(id ommx.ConstraintID) Constraint {
	out := c
	out.id = id
	return out
}

// SetName returns a copy of c with name set.
func (c Constraint) SetName(name string) Constraint {
	out := c
	out.name = name
	return out
}

// SetDescription returns a copy of c with description set.
func (c Constraint) SetDescription(description string) Constraint {
	out := c
	out.description = description
	return out
}

// AddSubscripts returns a copy of c with the given subscripts appended.
func (c Constraint) AddSubscripts(subscripts ...int64) Constraint {
	out := c
	out.subscripts = append(append([]int64(nil), c.subscripts...), subscripts...)
	return out
}

// AddParameter returns a copy of c with parameters[key] = value set.
func (c Constraint) AddParameter(key, value string) Constraint {
	out := c
	out.parameters = c.Parameters()
	out.parameters[key] = value
	return out
}

// SetParameters returns a copy of c with its parameter map replaced
// wholesale.
func (c Constraint) SetParameters(parameters map[string]string) Constraint {
	out := c
	out.parameters = make(map[string]string, len(parameters))
	for k, v := range parameters {
		out.parameters[k] = v
	}
	return out
}

// WithFunction returns a copy of c with function replaced, used by
// transformations that rewrite a constraint's expression in place (e.g.
// partial_evaluate, log_encode substitution).
func (c Constraint) WithFunction(f polynomial.Function) Constraint {
	out := c
	out.function = f
	return out
}

// WithEquality returns a copy of c with its equality relation replaced,
// used by convert_inequality_to_equality_with_integer_slack.
func (c Constraint) WithEquality(equality ommx.Equality) Constraint {
	out := c
	out.equality = equality
	return out
}

// Evaluate computes the constraint's function value and whether it is
// satisfied within atol.
func (c Constraint) Evaluate(state map[ommx.VariableID]float64, atol float64) (value float64, feasible bool, err error) {
	value, err = c.function.Evaluate(state)
	if err != nil {
		return 0, false, err
	}
	return value, c.equality.Satisfied(value, atol), nil
}

// RemovedConstraint wraps a Constraint that has been moved out of the
// active set by relax_constraint, recording why.
type RemovedConstraint struct {
	Constraint        Constraint
	Reason            string
	ReasonParameters  map[string]string
}

// NewRemovedConstraint wraps constraint with the given reason.
func NewRemovedConstraint(constraint Constraint, reason string, reasonParameters map[string]string) RemovedConstraint {
	params := make(map[string]string, len(reasonParameters))
	for k, v := range reasonParameters {
		params[k] = v
	}
	return RemovedConstraint{Constraint: constraint, Reason: reason, ReasonParameters: params}
}
