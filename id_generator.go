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

package ommx

// IDGenerator hands out monotonically increasing ids for variables and
// constraints. Unlike a package-level counter, it carries no hidden global
// state: a caller that wants "auto-assigned" ids constructs one explicitly
// and threads it through its own builder, so two independent builders
// never contend over the same sequence.
type IDGenerator struct {
	nextVariable   VariableID
	nextConstraint ConstraintID
}

// NewIDGenerator returns a generator starting both sequences at 0.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NextVariableID returns the next unused VariableID and advances the
// sequence.
func (g *IDGenerator) NextVariableID() VariableID {
	id := g.nextVariable
	g.nextVariable++
	return id
}

// NextConstraintID returns the next unused ConstraintID and advances the
// sequence.
func (g *IDGenerator) NextConstraintID() ConstraintID {
	id := g.nextConstraint
	g.nextConstraint++
	return id
}

// ObserveVariableID advances the variable sequence past id, so ids mixed
// from an external source (e.g. a loaded MPS file) never collide with
// subsequently auto-assigned ones.
func (g *IDGenerator) ObserveVariableID(id VariableID) {
	if id >= g.nextVariable {
		g.nextVariable = id + 1
	}
}

// ObserveConstraintID advances the constraint sequence past id.
func (g *IDGenerator) ObserveConstraintID(id ConstraintID) {
	if id >= g.nextConstraint {
		g.nextConstraint = id + 1
	}
}
