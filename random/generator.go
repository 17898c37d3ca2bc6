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

package random

import (
	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
	"github.com/Jij-Inc/ommx-sub001/polynomial"
	"github.com/Jij-Inc/ommx-sub001/sampling"
)

// Options parameterizes every generator method: how many terms to draw,
// the ceiling on a term's degree, the ceiling on a variable id, and (for
// Samples) how many samples to produce.
type Options struct {
	NumTerms   int
	MaxDegree  int
	MaxID      ommx.VariableID
	NumSamples int
}

func (o Options) maxID() ommx.VariableID {
	if o.MaxID == 0 {
		return 1
	}
	return o.MaxID
}

// Generator produces Linear/Quadratic/Polynomial/Function/State/Samples
// values from a PCG32 stream seeded at construction. Two Generators built
// from the same seed draw the identical sequence of values regardless of
// host platform, so the same seed always yields byte-identical output.
type Generator struct {
	rng *pcg32
}

// NewGenerator seeds a new stream. The sequence constant is fixed so the
// only input that varies output is seed itself.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: newPCG32(seed, 0xda3e39cb94b95bdb)}
}

func (g *Generator) id(maxID ommx.VariableID) ommx.VariableID {
	return ommx.VariableID(g.rng.uintn(uint64(maxID)) + 1)
}

// coefficient draws a nonzero value in [-10, 10); nonzero so a drawn term
// never silently vanishes from the term map it's inserted into.
func (g *Generator) coefficient() float64 {
	for {
		if v := g.rng.float64In(-10, 10); v != 0 {
			return v
		}
	}
}

// Linear draws opts.NumTerms distinct-or-colliding (id, coefficient) pairs
// over [1, opts.MaxID] plus a random constant.
func (g *Generator) Linear(opts Options) polynomial.Linear {
	maxID := opts.maxID()
	terms := make(map[ommx.VariableID]float64, opts.NumTerms)
	for i := 0; i < opts.NumTerms; i++ {
		terms[g.id(maxID)] = g.coefficient()
	}
	l, _ := polynomial.NewLinear(terms, g.coefficient())
	return l
}

// Quadratic draws opts.NumTerms pairwise terms over [1, opts.MaxID] plus a
// random Linear remainder.
func (g *Generator) Quadratic(opts Options) polynomial.Quadratic {
	maxID := opts.maxID()
	q := polynomial.Quadratic{}
	for i := 0; i < opts.NumTerms; i++ {
		q = q.Add(polynomial.NewQuadraticTerm(g.id(maxID), g.id(maxID), g.coefficient()))
	}
	return q.AddLinear(g.Linear(Options{NumTerms: opts.NumTerms, MaxID: opts.MaxID}))
}

// Polynomial draws opts.NumTerms monomials, each of a random degree in
// [0, opts.MaxDegree] over variable ids in [1, opts.MaxID].
func (g *Generator) Polynomial(opts Options) polynomial.Polynomial {
	maxID := opts.maxID()
	maxDegree := opts.MaxDegree
	if maxDegree < 0 {
		maxDegree = 0
	}
	p := polynomial.Polynomial{}
	for i := 0; i < opts.NumTerms; i++ {
		degree := int(g.rng.uintn(uint64(maxDegree) + 1))
		ids := make([]ommx.VariableID, degree)
		for j := range ids {
			ids[j] = g.id(maxID)
		}
		p = p.Add(polynomial.NewMonomial(ids, g.coefficient()))
	}
	return p
}

// Function draws a Function whose variant follows opts.MaxDegree: a
// constant for 0 or less, Linear for 1, Quadratic for 2, and Polynomial
// above that (FunctionFromPolynomial demotes it when no drawn monomial
// exceeds degree 2), so round-trip and reduction tests can exercise every
// representation.
func (g *Generator) Function(opts Options) polynomial.Function {
	switch {
	case opts.MaxDegree <= 0:
		return polynomial.FunctionFromConstant(g.coefficient())
	case opts.MaxDegree == 1:
		return polynomial.FunctionFromLinear(g.Linear(opts))
	case opts.MaxDegree == 2:
		return polynomial.FunctionFromQuadratic(g.Quadratic(opts))
	default:
		return polynomial.FunctionFromPolynomial(g.Polynomial(opts))
	}
}

// State draws a value in [-10, 10) for every id in [1, opts.MaxID].
func (g *Generator) State(opts Options) sampling.State {
	maxID := opts.maxID()
	values := make(map[ommx.VariableID]float64, int(maxID))
	for id := ommx.VariableID(1); id <= maxID; id++ {
		values[id] = g.rng.float64In(-10, 10)
	}
	state, _ := sampling.NewState(values)
	return state
}

// Samples draws opts.NumSamples states, each assigned to its own sample id
// starting at 1; no attempt is made to force collisions, so the result
// typically has one entry per sample unless two draws happen to coincide.
func (g *Generator) Samples(opts Options) *sampling.Samples {
	out := sampling.NewSamples()
	for i := 0; i < opts.NumSamples; i++ {
		state := g.State(opts)
		_ = out.Append([]ommx.SampleID{ommx.SampleID(i + 1)}, state)
	}
	return out
}

// Instance assembles a small but structurally valid Instance: opts.MaxID
// continuous decision variables bounded to [-10, 10], a random Linear
// objective, and no constraints, useful as a minimal fixture for
// transform/sampling round-trip tests that need a real Instance rather
// than a hand-built one.
func (g *Generator) Instance(opts Options) (*instance.Instance, error) {
	maxID := opts.maxID()
	vars := make([]instance.DecisionVariable, 0, int(maxID))
	bound, err := ommx.NewBound(-10, 10)
	if err != nil {
		return nil, err
	}
	for id := ommx.VariableID(1); id <= maxID; id++ {
		v, err := instance.ContinuousVar(id, bound)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	objective := polynomial.FunctionFromLinear(g.Linear(opts))
	return instance.FromComponents(ommx.Minimize, objective, vars, nil, "random", instance.ConstraintHints{})
}
