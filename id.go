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

// Package ommx provides the in-memory instance engine for the OMMX
// optimization exchange format: decision variables, constraints, the
// polynomial algebra they're built from, and the transformations and
// evaluations defined over them. The wire codec and OCI packaging layers
// referenced throughout are specified elsewhere; this module only consumes
// their contracts (see the `internal/wire` and `interop` packages).
package ommx

// VariableID identifies a decision variable. Variable ids and constraint ids
// are separate namespaces: the same numeric value may appear as both a
// VariableID and a ConstraintID without referring to the same entity.
type VariableID uint64

// ConstraintID identifies a constraint, in a namespace disjoint from
// VariableID.
type ConstraintID uint64

// SampleID identifies one sample within a Samples/SampleSet pair.
type SampleID uint64

// Coefficient is a finite, non-NaN real number used as a polynomial
// coefficient or as a decision variable's value. It is an alias rather than
// a distinct type so arithmetic with ordinary float64 literals needs no
// conversion.
type Coefficient = float64
