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

import "fmt"

// Each error below is a concrete type rather than a sentinel, so callers
// can recover the offending id or reason via a type assertion or
// errors.As instead of matching on a string.

// UnknownVariableError is returned when an operation references a
// VariableID not registered with the Instance.
type UnknownVariableError struct{ ID VariableID }

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("ommx: unknown variable id %d", e.ID)
}

// UnknownConstraintError is returned when an operation references a
// ConstraintID not present among remaining or removed constraints.
type UnknownConstraintError struct{ ID ConstraintID }

func (e *UnknownConstraintError) Error() string {
	return fmt.Sprintf("ommx: unknown constraint id %d", e.ID)
}

// DuplicateVariableIDError is returned when two decision variables share an
// id.
type DuplicateVariableIDError struct{ ID VariableID }

func (e *DuplicateVariableIDError) Error() string {
	return fmt.Sprintf("ommx: duplicate variable id %d", e.ID)
}

// DuplicateConstraintIDError is returned when two constraints (remaining or
// removed) share an id.
type DuplicateConstraintIDError struct{ ID ConstraintID }

func (e *DuplicateConstraintIDError) Error() string {
	return fmt.Sprintf("ommx: duplicate constraint id %d", e.ID)
}

// DuplicateSampleIDError is returned when Samples.Append is given a sample
// id already bound to a different State than the one it is being appended
// with.
type DuplicateSampleIDError struct{ ID SampleID }

func (e *DuplicateSampleIDError) Error() string {
	return fmt.Sprintf("ommx: sample id %d already bound to a different state", e.ID)
}

// UnknownSampleIDError is returned when a SampleSet is asked about a
// sample id it has no recorded Solution for.
type UnknownSampleIDError struct{ ID SampleID }

func (e *UnknownSampleIDError) Error() string {
	return fmt.Sprintf("ommx: unknown sample id %d", e.ID)
}

// InvalidBoundForKindError is returned when a DecisionVariable's bound
// violates the invariant attached to its Kind.
type InvalidBoundForKindError struct{ Reason string }

func (e *InvalidBoundForKindError) Error() string {
	return fmt.Sprintf("ommx: invalid bound for kind: %s", e.Reason)
}

// InvalidCoefficientError is returned when a non-finite value is used as a
// coefficient or bound endpoint.
type InvalidCoefficientError struct{ Reason string }

func (e *InvalidCoefficientError) Error() string {
	return fmt.Sprintf("ommx: invalid coefficient: %s", e.Reason)
}

// DependencyCycleError is returned when decision_variable_dependency
// contains a cycle.
type DependencyCycleError struct{ IDs []VariableID }

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("ommx: dependency cycle among variables %v", e.IDs)
}

// MissingVariableError is returned by a full evaluate() when a required
// variable id has no value in the supplied State.
type MissingVariableError struct{ ID VariableID }

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("ommx: missing variable id %d in state", e.ID)
}

// InconsistentSubstitutionError is returned when a substituted or sampled
// value conflicts with a variable's bound or its recorded substituted_value.
type InconsistentSubstitutionError struct{ ID VariableID }

func (e *InconsistentSubstitutionError) Error() string {
	return fmt.Sprintf("ommx: inconsistent substitution for variable id %d", e.ID)
}

// NoFeasibleSampleError is returned when best_feasible/best_feasible_relaxed
// find no feasible sample.
type NoFeasibleSampleError struct{}

func (e *NoFeasibleSampleError) Error() string {
	return "ommx: no feasible sample"
}

// SlackRangeTooLargeError is returned when the integer slack range needed
// to convert an inequality to an equality exceeds the configured maximum.
type SlackRangeTooLargeError struct {
	Range int64
	Max   int64
}

func (e *SlackRangeTooLargeError) Error() string {
	return fmt.Sprintf("ommx: slack range %d exceeds maximum %d", e.Range, e.Max)
}

// NotIntegerError is returned when an operation requiring an integer
// variable (e.g. log_encode) is given a non-integer one.
type NotIntegerError struct{ ID VariableID }

func (e *NotIntegerError) Error() string {
	return fmt.Sprintf("ommx: variable id %d is not integer", e.ID)
}

// NotBinaryError is returned when an operation requiring a binary variable
// is given a non-binary one.
type NotBinaryError struct{ ID VariableID }

func (e *NotBinaryError) Error() string {
	return fmt.Sprintf("ommx: variable id %d is not binary", e.ID)
}

// QuboRequiresBinaryError is returned by as_qubo_format/as_hubo_format when
// the instance still contains a non-binary variable.
type QuboRequiresBinaryError struct{ ID VariableID }

func (e *QuboRequiresBinaryError) Error() string {
	return fmt.Sprintf("ommx: qubo/hubo projection requires binary variables, id %d is not binary", e.ID)
}

// DegreeTooHighForQuboError is returned by as_qubo_format when the
// objective's degree exceeds 2 after reduce_binary_power.
type DegreeTooHighForQuboError struct{ Degree int }

func (e *DegreeTooHighForQuboError) Error() string {
	return fmt.Sprintf("ommx: degree %d too high for qubo (max 2)", e.Degree)
}

// DecodeError is returned by from_bytes when a byte stream does not decode
// to a valid value of the target type.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ommx: decode error at %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("ommx: decode error: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned by to_bytes when a value cannot be encoded (e.g.
// it violates an invariant the wire format assumes).
type EncodeError struct{ Reason string }

func (e *EncodeError) Error() string {
	return fmt.Sprintf("ommx: encode error: %s", e.Reason)
}

// IoError wraps an underlying I/O failure encountered by the MPS/QPLIB
// loaders, with Context describing which operation failed.
type IoError struct {
	Context string
	Err     error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("ommx: io error during %s: %v", e.Context, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
