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

import "math"

// Bound is a closed interval [Lower, Upper] over the reals, with either or
// both endpoints allowed to be infinite. Lower must never exceed Upper.
type Bound struct {
	Lower float64
	Upper float64
}

// NewBound validates and constructs a Bound. Endpoints must be non-NaN and
// Lower must not exceed Upper.
func NewBound(lower, upper float64) (Bound, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return Bound{}, &InvalidCoefficientError{Reason: "bound endpoint is NaN"}
	}
	if lower > upper {
		return Bound{}, &InvalidBoundForKindError{Reason: "lower bound exceeds upper bound"}
	}
	return Bound{Lower: lower, Upper: upper}, nil
}

// Unbounded returns the bound (-inf, +inf).
func Unbounded() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Contains reports whether v lies within the bound, inclusive of endpoints.
func (b Bound) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// IsPoint reports whether the bound collapses to a single value.
func (b Bound) IsPoint() bool {
	return b.Lower == b.Upper
}

// PointValue returns the single value of a point bound and true, or
// (0, false) if the bound is not a point.
func (b Bound) PointValue() (float64, bool) {
	if !b.IsPoint() {
		return 0, false
	}
	return b.Lower, true
}

// IsIntegral reports whether both finite endpoints are integral; an
// infinite endpoint is always considered integral for this purpose.
func (b Bound) IsIntegral() bool {
	return isIntegralEndpoint(b.Lower) && isIntegralEndpoint(b.Upper)
}

func isIntegralEndpoint(v float64) bool {
	if math.IsInf(v, 0) {
		return true
	}
	return v == math.Trunc(v)
}

// Intersect returns the pointwise intersection of two bounds. The second
// return value is false if the intersection is empty.
func (b Bound) Intersect(other Bound) (Bound, bool) {
	lower := math.Max(b.Lower, other.Lower)
	upper := math.Min(b.Upper, other.Upper)
	if lower > upper {
		return Bound{}, false
	}
	return Bound{Lower: lower, Upper: upper}, true
}

// Width returns Upper-Lower, which may be +Inf.
func (b Bound) Width() float64 {
	return b.Upper - b.Lower
}
