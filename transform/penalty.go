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

package transform

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/Jij-Inc/ommx-sub001"
	"github.com/Jij-Inc/ommx-sub001/instance"
)

// PenaltyMethod moves every remaining constraint f(x) R 0 into the
// objective as 1.0 * f(x)^2 and relaxes the constraint with reason
// "penalty_method", recording the weight 1.0 under "ommx.weight".
// Inequality constraints are penalized the same way equality constraints
// are (biasing the optimum toward f=0 rather than merely f<=0); callers
// that need the weaker, exact inequality semantics should use
// AddIntegerSlackToInequality instead. The weight is folded directly into
// the objective as a fixed number: no per-constraint weight parameter or
// decision variable is created, so the weights cannot be tuned afterwards.
func PenaltyMethod(inst *instance.Instance) error {
	objective := inst.Objective()
	var toRelax []ommx.ConstraintID
	for _, c := range inst.Constraints() {
		objective = objective.Add(c.Function().Mul(c.Function()))
		toRelax = append(toRelax, c.ID())
	}
	if err := inst.SetObjective(objective); err != nil {
		return err
	}
	for _, id := range toRelax {
		if err := inst.RelaxConstraint(id, "penalty_method", map[string]string{
			"ommx.weight": strconv.FormatFloat(1.0, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	ommx.Logger().Info("penalty_method", zap.Int("constraints_relaxed", len(toRelax)))
	return nil
}

// UniformPenaltyMethod is PenaltyMethod with a single shared weight across
// every remaining constraint, relaxing each with reason
// "uniform_penalty_method". A weight <= 0 is replaced by the default of
// 1.0.
func UniformPenaltyMethod(inst *instance.Instance, weight float64) error {
	if weight <= 0 {
		weight = 1.0
	}
	objective := inst.Objective()
	var toRelax []ommx.ConstraintID
	for _, c := range inst.Constraints() {
		objective = objective.Add(c.Function().Mul(c.Function()).ScalarMul(weight))
		toRelax = append(toRelax, c.ID())
	}
	if err := inst.SetObjective(objective); err != nil {
		return err
	}
	for _, id := range toRelax {
		if err := inst.RelaxConstraint(id, "uniform_penalty_method", map[string]string{
			"ommx.weight": strconv.FormatFloat(weight, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	ommx.Logger().Info("uniform_penalty_method", zap.Float64("weight", weight))
	return nil
}
