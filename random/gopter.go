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
	"reflect"

	"github.com/leanovate/gopter"
)

// Gen returns a gopter.Gen that draws Function values through g's own PCG
// stream rather than gopter's built-in *rand.Rand, so property tests that
// embed this generator reproduce the same draw sequence as a direct call
// to g.Function would. The returned Gen ignores gopter's shrinking
// machinery (GenResult.Shrinker is gopter.NoShrinker): these values are fixtures,
// not counterexamples to minimize.
func (g *Generator) Gen(opts Options) gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		value := g.Function(opts)
		return &gopter.GenResult{
			Result:        value,
			ResultType:    reflect.TypeOf(value),
			Sieve:         func(interface{}) bool { return true },
			Shrinker:      gopter.NoShrinker,
			ShrinkerValue: nil,
		}
	}
}
