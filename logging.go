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

import "go.uber.org/zap"

// logger receives a structured event for every Instance-mutating
// transformation (relax_constraint, log_encode, penalty methods, the
// to_qubo/to_hubo driver): the operation name, the ids it touched, and
// counts of anything it added or removed. It defaults to a no-op so the
// engine is silent unless a host opts in.
var logger = zap.NewNop()

// SetLogger installs l as the package-wide transformation logger. Passing
// nil is a no-op (the previous logger, or the default no-op, is kept).
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the currently installed transformation logger.
func Logger() *zap.Logger {
	return logger
}
