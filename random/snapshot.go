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

import "github.com/fxamacker/cbor/v2"

var canonicalMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// Snapshot renders v (typically the output of a Generator method, after
// being projected into a plain map/slice shape a caller controls) as
// canonical CBOR: sorted map keys, shortest-form integers, no
// indefinite-length items. Two snapshots of structurally equal values are
// byte-identical regardless of map iteration order or platform, which is
// what the reproducibility tests in this package compare.
func Snapshot(v interface{}) ([]byte, error) {
	return canonicalMode.Marshal(v)
}
