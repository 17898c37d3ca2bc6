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

package polynomial

import "testing"

func TestContentFactorSimpleIntegers(t *testing.T) {
	got := ContentFactor([]float64{4, 6, 10})
	if got != 2 {
		t.Fatalf("expected content factor 2, got %v", got)
	}
}

func TestContentFactorFractions(t *testing.T) {
	// 0.5, 0.25, 0.75 -> content 0.25 (numerators 2,1,3 over denom 4; gcd(2,1,3)=1)
	got := ContentFactor([]float64{0.5, 0.25, 0.75})
	if got != 0.25 {
		t.Fatalf("expected content factor 0.25, got %v", got)
	}
}

func TestContentFactorEmpty(t *testing.T) {
	if ContentFactor(nil) != 1 {
		t.Fatal("empty input should yield content factor 1")
	}
}
