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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundRejectsInverted(t *testing.T) {
	_, err := NewBound(5, 1)
	require.Error(t, err)
	var target *InvalidBoundForKindError
	require.ErrorAs(t, err, &target)
}

func TestNewBoundRejectsNaN(t *testing.T) {
	_, err := NewBound(math.NaN(), 1)
	require.Error(t, err)
}

func TestBoundIntersect(t *testing.T) {
	a, _ := NewBound(0, 10)
	b, _ := NewBound(5, 15)
	got, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, Bound{Lower: 5, Upper: 10}, got)

	c, _ := NewBound(20, 30)
	_, ok = a.Intersect(c)
	assert.False(t, ok)
}

func TestBoundIsIntegral(t *testing.T) {
	b, _ := NewBound(0, 1)
	assert.True(t, b.IsIntegral())

	b, _ = NewBound(0.5, 1)
	assert.False(t, b.IsIntegral())

	b = Unbounded()
	assert.True(t, b.IsIntegral())
}

func TestBoundIsPoint(t *testing.T) {
	b, _ := NewBound(3, 3)
	v, ok := b.PointValue()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	b, _ = NewBound(3, 4)
	_, ok = b.PointValue()
	assert.False(t, ok)
}
