// Copyright 2026 The CSV Relic Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) Schema {
	s, err := NewSchema([]Column{
		{Name: "id", Type: Int},
		{Name: "name", Type: String},
	})
	require.NoError(t, err)
	return s
}

func TestNewSchemaRejectsDuplicateColumns(t *testing.T) {
	_, err := NewSchema([]Column{
		{Name: "id", Type: Int},
		{Name: "id", Type: String},
	})
	require.Error(t, err)
}

func TestTupleGetUnknownColumnIsNull(t *testing.T) {
	require := require.New(t)
	s := testSchema(t)
	tup, err := NewTuple(s, []Value{NewInt(1), NewString("ann")})
	require.NoError(err)

	require.True(tup.Get("missing").IsNull())
	require.Equal(int64(1), tup.Get("id").Int())
}

func TestNewTupleArityMismatch(t *testing.T) {
	s := testSchema(t)
	_, err := NewTuple(s, []Value{NewInt(1)})
	require.Error(t, err)
}

func TestTupleConcatOrdersLeftThenRight(t *testing.T) {
	require := require.New(t)
	left := testSchema(t)
	right, err := NewSchema([]Column{{Name: "age", Type: Int}})
	require.NoError(err)

	lt, err := NewTuple(left, []Value{NewInt(1), NewString("ann")})
	require.NoError(err)
	rt, err := NewTuple(right, []Value{NewInt(25)})
	require.NoError(err)

	joined := lt.Concat(rt)
	require.Equal([]string{"id", "name", "age"}, joined.Schema.Names())
	require.Equal(int64(25), joined.Get("age").Int())
}

func TestTupleEqualStructural(t *testing.T) {
	require := require.New(t)
	s := testSchema(t)
	a, _ := NewTuple(s, []Value{NewInt(1), NewString("ann")})
	b, _ := NewTuple(s, []Value{NewInt(1), NewString("ann")})
	c, _ := NewTuple(s, []Value{NewInt(2), NewString("ann")})

	require.True(a.Equal(b))
	require.False(a.Equal(c))
	require.Equal(a.Key(), b.Key())
	require.NotEqual(a.Key(), c.Key())
}
