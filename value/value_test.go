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

func TestCompareNumericWidening(t *testing.T) {
	require := require.New(t)

	cmp, ok := Compare(NewInt(3), NewFloat(3.0))
	require.True(ok)
	require.Equal(0, cmp)

	cmp, ok = Compare(NewInt(2), NewFloat(3.5))
	require.True(ok)
	require.Equal(-1, cmp)
}

func TestCompareStringFallbackOnTypeMismatch(t *testing.T) {
	require := require.New(t)

	cmp, ok := Compare(NewString("10"), NewInt(9))
	require.True(ok)
	// "10" < "9" lexicographically.
	require.Equal(-1, cmp)
}

func TestCompareNullAlwaysNotOk(t *testing.T) {
	require := require.New(t)

	_, ok := Compare(NullValue, NewInt(1))
	require.False(ok)

	_, ok = Compare(NewInt(1), NullValue)
	require.False(ok)

	_, ok = Compare(NullValue, NullValue)
	require.False(ok)
}

func TestCanonicalKeyUnifiesNumericKinds(t *testing.T) {
	require := require.New(t)

	require.Equal(NewInt(7).CanonicalKey(), NewFloat(7.0).CanonicalKey())
	require.NotEqual(NewInt(7).CanonicalKey(), NewString("7").CanonicalKey())
}

func TestParseCellMalformedYieldsNull(t *testing.T) {
	require := require.New(t)

	require.True(ParseCell("", Int).IsNull())
	require.True(ParseCell("abc", Int).IsNull())
	require.False(ParseCell("42", Int).IsNull())
	require.Equal(int64(42), ParseCell("42", Int).Int())
}

func TestParseLiteralPicksNarrowestType(t *testing.T) {
	require := require.New(t)

	require.Equal(Int, ParseLiteral("42").Kind())
	require.Equal(Float, ParseLiteral("42.5").Kind())
	require.Equal(String, ParseLiteral("engineering").Kind())
}
