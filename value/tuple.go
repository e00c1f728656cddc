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
	"strconv"

	"github.com/csvrelic/queryengine/internal/qerrors"
)

// Tuple is an ordered sequence of Values paired with a reference to
// the Schema it was produced against. Invariant: len(Values) ==
// Schema.Arity() for every live Tuple (§3).
type Tuple struct {
	Schema Schema
	Values []Value
}

// NewTuple validates the arity invariant and constructs a Tuple.
func NewTuple(schema Schema, values []Value) (Tuple, error) {
	if len(values) != schema.Arity() {
		return Tuple{}, qerrors.ErrArity.New(len(values), schema.Arity())
	}
	return Tuple{Schema: schema, Values: values}, nil
}

// Get returns the value at the named column, or Null if the name is
// unknown to this tuple's schema (§3: "unknown names return null").
func (t Tuple) Get(name string) Value {
	idx := t.Schema.IndexOf(name)
	if idx < 0 {
		return NullValue
	}
	return t.Values[idx]
}

// Concat returns a new Tuple whose schema and values are the ordered
// concatenation of t and other, used by HashJoinOperator (§4.6).
func (t Tuple) Concat(other Tuple) Tuple {
	schema := t.Schema.Concat(other.Schema)
	values := make([]Value, 0, len(t.Values)+len(other.Values))
	values = append(values, t.Values...)
	values = append(values, other.Values...)
	return Tuple{Schema: schema, Values: values}
}

// Equal reports structural equality of value sequences, used by
// ProjectOperator's distinct-flag deduplication (§4.4).
func (t Tuple) Equal(other Tuple) bool {
	if len(t.Values) != len(other.Values) {
		return false
	}
	for i := range t.Values {
		cmp, ok := Compare(t.Values[i], other.Values[i])
		if t.Values[i].IsNull() && other.Values[i].IsNull() {
			continue
		}
		if !ok || cmp != 0 {
			return false
		}
	}
	return true
}

// Key returns a comparable Go value summarizing t's values, suitable
// as a Go map key for the distinct-set membership test ProjectOperator
// needs (§4.4). Two Equal tuples produce the same Key when their
// values pair up numeric with numeric and string with string; an Int
// and a String that are Equal under the string fallback (1 and "1")
// produce different Keys.
func (t Tuple) Key() interface{} {
	keys := make([]interface{}, len(t.Values))
	for i, v := range t.Values {
		keys[i] = v.CanonicalKey()
	}
	return fmtKey(keys)
}

func fmtKey(keys []interface{}) string {
	// A simple, collision-resistant enough textual join of the
	// CanonicalKey sequence; numeric and string keys carry distinct
	// prefixes, so they never collide with each other.
	out := make([]byte, 0, 64)
	for i, k := range keys {
		if i > 0 {
			out = append(out, '\x1f')
		}
		out = append(out, []byte(toKeyString(k))...)
	}
	return string(out)
}

func toKeyString(k interface{}) string {
	switch x := k.(type) {
	case nil:
		return "\x00"
	case float64:
		return "f:" + strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "s:" + x
	default:
		return "?"
	}
}
