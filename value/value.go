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

// Package value implements the engine's single dynamically-typed
// scalar: a closed sum over null, integer, double, and string. Every
// coercion rule used by predicate evaluation and by hash-join key
// canonicalization is defined once here, so comparison semantics
// cannot drift between the two call sites.
package value

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// Kind tags which alternative of the Value sum is populated.
type Kind int

const (
	// Null is the absence of a value. Every comparison involving Null
	// evaluates to false, never true or error.
	Null Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Int:
		return "integer"
	case Float:
		return "double"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Value is the engine's scalar cell type. The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// NullValue is the canonical null.
var NullValue = Value{kind: Null}

// NewInt builds an integer Value.
func NewInt(i int64) Value { return Value{kind: Int, i: i} }

// NewFloat builds a double Value.
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

// NewString builds a string Value.
func NewString(s string) Value { return Value{kind: String, s: s} }

// IsNull reports whether v is the null alternative.
func (v Value) IsNull() bool { return v.kind == Null }

// Kind returns which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload; only meaningful when Kind() == Int.
func (v Value) Int() int64 { return v.i }

// Float returns the double payload; only meaningful when Kind() == Float.
func (v Value) Float() float64 { return v.f }

// String returns the canonical textual form of v, used both for
// display and for the string-fallback comparison rule (§4.7 step 4).
func (v Value) String() string {
	switch v.kind {
	case Null:
		return ""
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return v.s
	default:
		return ""
	}
}

func (v Value) isNumeric() bool { return v.kind == Int || v.kind == Float }

// AsFloat widens an Int or Float Value to float64. Only valid when
// isNumeric() is true.
func (v Value) AsFloat() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

// Compare implements the total order used throughout the engine: the
// single source of truth behind ComparisonPredicate (§4.7) and
// hash-join key canonicalization (§4.6, §9). It returns a three-way
// comparison (-1, 0, 1) and a bool that is false whenever either
// operand is null, per spec's "any comparison involving null yields
// false" rule — callers must check ok before trusting the sign.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.IsNull() || b.IsNull() {
		return 0, false
	}
	if a.isNumeric() && b.isNumeric() {
		af, bf := a.AsFloat(), b.AsFloat()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.kind != b.kind {
		as, bs := a.String(), b.String()
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}
	// Same non-numeric kind: string.
	as, bs := a.s, b.s
	switch {
	case as < bs:
		return -1, true
	case as > bs:
		return 1, true
	default:
		return 0, true
	}
}

// CanonicalKey returns a hashable, equality-consistent representation
// of v suitable for bucketing in a hash-join hash table. Per §9, a
// hash map keyed on Value must never hash on identity; integers and
// doubles that compare equal via Compare must also canonicalize to
// the same key. Widening both to their float64 form satisfies
// that: 3 (Int) and 3.0 (Float) produce the
// same key, matching Compare's numeric-widening branch.
func (v Value) CanonicalKey() interface{} {
	switch v.kind {
	case Null:
		return nil
	case Int, Float:
		return v.AsFloat()
	case String:
		return v.s
	default:
		return nil
	}
}

// ParseCell parses a raw CSV cell into a Value of the declared Kind.
// An empty cell, or a cell that fails to parse as its declared type,
// yields Null (§4.2: "malformed cells... yield null").
func ParseCell(raw string, kind Kind) Value {
	if raw == "" {
		return NullValue
	}
	switch kind {
	case Int:
		i, err := cast.ToInt64E(raw)
		if err != nil {
			return NullValue
		}
		return NewInt(i)
	case Float:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return NullValue
		}
		return NewFloat(f)
	case String:
		return NewString(raw)
	default:
		return NullValue
	}
}

// ParseLiteral parses free text (from the fluent predicate-text
// grammar, §6) into a Value: integer if numeric and integral, else
// double if numeric, else string.
func ParseLiteral(raw string) Value {
	if i, err := cast.ToInt64E(raw); err == nil {
		return NewInt(i)
	}
	if f, err := cast.ToFloat64E(raw); err == nil {
		return NewFloat(f)
	}
	return NewString(raw)
}

// GoString supports %#v-style debug printing in trace logs.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{kind:%s, text:%q}", v.kind, v.String())
}
