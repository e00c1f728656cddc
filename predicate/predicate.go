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

// Package predicate implements row predicates (comparison, and) and
// join predicates (equi-join), per §3 and §4.7 of the engine's
// evaluation semantics. Resolution and comparison both route through
// value.Compare, the single source of truth for coercion.
package predicate

import (
	"fmt"

	"github.com/csvrelic/queryengine/internal/qerrors"
	"github.com/csvrelic/queryengine/value"
)

// Op is one of the six comparison operators the grammar in §6 allows.
type Op int

const (
	Eq Op = iota
	Gt
	Ge
	Lt
	Le
	Ne
)

func (o Op) String() string {
	switch o {
	case Eq:
		return "="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Ne:
		return "!="
	default:
		return "?"
	}
}

// ParseOp maps the grammar token to an Op.
func ParseOp(tok string) (Op, error) {
	switch tok {
	case "=":
		return Eq, nil
	case ">":
		return Gt, nil
	case ">=":
		return Ge, nil
	case "<":
		return Lt, nil
	case "<=":
		return Le, nil
	case "!=":
		return Ne, nil
	default:
		return 0, qerrors.ErrUnknownOperator.New(tok)
	}
}

// Predicate is a pure function Tuple -> bool (§3). Implementations
// must reference only columns present in the evaluating tuple's
// schema; referencing an unknown column resolves to null, which
// always compares false (§7's Resolution error tolerance).
type Predicate interface {
	// Eval returns whether tup satisfies the predicate.
	Eval(tup value.Tuple) bool
	// Columns returns the set of column names this predicate
	// references, used by the optimizer's pushdown analysis (§4.8
	// Pass 1) to test attrs(p) ⊆ outputs(side).
	Columns() map[string]struct{}
	// String renders the predicate for plan-printing and logging.
	fmt.Stringer
}

// Operand is either a column reference (resolved against the
// evaluating tuple) or a literal Value.
type Operand struct {
	// Column, when non-empty, names the tuple column to read.
	Column string
	// Literal is used when Column is empty.
	Literal value.Value
	isCol   bool
}

// Col builds a column-reference operand.
func Col(name string) Operand { return Operand{Column: name, isCol: true} }

// Lit builds a literal operand.
func Lit(v value.Value) Operand { return Operand{Literal: v} }

func (o Operand) resolve(tup value.Tuple) value.Value {
	if o.isCol {
		return tup.Get(o.Column)
	}
	return o.Literal
}

// IsColumn reports whether this operand is a column reference rather
// than a literal. Exposed for the optimizer's cost model, which needs
// to recognize "column op literal" shapes for histogram-refined
// selectivity (SPEC_FULL item 1).
func (o Operand) IsColumn() bool { return o.isCol }

func (o Operand) String() string {
	if o.isCol {
		return o.Column
	}
	return o.Literal.String()
}

// ComparisonPredicate implements §4.7's resolution algorithm.
type ComparisonPredicate struct {
	Left  Operand
	Op    Op
	Right Operand
}

// NewComparison builds a ComparisonPredicate.
func NewComparison(left Operand, op Op, right Operand) *ComparisonPredicate {
	return &ComparisonPredicate{Left: left, Op: op, Right: right}
}

// Eval implements Predicate.
func (p *ComparisonPredicate) Eval(tup value.Tuple) bool {
	lv := p.Left.resolve(tup)
	rv := p.Right.resolve(tup)

	cmp, ok := value.Compare(lv, rv)
	if !ok {
		// Either operand was null: "any comparison involving null
		// yields false" (§3), which also covers Ne per spec (no
		// special-casing of != against null).
		return false
	}

	switch p.Op {
	case Eq:
		return cmp == 0
	case Ne:
		return cmp != 0
	case Gt:
		return cmp > 0
	case Ge:
		return cmp >= 0
	case Lt:
		return cmp < 0
	case Le:
		return cmp <= 0
	default:
		return false
	}
}

// Columns implements Predicate.
func (p *ComparisonPredicate) Columns() map[string]struct{} {
	cols := make(map[string]struct{}, 2)
	if p.Left.isCol {
		cols[p.Left.Column] = struct{}{}
	}
	if p.Right.isCol {
		cols[p.Right.Column] = struct{}{}
	}
	return cols
}

// String implements fmt.Stringer.
func (p *ComparisonPredicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
}

// AndPredicate conjuncts two predicates with short-circuit semantics.
type AndPredicate struct {
	Left, Right Predicate
}

// NewAnd builds an AndPredicate.
func NewAnd(left, right Predicate) *AndPredicate {
	return &AndPredicate{Left: left, Right: right}
}

// Eval implements Predicate; short-circuits on a false left operand.
func (p *AndPredicate) Eval(tup value.Tuple) bool {
	return p.Left.Eval(tup) && p.Right.Eval(tup)
}

// Columns implements Predicate.
func (p *AndPredicate) Columns() map[string]struct{} {
	cols := p.Left.Columns()
	for c := range p.Right.Columns() {
		cols[c] = struct{}{}
	}
	return cols
}

// String implements fmt.Stringer.
func (p *AndPredicate) String() string {
	return fmt.Sprintf("(%s AND %s)", p.Left, p.Right)
}
