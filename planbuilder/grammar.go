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

// Package planbuilder implements the fluent, text-grammar plan
// construction surface of §6: scan/filter/join/project/sink chained
// calls, with comparison predicates written as free text
// ("col OP literal" or "col OP col") rather than constructed
// operand-by-operand.
package planbuilder

import (
	"strings"

	"github.com/csvrelic/queryengine/internal/qerrors"
	"github.com/csvrelic/queryengine/predicate"
	"github.com/csvrelic/queryengine/value"
)

// parsedComparison is the grammar's three tokens, before either side
// has been resolved against a schema into a column or literal operand.
type parsedComparison struct {
	left  string
	op    predicate.Op
	right string
}

// parseComparisonText splits "<left> <op> <right>" into its three
// tokens. Exactly three whitespace-separated tokens are required; the
// grammar has no support for parenthesization or operator precedence
// since every predicate the builder accepts is already a single
// comparison (conjunction is expressed by chaining .Filter calls, not
// by text-level AND).
func parseComparisonText(text string) (parsedComparison, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return parsedComparison{}, qerrors.ErrMalformedPredicate.New(text)
	}
	op, err := predicate.ParseOp(fields[1])
	if err != nil {
		return parsedComparison{}, err
	}
	return parsedComparison{left: fields[0], op: op, right: fields[2]}, nil
}

// resolveOperand turns a grammar token into a predicate.Operand: a
// column reference when the token names a column in schema, otherwise
// a parsed literal.
func resolveOperand(token string, names map[string]struct{}) predicate.Operand {
	if _, ok := names[token]; ok {
		return predicate.Col(token)
	}
	return predicate.Lit(value.ParseLiteral(token))
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
