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

package planbuilder

import (
	"github.com/csvrelic/queryengine/internal/qerrors"
	"github.com/csvrelic/queryengine/plan"
	"github.com/csvrelic/queryengine/predicate"
)

// Builder assembles an operator tree one call at a time. Each method
// returns the same *Builder so calls chain; a construction error is
// remembered and short-circuits every later call, surfacing only once
// at Build.
type Builder struct {
	node plan.Node
	err  error
}

// Scan starts a new Builder reading path.
func Scan(path string) *Builder {
	return &Builder{node: plan.NewScan(path)}
}

// Filter restricts rows to those satisfying a "col OP literal" or
// "col OP col" comparison, per §6's grammar.
func (b *Builder) Filter(comparisonText string) *Builder {
	if b.err != nil {
		return b
	}
	parsed, err := parseComparisonText(comparisonText)
	if err != nil {
		b.err = err
		return b
	}
	names := nameSet(b.node.Schema().Names())
	pred := predicate.NewComparison(
		resolveOperand(parsed.left, names),
		parsed.op,
		resolveOperand(parsed.right, names),
	)
	b.node = plan.NewFilter(pred, b.node)
	return b
}

// Join combines b's current result with other's, matched by an
// equality condition between one column from each side, per §6. The
// grammar only accepts two bare column names on either side of "=";
// anything else (a literal, or a non-equality operator) is rejected
// with ErrUnsupportedJoin, matching the core's EqualityJoinPredicate-
// only support (§3).
func (b *Builder) Join(other *Builder, comparisonText string) *Builder {
	if b.err != nil {
		return b
	}
	if other.err != nil {
		b.err = other.err
		return b
	}

	parsed, err := parseComparisonText(comparisonText)
	if err != nil {
		b.err = err
		return b
	}
	if parsed.op != predicate.Eq {
		b.err = qerrors.ErrUnsupportedJoin.New(comparisonText)
		return b
	}

	leftNames := nameSet(b.node.Schema().Names())
	rightNames := nameSet(other.node.Schema().Names())

	leftCol, ok := matchSide(parsed.left, parsed.right, leftNames, rightNames)
	if !ok {
		b.err = qerrors.ErrUnsupportedJoin.New(comparisonText)
		return b
	}
	rightCol, ok := matchSide(parsed.right, parsed.left, rightNames, leftNames)
	if !ok {
		b.err = qerrors.ErrUnsupportedJoin.New(comparisonText)
		return b
	}

	b.node = plan.NewHashJoin(b.node, other.node, predicate.NewEqualityJoin(leftCol, rightCol))
	return b
}

// matchSide picks whichever of tok/alt names a column in own, used to
// let "a = b" and "b = a" both resolve regardless of which side of
// "=" names the left table's column.
func matchSide(tok, alt string, own, otherSide map[string]struct{}) (string, bool) {
	if _, ok := own[tok]; ok {
		return tok, true
	}
	if _, ok := own[alt]; ok {
		return alt, true
	}
	return "", false
}

// Project reshapes the result to exactly columns, in order.
func (b *Builder) Project(columns ...string) *Builder {
	return b.project(columns, false)
}

// ProjectDistinct is Project with duplicate-row suppression (§4.4).
func (b *Builder) ProjectDistinct(columns ...string) *Builder {
	return b.project(columns, true)
}

func (b *Builder) project(columns []string, distinct bool) *Builder {
	if b.err != nil {
		return b
	}
	b.node = plan.NewProject(columns, distinct, b.node)
	return b
}

// Sink terminates the chain, writing the result to path.
func (b *Builder) Sink(path string) *Builder {
	if b.err != nil {
		return b
	}
	b.node = plan.NewSink(path, b.node)
	return b
}

// Build returns the assembled tree, or the first error encountered
// while constructing it.
func (b *Builder) Build() (plan.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}
