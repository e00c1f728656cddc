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

package optimizer

import (
	"github.com/csvrelic/queryengine/catalog"
	"github.com/csvrelic/queryengine/plan"
	"github.com/csvrelic/queryengine/predicate"
)

// splitConjuncts flattens a predicate into its AND-connected parts, so
// each conjunct can be pushed down independently (§4.8 Pass 1).
func splitConjuncts(p predicate.Predicate) []predicate.Predicate {
	if and, ok := p.(*predicate.AndPredicate); ok {
		return append(splitConjuncts(and.Left), splitConjuncts(and.Right)...)
	}
	return []predicate.Predicate{p}
}

// combineConjuncts rebuilds a single predicate from conjuncts produced
// by splitConjuncts, preserving their order.
func combineConjuncts(ps []predicate.Predicate) predicate.Predicate {
	out := ps[0]
	for _, p := range ps[1:] {
		out = predicate.NewAnd(out, p)
	}
	return out
}

func subsetOf(cols map[string]struct{}, names []string) bool {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	for c := range cols {
		if _, ok := allowed[c]; !ok {
			return false
		}
	}
	return true
}

// pushDownFilters implements §4.8 Pass 1: a Filter sitting above a
// HashJoin splits into conjuncts and each one moves onto whichever
// side's schema covers attrs(conjunct); a conjunct that spans both
// sides stays above the join. A Filter directly above a Project
// always moves below it, since every column a Filter here can
// reference is already part of the Project's own output schema and
// therefore present in the Project's child schema too.
func pushDownFilters(node plan.Node) plan.Node {
	switch n := node.(type) {
	case *plan.Scan:
		return n
	case *plan.Filter:
		child := pushDownFilters(n.Child)
		return pushFilterInto(n.Predicate, child)
	case *plan.Project:
		return plan.NewProject(n.Columns, n.Distinct, pushDownFilters(n.Child))
	case *plan.HashJoin:
		return plan.NewHashJoin(pushDownFilters(n.Left), pushDownFilters(n.Right), n.Predicate)
	case *plan.Sink:
		return plan.NewSink(n.Path(), pushDownFilters(n.Child))
	default:
		return node
	}
}

// pushFilterInto places pred as low in child as its referenced
// columns allow, recursing through further Filter/Project/HashJoin
// layers so a pushed-down conjunct keeps moving until it meets a node
// it can't pass.
func pushFilterInto(pred predicate.Predicate, child plan.Node) plan.Node {
	switch c := child.(type) {
	case *plan.HashJoin:
		leftNames := c.Left.Schema().Names()
		rightNames := c.Right.Schema().Names()

		var leftConj, rightConj, remain []predicate.Predicate
		for _, conj := range splitConjuncts(pred) {
			cols := conj.Columns()
			switch {
			case subsetOf(cols, leftNames):
				leftConj = append(leftConj, conj)
			case subsetOf(cols, rightNames):
				rightConj = append(rightConj, conj)
			default:
				remain = append(remain, conj)
			}
		}

		newLeft := c.Left
		if len(leftConj) > 0 {
			newLeft = pushFilterInto(combineConjuncts(leftConj), c.Left)
		}
		newRight := c.Right
		if len(rightConj) > 0 {
			newRight = pushFilterInto(combineConjuncts(rightConj), c.Right)
		}
		join := plan.NewHashJoin(newLeft, newRight, c.Predicate)

		if len(remain) > 0 {
			return plan.NewFilter(combineConjuncts(remain), join)
		}
		return join

	case *plan.Project:
		return plan.NewProject(c.Columns, c.Distinct, pushFilterInto(pred, c.Child))

	default:
		return plan.NewFilter(pred, child)
	}
}

// mergeFilters implements §4.8 Pass 2: two directly-stacked Filters
// collapse into one, conjoining the outer predicate with the inner
// (outer evaluated first, matching AndPredicate's short-circuit order).
func mergeFilters(node plan.Node) plan.Node {
	switch n := node.(type) {
	case *plan.Filter:
		child := mergeFilters(n.Child)
		if inner, ok := child.(*plan.Filter); ok {
			return plan.NewFilter(predicate.NewAnd(n.Predicate, inner.Predicate), inner.Child)
		}
		return plan.NewFilter(n.Predicate, child)
	case *plan.Project:
		return plan.NewProject(n.Columns, n.Distinct, mergeFilters(n.Child))
	case *plan.HashJoin:
		return plan.NewHashJoin(mergeFilters(n.Left), mergeFilters(n.Right), n.Predicate)
	case *plan.Sink:
		return plan.NewSink(n.Path(), mergeFilters(n.Child))
	default:
		return node
	}
}

// collapseProjections implements §4.8 Pass 3: two directly-stacked
// Projects collapse into the outer's column list (the inner's column
// list only ever renumbers/renames what the outer already consumes),
// provided the inner isn't Distinct — collapsing across a dedup step
// would change which rows survive. A non-distinct Project whose
// column list is exactly its child's schema, in order, is elided
// entirely: it's a no-op pass-through.
func collapseProjections(node plan.Node) plan.Node {
	switch n := node.(type) {
	case *plan.Project:
		child := collapseProjections(n.Child)
		if inner, ok := child.(*plan.Project); ok && !inner.Distinct {
			return maybeElideProject(plan.NewProject(n.Columns, n.Distinct, inner.Child))
		}
		return maybeElideProject(plan.NewProject(n.Columns, n.Distinct, child))
	case *plan.Filter:
		return plan.NewFilter(n.Predicate, collapseProjections(n.Child))
	case *plan.HashJoin:
		return plan.NewHashJoin(collapseProjections(n.Left), collapseProjections(n.Right), n.Predicate)
	case *plan.Sink:
		return plan.NewSink(n.Path(), collapseProjections(n.Child))
	default:
		return node
	}
}

func maybeElideProject(p *plan.Project) plan.Node {
	if p.Distinct {
		return p
	}
	if sameColumns(p.Columns, p.Child.Schema().Names()) {
		return p.Child
	}
	return p
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reorderJoins implements §4.8 Pass 4: walking bottom-up, a HashJoin
// swaps its build (left) and probe (right) sides whenever the
// already-reordered right subtree has a strictly smaller estimated
// cardinality than the left. Equality join predicates are always
// swap-safe (Predicate.Swapped exchanges the two equated columns), so
// no further check is needed beyond the cardinality comparison.
func reorderJoins(node plan.Node, cat *catalog.Catalog, opts Options) plan.Node {
	switch n := node.(type) {
	case *plan.HashJoin:
		left := reorderJoins(n.Left, cat, opts)
		right := reorderJoins(n.Right, cat, opts)
		if Cardinality(right, cat, opts) < Cardinality(left, cat, opts) {
			return plan.NewHashJoin(right, left, n.Predicate.Swapped())
		}
		return plan.NewHashJoin(left, right, n.Predicate)
	case *plan.Filter:
		return plan.NewFilter(n.Predicate, reorderJoins(n.Child, cat, opts))
	case *plan.Project:
		return plan.NewProject(n.Columns, n.Distinct, reorderJoins(n.Child, cat, opts))
	case *plan.Sink:
		return plan.NewSink(n.Path(), reorderJoins(n.Child, cat, opts))
	default:
		return node
	}
}
