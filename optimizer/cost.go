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
	"math"

	"github.com/csvrelic/queryengine/catalog"
	"github.com/csvrelic/queryengine/plan"
	"github.com/csvrelic/queryengine/predicate"
)

const (
	comparisonSelectivity = 0.3
	equalitySelectivity   = 0.1
	unknownCardinality    = 1000
)

// Cardinality estimates the number of rows node produces, per §4.8's
// cardinality model. cat supplies per-table row counts and per-column
// statistics; an unknown table (absent from cat) falls back to
// unknownCardinality, matching the spec's documented fallback.
func Cardinality(node plan.Node, cat *catalog.Catalog, opts Options) uint64 {
	switch n := node.(type) {
	case *plan.Scan:
		if stats, ok := cat.Lookup(n.Path()); ok {
			return stats.RowCount
		}
		return unknownCardinality

	case *plan.Filter:
		childCard := Cardinality(n.Child, cat, opts)
		sel := selectivity(n.Predicate, node, cat, opts)
		return roundProduct(float64(childCard), sel)

	case *plan.HashJoin:
		leftCard := Cardinality(n.Left, cat, opts)
		rightCard := Cardinality(n.Right, cat, opts)
		return roundProduct(float64(leftCard)*float64(rightCard), equalitySelectivity)

	case *plan.Project:
		childCard := Cardinality(n.Child, cat, opts)
		if !n.Distinct {
			return childCard
		}
		cap := uint64(math.Pow(10, float64(len(n.Columns))))
		if childCard < cap {
			return childCard
		}
		return cap

	case *plan.Sink:
		return Cardinality(n.Child, cat, opts)

	default:
		return unknownCardinality
	}
}

// selectivity implements sel(p) for a predicate sitting directly
// above node in the tree (node's child is what the predicate filters).
// AndPredicate multiplies its conjuncts' selectivities under the
// independence assumption (§4.8); ComparisonPredicate defaults to the
// flat 0.3 baseline the test suite targets, optionally refined by a
// populated equi-width histogram when Options.HistogramSelectivity is
// set (SPEC_FULL item 1) and the predicate is a range comparison
// between a column with known statistics and a literal.
func selectivity(p predicate.Predicate, filterNode plan.Node, cat *catalog.Catalog, opts Options) float64 {
	switch pr := p.(type) {
	case *predicate.AndPredicate:
		return selectivity(pr.Left, filterNode, cat, opts) * selectivity(pr.Right, filterNode, cat, opts)
	case *predicate.ComparisonPredicate:
		if opts.HistogramSelectivity {
			if sel, ok := histogramSelectivity(pr, filterNode, cat); ok {
				return sel
			}
		}
		return comparisonSelectivity
	default:
		return comparisonSelectivity
	}
}

func roundProduct(base, sel float64) uint64 {
	v := math.Round(base * sel)
	if v < 0 {
		return 0
	}
	return uint64(v)
}
