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
	"github.com/csvrelic/queryengine/value"
)

// histogramSelectivity refines sel(ComparisonPredicate) using the
// populated equi-width histogram on a Scan's column, when the filter
// sits directly above that Scan and compares it against a numeric
// literal with a range operator. It returns ok=false whenever the
// shape doesn't match, letting the caller fall back to the flat
// baseline constant (SPEC_FULL item 1; this never claims exact
// histogram-based selectivity, which is an explicit Non-goal — it
// only turns equi-width buckets the loader already computed into a
// slightly better range estimate).
func histogramSelectivity(p *predicate.ComparisonPredicate, filterNode plan.Node, cat *catalog.Catalog) (float64, bool) {
	f, ok := filterNode.(*plan.Filter)
	if !ok {
		return 0, false
	}
	scan, ok := f.Child.(*plan.Scan)
	if !ok {
		return 0, false
	}
	stats, ok := cat.Lookup(scan.Path())
	if !ok {
		return 0, false
	}

	col, threshold, op, ok := splitColumnLiteral(p)
	if !ok || op == predicate.Eq || op == predicate.Ne {
		return 0, false
	}
	colStats, ok := stats.Columns[col]
	if !ok || colStats.Histogram == nil {
		return 0, false
	}
	if colStats.Min.IsNull() || colStats.Max.IsNull() {
		return 0, false
	}

	lo, hi := colStats.Min.AsFloat(), colStats.Max.AsFloat()
	if hi <= lo {
		return 0, false
	}

	n := len(colStats.Histogram)
	width := (hi - lo) / float64(n)
	var total uint64
	var matching float64
	for i, count := range colStats.Histogram {
		total += count
		bucketLo := lo + float64(i)*width
		bucketHi := bucketLo + width
		bucketMid := (bucketLo + bucketHi) / 2
		if satisfiesRange(op, bucketMid, threshold) {
			matching += float64(count)
		}
	}
	if total == 0 {
		return 0, false
	}
	return matching / float64(total), true
}

// splitColumnLiteral recognizes a "column OP literal" shape,
// normalizing "literal OP column" into the equivalent column-first
// form by flipping the operator's direction.
func splitColumnLiteral(p *predicate.ComparisonPredicate) (col string, lit float64, op predicate.Op, ok bool) {
	if p.Left.IsColumn() && !p.Right.IsColumn() && isNumeric(p.Right.Literal) {
		return p.Left.Column, p.Right.Literal.AsFloat(), p.Op, true
	}
	if p.Right.IsColumn() && !p.Left.IsColumn() && isNumeric(p.Left.Literal) {
		return p.Right.Column, p.Left.Literal.AsFloat(), flipOp(p.Op), true
	}
	return "", 0, 0, false
}

func isNumeric(v value.Value) bool {
	return v.Kind() == value.Int || v.Kind() == value.Float
}

// flipOp converts "literal OP column" into the equivalent "column OP'
// literal" by reversing a directional operator; = and != are
// symmetric and unaffected.
func flipOp(op predicate.Op) predicate.Op {
	switch op {
	case predicate.Gt:
		return predicate.Lt
	case predicate.Ge:
		return predicate.Le
	case predicate.Lt:
		return predicate.Gt
	case predicate.Le:
		return predicate.Ge
	default:
		return op
	}
}

// satisfiesRange reports whether a bucket's representative value
// satisfies "value OP threshold" for the range operators. It reports
// false for Eq/Ne; histogramSelectivity never passes those, since a
// single representative point can't usefully estimate equality
// selectivity from bucket midpoints.
func satisfiesRange(op predicate.Op, v, threshold float64) bool {
	switch op {
	case predicate.Gt:
		return v > threshold
	case predicate.Ge:
		return v >= threshold
	case predicate.Lt:
		return v < threshold
	case predicate.Le:
		return v <= threshold
	default:
		return false
	}
}
