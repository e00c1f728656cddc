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
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csvrelic/queryengine/catalog"
	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/plan"
	"github.com/csvrelic/queryengine/predicate"
	"github.com/csvrelic/queryengine/value"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func drain(t *testing.T, n plan.Node) []value.Tuple {
	ctx := operator.NewContext(context.Background())
	require.NoError(t, n.Open(ctx))
	var rows []value.Tuple
	for {
		row, err := n.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
	require.NoError(t, n.Close(ctx))
	return rows
}

// TestS3FilterPushesBelowJoin implements scenario S3: a filter above a
// join whose predicate only touches one side's columns moves onto
// that side, leaving the join's output schema and row set unchanged.
func TestS3FilterPushesBelowJoin(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")
	orders := writeCSV(t, dir, "orders.csv",
		"oid:integer,cid:integer\n10,2\n11,3\n12,9\n")

	join := plan.NewHashJoin(plan.NewScan(customers), plan.NewScan(orders), predicate.NewEqualityJoin("id", "cid"))
	root := plan.NewFilter(
		predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(30))),
		join,
	)

	optimized := Optimize(root, catalog.NewCatalog(), DefaultOptions())

	hj, ok := optimized.(*plan.HashJoin)
	require.True(ok, "filter should have been pushed entirely below the join: %s", plan.Describe(optimized))

	left, ok := hj.Left.(*plan.Filter)
	require.True(ok, "age filter should sit directly above the customers scan")
	require.Equal("age > 30", left.Predicate.String())

	rows := drain(t, optimized)
	got := map[string]int64{}
	for _, r := range rows {
		got[r.Get("name").String()] = r.Get("oid").Int()
	}
	require.Equal(int64(11), got["Cal"])
	bobOID, hasBob := got["Bob"]
	require.True(hasBob, "Bob is 40 (passes age filter) and matches order 10")
	require.Equal(int64(10), bobOID)
}

// TestS4JoinReordersOnCardinality implements scenario S4: when the
// catalog reports the right input as far smaller than the left, the
// optimizer swaps build and probe sides so the smaller table builds.
func TestS4JoinReordersOnCardinality(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	big := writeCSV(t, dir, "big.csv", "k:integer,v:string\n1,a\n2,b\n")
	small := writeCSV(t, dir, "small.csv", "k:integer,w:string\n1,x\n")

	cat := catalog.NewCatalog()
	cat.Put(big, catalog.TableStatistics{RowCount: 1000000})
	cat.Put(small, catalog.TableStatistics{RowCount: 1})

	join := plan.NewHashJoin(plan.NewScan(big), plan.NewScan(small), predicate.NewEqualityJoin("k", "k"))
	optimized := Optimize(join, cat, DefaultOptions())

	hj, ok := optimized.(*plan.HashJoin)
	require.True(ok)
	leftScan, ok := hj.Left.(*plan.Scan)
	require.True(ok)
	require.Equal(small, leftScan.Path(), "the smaller table should end up on the build (left) side")
	require.Equal("k", hj.Predicate.Left)
	require.Equal("k", hj.Predicate.Right)

	rows := drain(t, optimized)
	require.Len(rows, 1)
}

// TestS5FilterMergeConjunctOrder implements scenario S5: two stacked
// filters collapse into one AndPredicate, evaluating the outer
// (nearer-to-root) conjunct first.
func TestS5FilterMergeConjunctOrder(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer,age:integer\n1,25\n2,40\n3,35\n")

	inner := plan.NewFilter(
		predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(30))),
		plan.NewScan(path),
	)
	outer := plan.NewFilter(
		predicate.NewComparison(predicate.Col("id"), predicate.Ne, predicate.Lit(value.NewInt(2))),
		inner,
	)

	optimized := Optimize(outer, catalog.NewCatalog(), DefaultOptions())

	f, ok := optimized.(*plan.Filter)
	require.True(ok)
	require.Equal("(id != 2 AND age > 30)", f.Predicate.String())

	scan, ok := f.Child.(*plan.Scan)
	require.True(ok, "merged filter should sit directly above the scan, not stacked")
	require.Equal(path, scan.Path())

	rows := drain(t, optimized)
	require.Len(rows, 1)
	require.Equal(int64(3), rows[0].Get("id").Int())
}

func TestProjectionCollapseElidesPassthrough(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer,name:string\n1,Ann\n")

	root := plan.NewProject([]string{"id", "name"}, false, plan.NewScan(path))
	optimized := Optimize(root, catalog.NewCatalog(), DefaultOptions())

	_, isScan := optimized.(*plan.Scan)
	require.True(isScan, "a full-schema, non-distinct project is a no-op and should be elided: %s", plan.Describe(optimized))
}

func TestProjectionCollapseStacked(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer,name:string,age:integer\n1,Ann,25\n")

	inner := plan.NewProject([]string{"id", "name"}, false, plan.NewScan(path))
	outer := plan.NewProject([]string{"name"}, false, inner)

	optimized := Optimize(outer, catalog.NewCatalog(), DefaultOptions())

	p, ok := optimized.(*plan.Project)
	require.True(ok)
	require.Equal([]string{"name"}, p.Columns)
	_, isScan := p.Child.(*plan.Scan)
	require.True(isScan, "the intermediate project should have collapsed away")
}

func TestProjectionCollapsePreservesDistinctBoundary(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer,name:string\n1,Ann\n2,Ann\n")

	inner := plan.NewProject([]string{"name", "id"}, true, plan.NewScan(path))
	outer := plan.NewProject([]string{"name"}, false, inner)

	optimized := Optimize(outer, catalog.NewCatalog(), DefaultOptions())

	p, ok := optimized.(*plan.Project)
	require.True(ok)
	require.Equal([]string{"name"}, p.Columns)
	inner2, ok := p.Child.(*plan.Project)
	require.True(ok, "a distinct project must never collapse away, since that would change which rows survive dedup")
	require.True(inner2.Distinct)
}

func TestCardinalityFallsBackToUnknownTable(t *testing.T) {
	require := require.New(t)
	s := plan.NewScan("nonexistent.csv")
	require.Equal(uint64(unknownCardinality), Cardinality(s, catalog.NewCatalog(), DefaultOptions()))
}

func TestCardinalityUsesCatalogRowCount(t *testing.T) {
	require := require.New(t)
	s := plan.NewScan("t.csv")
	cat := catalog.NewCatalog()
	cat.Put("t.csv", catalog.TableStatistics{RowCount: 42})
	require.Equal(uint64(42), Cardinality(s, cat, DefaultOptions()))
}

func TestHistogramSelectivityRefinesRangeFilter(t *testing.T) {
	require := require.New(t)
	cat := catalog.NewCatalog()
	cat.Put("t.csv", catalog.TableStatistics{
		RowCount: 100,
		Columns: map[string]catalog.ColumnStatistics{
			"age": {
				Min:       value.NewInt(0),
				Max:       value.NewInt(100),
				Histogram: []uint64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
			},
		},
	})

	filterNode := plan.NewFilter(
		predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(50))),
		plan.NewScan("t.csv"),
	)

	sel := selectivity(filterNode.Predicate, filterNode, cat, Options{HistogramSelectivity: true})
	require.InDelta(0.5, sel, 0.01)
}

func TestHistogramSelectivityFallsBackWithoutHistogram(t *testing.T) {
	require := require.New(t)
	cat := catalog.NewCatalog()
	cat.Put("t.csv", catalog.TableStatistics{RowCount: 100})

	filterNode := plan.NewFilter(
		predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(50))),
		plan.NewScan("t.csv"),
	)

	sel := selectivity(filterNode.Predicate, filterNode, cat, Options{HistogramSelectivity: true})
	require.Equal(comparisonSelectivity, sel)
}
