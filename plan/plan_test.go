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

package plan

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/predicate"
	"github.com/csvrelic/queryengine/value"
)

func newCtx() *operator.Context {
	return operator.NewContext(context.Background())
}

func writeCSV(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func drain(t *testing.T, ctx *operator.Context, n Node) []value.Tuple {
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

func TestScanStreamsRowsInFileOrder(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer,name:string\n1,Ann\n2,Bob\n")

	s := NewScan(path)
	rows := drain(t, newCtx(), s)
	require.Len(rows, 2)
	require.Equal("Ann", rows[0].Get("name").String())
	require.Equal("Bob", rows[1].Get("name").String())
}

func TestScanNextAfterEOSStaysEOS(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer\n1\n")

	s := NewScan(path)
	ctx := newCtx()
	require.NoError(s.Open(ctx))
	_, err := s.Next(ctx)
	require.NoError(err)
	_, err = s.Next(ctx)
	require.Equal(io.EOF, err)
	_, err = s.Next(ctx)
	require.Equal(io.EOF, err)
	require.NoError(s.Close(ctx))
}

func TestScanNextBeforeOpenIsMisuse(t *testing.T) {
	s := NewScan("whatever.csv")
	_, err := s.Next(newCtx())
	require.Error(t, err)
}

func TestFilterPreservesOrderAndSchema(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")

	f := NewFilter(
		predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(30))),
		NewScan(path),
	)

	rows := drain(t, newCtx(), f)
	require.Len(rows, 2)
	require.Equal("Bob", rows[0].Get("name").String())
	require.Equal("Cal", rows[1].Get("name").String())
	require.Equal([]string{"id", "name", "age"}, f.Schema().Names())
}

// TestS1ScanFilterProjectSink implements scenario S1 from the spec.
func TestS1ScanFilterProjectSink(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")
	outPath := filepath.Join(dir, "out.csv")

	root := NewSink(outPath,
		NewProject([]string{"name"}, false,
			NewFilter(
				predicate.NewComparison(predicate.Col("age"), predicate.Gt, predicate.Lit(value.NewInt(30))),
				NewScan(path),
			),
		),
	)

	ctx := newCtx()
	require.NoError(root.Open(ctx))
	_, err := root.Next(ctx)
	require.Equal(io.EOF, err)
	require.NoError(root.Close(ctx))

	content, err := os.ReadFile(outPath)
	require.NoError(err)
	require.Equal("name\nBob\nCal\n", string(content))
}

func TestProjectDistinctFirstSeenOrder(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "people.csv",
		"id:integer,name:string\n1,Ann\n2,Ann\n3,Bob\n")

	p := NewProject([]string{"name"}, true, NewScan(path))
	rows := drain(t, newCtx(), p)
	require.Len(rows, 2)
	require.Equal("Ann", rows[0].Get("name").String())
	require.Equal("Bob", rows[1].Get("name").String())
}

func TestProjectUnknownColumnIsNull(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "people.csv", "id:integer\n1\n")

	p := NewProject([]string{"id", "ghost"}, false, NewScan(path))
	rows := drain(t, newCtx(), p)
	require.Len(rows, 1)
	require.True(rows[0].Get("ghost").IsNull())
}

type recordingHook struct {
	warnings []string
}

func (r *recordingHook) Open(string)       {}
func (r *recordingHook) Next(string, bool) {}
func (r *recordingHook) Close(string)      {}
func (r *recordingHook) Eval(string, bool) {}
func (r *recordingHook) Warn(op, message string) {
	r.warnings = append(r.warnings, message)
}

func TestProjectUnknownColumnSuggestsClosestName(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "people.csv", "id:integer,name:string\n1,Ann\n")

	p := NewProject([]string{"nam"}, false, NewScan(path))
	hook := &recordingHook{}
	ctx := newCtx().WithHook(hook)
	_ = drain(t, ctx, p)

	require.Len(hook.warnings, 1)
	require.Contains(hook.warnings[0], "unknown column nam")
	require.Contains(hook.warnings[0], "maybe you mean name?")
}

func setupJoinFixture(t *testing.T) (string, string) {
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")
	orders := writeCSV(t, dir, "orders.csv",
		"oid:integer,cid:integer\n10,2\n11,3\n12,9\n")
	return customers, orders
}

// TestS2HashJoin implements scenario S2 from the spec.
func TestS2HashJoin(t *testing.T) {
	require := require.New(t)
	customers, orders := setupJoinFixture(t)

	j := NewHashJoin(NewScan(customers), NewScan(orders), predicate.NewEqualityJoin("id", "cid"))
	p := NewProject([]string{"name", "oid"}, false, j)

	rows := drain(t, newCtx(), p)
	require.Len(rows, 2)

	got := map[string]int64{}
	for _, r := range rows {
		got[r.Get("name").String()] = r.Get("oid").Int()
	}
	require.Equal(int64(10), got["Bob"])
	require.Equal(int64(11), got["Cal"])
}

func TestHashJoinDuplicateBuildKeysCartesian(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	left := writeCSV(t, dir, "l.csv", "k:integer,v:string\n1,a\n1,b\n")
	right := writeCSV(t, dir, "r.csv", "k:integer,w:string\n1,x\n")

	j := NewHashJoin(NewScan(left), NewScan(right), predicate.NewEqualityJoin("k", "k"))
	rows := drain(t, newCtx(), j)
	require.Len(rows, 2)
}

func TestHashJoinNullKeysNeverMatch(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	left := writeCSV(t, dir, "l.csv", "k:integer,v:string\n,a\n1,b\n")
	right := writeCSV(t, dir, "r.csv", "k:integer,w:string\n,x\n1,y\n")

	j := NewHashJoin(NewScan(left), NewScan(right), predicate.NewEqualityJoin("k", "k"))
	rows := drain(t, newCtx(), j)
	require.Len(rows, 1)
	require.Equal("b", rows[0].Get("v").String())
	require.Equal("y", rows[0].Get("w").String())
}

func TestHashJoinCoercesIntAndDoubleKeys(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	left := writeCSV(t, dir, "l.csv", "k:integer,v:string\n2,a\n")
	right := writeCSV(t, dir, "r.csv", "k:double,w:string\n2.0,x\n")

	j := NewHashJoin(NewScan(left), NewScan(right), predicate.NewEqualityJoin("k", "k"))
	rows := drain(t, newCtx(), j)
	require.Len(rows, 1)
}

func TestCloneProducesIndependentTree(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer\n1\n2\n")

	original := NewFilter(
		predicate.NewComparison(predicate.Col("id"), predicate.Gt, predicate.Lit(value.NewInt(0))),
		NewScan(path),
	)
	clone := original.Clone()

	rows1 := drain(t, newCtx(), original)
	rows2 := drain(t, newCtx(), clone)
	require.Equal(len(rows1), len(rows2))
}
