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
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/plan"
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

func TestBuilderScanFilterProjectSink(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")
	out := filepath.Join(dir, "out.csv")

	node, err := Scan(path).
		Filter("age > 30").
		Project("name").
		Sink(out).
		Build()
	require.NoError(err)

	rows := drain(t, node)
	require.Empty(rows)

	content, err := os.ReadFile(out)
	require.NoError(err)
	require.Equal("name\nBob\nCal\n", string(content))
}

func TestBuilderJoin(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string\n1,Ann\n2,Bob\n")
	orders := writeCSV(t, dir, "orders.csv",
		"oid:integer,cid:integer\n10,2\n")

	node, err := Scan(customers).
		Join(Scan(orders), "id = cid").
		Project("name", "oid").
		Build()
	require.NoError(err)

	rows := drain(t, node)
	require.Len(rows, 1)
	require.Equal("Bob", rows[0].Get("name").String())
	require.Equal(int64(10), rows[0].Get("oid").Int())
}

func TestBuilderJoinAcceptsReversedColumnOrder(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv", "id:integer,name:string\n1,Ann\n")
	orders := writeCSV(t, dir, "orders.csv", "oid:integer,cid:integer\n5,1\n")

	node, err := Scan(customers).
		Join(Scan(orders), "cid = id").
		Build()
	require.NoError(err)

	rows := drain(t, node)
	require.Len(rows, 1)
}

func TestBuilderJoinRejectsNonEquality(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv", "id:integer\n1\n")
	orders := writeCSV(t, dir, "orders.csv", "cid:integer\n1\n")

	_, err := Scan(customers).Join(Scan(orders), "id > cid").Build()
	require.Error(err)
}

func TestBuilderFilterRejectsMalformedText(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer\n1\n")

	_, err := Scan(path).Filter("id >").Build()
	require.Error(err)
}

func TestBuilderProjectDistinct(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "people.csv", "id:integer,name:string\n1,Ann\n2,Ann\n3,Bob\n")

	node, err := Scan(path).ProjectDistinct("name").Build()
	require.NoError(err)

	rows := drain(t, node)
	require.Len(rows, 2)
}

func TestBuilderErrorShortCircuitsLaterCalls(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer\n1\n")

	_, err := Scan(path).Filter("bad grammar here").Project("id").Sink("out.csv").Build()
	require.Error(err)
}
