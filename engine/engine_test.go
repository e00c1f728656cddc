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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csvrelic/queryengine/planbuilder"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecuteScanFilterProjectSink(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string,age:integer\n1,Ann,25\n2,Bob,40\n3,Cal,35\n")
	out := filepath.Join(dir, "out.csv")

	node, err := planbuilder.Scan(path).
		Filter("age > 30").
		Project("name").
		Sink(out).
		Build()
	require.NoError(err)

	e, err := New(Config{})
	require.NoError(err)
	defer e.Close()

	result, err := e.Execute(context.Background(), node)
	require.NoError(err)
	require.Equal(0, result.RowsOut) // Sink's single Next drains everything, then reports EOS

	content, err := os.ReadFile(out)
	require.NoError(err)
	require.Equal("name\nBob\nCal\n", string(content))
}

func TestExecuteReportsRowCountForNonSinkRoot(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	path := writeCSV(t, dir, "c.csv", "id:integer\n1\n2\n3\n")

	node, err := planbuilder.Scan(path).Build()
	require.NoError(err)

	e, err := New(Config{})
	require.NoError(err)
	defer e.Close()

	result, err := e.Execute(context.Background(), node)
	require.NoError(err)
	require.Equal(3, result.RowsOut)
}

func TestExecuteWithStatsCache(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	customers := writeCSV(t, dir, "customers.csv",
		"id:integer,name:string\n1,Ann\n2,Bob\n")
	orders := writeCSV(t, dir, "orders.csv",
		"oid:integer,cid:integer\n10,2\n")

	node, err := planbuilder.Scan(customers).
		Join(planbuilder.Scan(orders), "id = cid").
		Project("name", "oid").
		Build()
	require.NoError(err)

	e, err := New(Config{StatsCachePath: filepath.Join(dir, "stats.db")})
	require.NoError(err)
	defer e.Close()

	result, err := e.Execute(context.Background(), node)
	require.NoError(err)
	require.Equal(1, result.RowsOut)
}
