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

// Package catalog implements the statistics loader of §4 and §6: a
// mapping from table identity (source path) to TableStatistics,
// populated once before optimization and immutable thereafter (§5).
package catalog

import "github.com/csvrelic/queryengine/value"

// ColumnStatistics holds per-column statistics used by the optimizer's
// cardinality model (§4.8).
type ColumnStatistics struct {
	Min, Max value.Value
	Distinct uint64
	// Histogram holds equi-width bucket counts across [Min, Max], or
	// nil when not computed. Populated only for numeric columns by
	// the loader (SPEC_FULL item 1); never exact per-value counts
	// (that would be the Non-goal "exact histogram-based selectivity").
	Histogram []uint64
}

// TableStatistics carries the statistics for a single table (§3).
type TableStatistics struct {
	RowCount uint64
	Columns  map[string]ColumnStatistics
}

// Catalog maps table identity (source file path) to TableStatistics.
// It is read-only during optimization (§5); construct it once via a
// Loader before calling the optimizer.
type Catalog struct {
	tables map[string]TableStatistics
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]TableStatistics)}
}

// Put records stats for the table at path. Intended only for use by
// Loader and by test setup; once handed to Optimize, a Catalog must
// not be mutated further (§5).
func (c *Catalog) Put(path string, stats TableStatistics) {
	c.tables[path] = stats
}

// Lookup returns the statistics for path, if known.
func (c *Catalog) Lookup(path string) (TableStatistics, bool) {
	stats, ok := c.tables[path]
	return stats, ok
}

// Merge copies every entry of other into c, overwriting any existing
// entry for the same path. Used by the engine to let a hand-authored
// YAML override (SPEC_FULL item 3) take precedence over loader-scanned
// statistics for the tables it names.
func (c *Catalog) Merge(other *Catalog) {
	for path, stats := range other.tables {
		c.tables[path] = stats
	}
}
