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

package value

import "github.com/csvrelic/queryengine/internal/qerrors"

// Column is one (name, type) pair of a Schema.
type Column struct {
	Name string
	Type Kind
}

// Schema is an ordered sequence of columns. Column names are assumed
// globally unique across all input tables (a system-wide invariant;
// the engine does not police it beyond the per-table duplicate check
// done at scan/catalog time).
type Schema struct {
	Columns []Column
}

// NewSchema validates that no column name repeats within this single
// table's schema and returns the constructed Schema.
func NewSchema(cols []Column) (Schema, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c.Name]; ok {
			return Schema{}, qerrors.ErrDuplicateColumn.New(c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return Schema{Columns: cols}, nil
}

// Arity is the number of columns.
func (s Schema) Arity() int { return len(s.Columns) }

// IndexOf returns the position of the named column, or -1 if absent.
func (s Schema) IndexOf(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Concat returns a new schema that is the ordered concatenation of s
// and other, used by HashJoinOperator to build its output schema
// (§4.6: "concatenation of left schema then right schema").
func (s Schema) Concat(other Schema) Schema {
	cols := make([]Column, 0, len(s.Columns)+len(other.Columns))
	cols = append(cols, s.Columns...)
	cols = append(cols, other.Columns...)
	return Schema{Columns: cols}
}

// Project returns a new schema restricted to, and reordered by, names.
// Unknown names are surfaced as a String-typed column holding nulls,
// matching ProjectOperator's documented tolerance (§4.4, §7).
func (s Schema) Project(names []string) Schema {
	cols := make([]Column, len(names))
	for i, n := range names {
		if idx := s.IndexOf(n); idx >= 0 {
			cols[i] = s.Columns[idx]
		} else {
			cols[i] = Column{Name: n, Type: String}
		}
	}
	return Schema{Columns: cols}
}
