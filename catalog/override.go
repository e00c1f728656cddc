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

package catalog

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/csvrelic/queryengine/value"
)

// yamlOverrideFile is the on-disk shape of a hand-authored statistics
// override (SPEC_FULL item 3): a caller supplies TableStatistics for
// a table path the loader hasn't (or can't yet) scan.
type yamlOverrideFile struct {
	Tables map[string]yamlTableOverride `yaml:"tables"`
}

type yamlTableOverride struct {
	RowCount uint64                        `yaml:"row_count"`
	Columns  map[string]yamlColumnOverride `yaml:"columns"`
}

type yamlColumnOverride struct {
	Type     string `yaml:"type"`
	Min      string `yaml:"min"`
	Max      string `yaml:"max"`
	Distinct uint64 `yaml:"distinct"`
}

// LoadYAMLOverrides reads a YAML override file and returns a Catalog
// populated from it. The caller typically merges this with a
// Loader-scanned Catalog via Catalog.Merge, letting overrides take
// precedence for tables named in the file.
func LoadYAMLOverrides(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yamlOverrideFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cat := NewCatalog()
	for tablePath, tbl := range doc.Tables {
		cols := make(map[string]ColumnStatistics, len(tbl.Columns))
		for name, col := range tbl.Columns {
			kind := parseKindName(col.Type)
			cols[name] = ColumnStatistics{
				Min:      value.ParseCell(col.Min, kind),
				Max:      value.ParseCell(col.Max, kind),
				Distinct: col.Distinct,
			}
		}
		cat.Put(tablePath, TableStatistics{RowCount: tbl.RowCount, Columns: cols})
	}
	return cat, nil
}

func parseKindName(name string) value.Kind {
	switch name {
	case "integer":
		return value.Int
	case "double":
		return value.Float
	default:
		return value.String
	}
}
