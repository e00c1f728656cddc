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
	"fmt"
	"strings"
)

// Describe renders node's tree as an indented, human-readable outline,
// one line per operator, for before/after optimizer comparisons and
// for debug logging (SPEC_FULL item 4). It never opens or touches the
// underlying data source.
func Describe(node Node) string {
	var b strings.Builder
	describe(&b, node, 0)
	return b.String()
}

func describe(b *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), describeSelf(node))
	for _, child := range node.Children() {
		describe(b, child, depth+1)
	}
}

func describeSelf(node Node) string {
	switch n := node.(type) {
	case *Scan:
		return fmt.Sprintf("Scan(%s)", n.Path())
	case *Filter:
		return fmt.Sprintf("Filter(%s)", n.Predicate)
	case *Project:
		if n.Distinct {
			return fmt.Sprintf("Project(distinct %s)", strings.Join(n.Columns, ", "))
		}
		return fmt.Sprintf("Project(%s)", strings.Join(n.Columns, ", "))
	case *HashJoin:
		return fmt.Sprintf("HashJoin(%s)", n.Predicate)
	case *Sink:
		return fmt.Sprintf("Sink(%s)", n.Path())
	default:
		return node.Name()
	}
}
