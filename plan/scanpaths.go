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

// ScanPaths walks node's tree and returns the source path of every
// Scan leaf, in left-to-right order. The engine uses this to know
// which tables a catalog must have statistics for before optimizing.
func ScanPaths(node Node) []string {
	var paths []string
	var walk func(Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if s, ok := n.(*Scan); ok {
			paths = append(paths, s.Path())
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(node)
	return paths
}
