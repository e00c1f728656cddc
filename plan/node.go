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

// Package plan implements the streaming operators of §4: Scan,
// Filter, Project, Sink, and HashJoin. Per the "Runtime-typed operator
// tree" design note in §9, Node is modeled as a closed, five-member
// sum (Scan | Filter | Project | HashJoin | Sink) over which the
// optimizer pattern-matches exhaustively with a Go type switch instead
// of a class hierarchy with instanceof.
package plan

import "github.com/csvrelic/queryengine/operator"

// Node is an operator tree node. Every non-leaf's child subtrees are
// exclusively owned — trees, never DAGs (§3's sharing invariant) — so
// Clone must deep-copy rather than alias.
type Node interface {
	operator.Operator
	// Clone returns a fresh, independently-executable copy of this
	// subtree. Scan clones by path, not by re-reading the source file,
	// so cloning a whole plan stays cheap (§9, SPEC_FULL item 5).
	Clone() Node
	// Children returns this node's direct child subtrees, in order,
	// or nil for a leaf (Scan). Used by the optimizer's tree walks and
	// by the plan-printer.
	Children() []Node
}
