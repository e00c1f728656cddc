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

// Package optimizer rewrites an operator tree into an equivalent one
// the engine expects to run faster, per §4.8: filter pushdown, filter
// merging, projection collapse, and cardinality-driven join
// reordering. Every pass produces a new tree rather than mutating the
// input, so a caller holding a reference to the original plan keeps a
// working, unoptimized copy.
package optimizer

import (
	"github.com/sirupsen/logrus"

	"github.com/csvrelic/queryengine/catalog"
	"github.com/csvrelic/queryengine/plan"
)

// Optimize runs the four rewrite passes of §4.8 in order: pushdown,
// merge, projection collapse, then join reordering. Reordering runs
// last because it estimates cardinalities from the already-pushed-down
// tree, which is the shape the executor will actually run.
func Optimize(node plan.Node, cat *catalog.Catalog, opts Options) plan.Node {
	node = pushDownFilters(node)
	node = mergeFilters(node)
	node = collapseProjections(node)
	node = reorderJoins(node, cat, opts)
	return node
}

// OptimizeLogged runs Optimize and logs the estimated cardinality of
// the rewritten root at debug level, matching the teacher's practice
// of logging plan-level decisions through logrus rather than printing
// to stdout (auth/audit.go, server/handler.go).
func OptimizeLogged(node plan.Node, cat *catalog.Catalog, opts Options, logger *logrus.Logger) plan.Node {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	out := Optimize(node, cat, opts)
	logger.WithField("estimated_rows", Cardinality(out, cat, opts)).Debug("optimizer: plan rewritten")
	return out
}
