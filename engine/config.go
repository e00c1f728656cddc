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
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/csvrelic/queryengine/optimizer"
)

// Config configures a new Engine, mirroring the teacher's own
// Config-struct-plus-New pattern (engine.go's Config/New).
type Config struct {
	// StatsCachePath, when non-empty, backs the statistics loader with
	// a bolt database at this path so repeated runs over unchanged
	// CSV files skip re-scanning them (SPEC_FULL item 2).
	StatsCachePath string
	// OverridesPath, when non-empty, names a YAML file of hand-authored
	// TableStatistics that take precedence over anything the loader
	// scans (SPEC_FULL item 3) — useful for sizing a query plan against
	// a table that doesn't exist yet.
	OverridesPath string
	// Optimizer tunes the cost model and rewrite passes (SPEC_FULL
	// item 1's histogram refinement, in particular).
	Optimizer optimizer.Options
	// Logger receives structured logs of engine lifecycle and plan
	// decisions. Defaults to logrus.StandardLogger().
	Logger *logrus.Logger
	// Tracer receives per-operator spans when tracing is enabled.
	// Defaults to opentracing.NoopTracer{}.
	Tracer opentracing.Tracer
	// Trace, when true, attaches a trace.LogrusHook to every execution
	// so operator Open/Next/Close/Eval events are logged at Trace
	// level (design note in §9).
	Trace bool
}
