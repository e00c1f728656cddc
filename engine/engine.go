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

// Package engine ties the catalog loader, optimizer, and operator
// tree into the single driver a caller actually wants: hand it an
// unoptimized plan, get back the row count it produced and the plan
// it actually ran (§6's Executor interface).
package engine

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/csvrelic/queryengine/catalog"
	"github.com/csvrelic/queryengine/internal/trace"
	"github.com/csvrelic/queryengine/operator"
	"github.com/csvrelic/queryengine/optimizer"
	"github.com/csvrelic/queryengine/plan"
)

// Engine owns a statistics loader (and its cache, if configured) and
// drives plan execution against it. Call Close when done, to release
// the loader's bolt handle, matching the teacher's own
// Engine.Close()/BackgroundThreads.Shutdown() lifecycle.
type Engine struct {
	cfg    Config
	loader *catalog.Loader
	logger *logrus.Logger
	tracer opentracing.Tracer
}

// New builds an Engine from cfg.
func New(cfg Config) (*Engine, error) {
	loader, err := catalog.NewCachedLoader(cfg.StatsCachePath)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}

	return &Engine{cfg: cfg, loader: loader, logger: logger, tracer: tracer}, nil
}

// Close releases the Engine's statistics cache handle.
func (e *Engine) Close() error {
	return e.loader.Close()
}

// Result reports what a single Execute call did.
type Result struct {
	// RowsOut is the number of rows the optimized plan's root produced.
	RowsOut int
	// Plan is the tree actually executed, after optimization — useful
	// for logging or Describe-ing alongside the input plan.
	Plan plan.Node
}

// Execute builds a Catalog from every Scan the plan touches (merging
// in cfg.OverridesPath when configured), optimizes the plan against
// it, runs it to completion, and reports the result (§6).
func (e *Engine) Execute(ctx context.Context, root plan.Node) (Result, error) {
	cat, err := e.buildCatalog(root)
	if err != nil {
		return Result{}, err
	}

	optimized := optimizer.OptimizeLogged(root, cat, e.cfg.Optimizer, e.logger)

	opCtx := operator.NewContext(ctx).WithTracer(e.tracer)
	if e.cfg.Trace {
		opCtx = opCtx.WithHook(trace.NewLogrusHook(e.logger))
	}

	if err := optimized.Open(opCtx); err != nil {
		return Result{}, err
	}
	rows := 0
	for {
		if _, err := optimized.Next(opCtx); err != nil {
			if err == operator.EOS {
				break
			}
			_ = optimized.Close(opCtx)
			return Result{}, err
		}
		rows++
	}
	if err := optimized.Close(opCtx); err != nil {
		return Result{}, err
	}

	return Result{RowsOut: rows, Plan: optimized}, nil
}

func (e *Engine) buildCatalog(root plan.Node) (*catalog.Catalog, error) {
	cat, err := e.loader.LoadAll(plan.ScanPaths(root))
	if err != nil {
		return nil, err
	}

	if e.cfg.OverridesPath != "" {
		overrides, err := catalog.LoadYAMLOverrides(e.cfg.OverridesPath)
		if err != nil {
			return nil, err
		}
		cat.Merge(overrides)
	}

	return cat, nil
}
