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

package optimizer

// Options tunes the optimizer's cost model and rewrite passes.
type Options struct {
	// HistogramSelectivity enables the equi-width histogram refinement
	// of comparisonSelectivity (SPEC_FULL item 1) when a catalog entry
	// carries a populated Histogram. Off by default: the spec's
	// literal test scenarios (S3-S6) are written against the flat
	// 0.3/0.1 baseline, so enabling this can change join-reordering
	// decisions relative to those scenarios.
	HistogramSelectivity bool
}

// DefaultOptions returns the baseline behavior described in §4.8.
func DefaultOptions() Options {
	return Options{}
}
