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

// Package similartext formats a "did you mean" suggestion for a name
// that didn't resolve against a known set (a Project column), per §7's tolerance for resolution errors: the engine
// never fails on an unknown column, but a trace hook can still surface
// a likely typo to whoever is watching.
package similartext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csvrelic/queryengine/internal/text_distance"
)

// maxSuggestDistance bounds how different a candidate may be before
// it's no longer worth suggesting; beyond this the names have nothing
// meaningfully in common.
const maxSuggestDistance = 3

// Find returns a ", maybe you mean X?" suffix naming the candidate(s)
// in names at the smallest edit distance from name, provided that
// distance is at most maxSuggestDistance; it returns "" if name is
// empty, names is empty, or nothing is close enough.
func Find(names []string, name string) string {
	if name == "" || len(names) == 0 {
		return ""
	}

	best := maxSuggestDistance + 1
	var candidates []string
	for _, n := range names {
		d := text_distance.Distance(n, name)
		switch {
		case d < best:
			best = d
			candidates = []string{n}
		case d == best:
			candidates = append(candidates, n)
		}
	}
	if best > maxSuggestDistance {
		return ""
	}

	sort.Strings(candidates)
	return fmt.Sprintf(", maybe you mean %s?", joinOr(candidates))
}

// FindFromMap is Find over a map's keys.
func FindFromMap(names map[string]int, name string) string {
	if len(names) == 0 {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return Find(keys, name)
}

// joinOr renders ["a"] as "a", ["a","b"] as "a or b", and
// ["a","b","c"] as "a, b or c".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}
