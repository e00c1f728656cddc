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

// Raw exposes Value's payload fields so external packages (the
// catalog's bolt cache) can serialize a Value without this package
// needing to know about gob, json, or yaml.
func (v Value) Raw() (kind Kind, i int64, f float64, s string) {
	return v.kind, v.i, v.f, v.s
}

// FromRaw reconstructs a Value from the fields Raw exposed.
func FromRaw(kind Kind, i int64, f float64, s string) Value {
	return Value{kind: kind, i: i, f: f, s: s}
}
