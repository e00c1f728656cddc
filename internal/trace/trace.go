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

// Package trace reinterprets the source system's open/next/close and
// predicate-evaluation logging requirement (design note in §9) as a
// structural hook: a Hook receives these events and a production
// build can swap in NoopHook to pay nothing for them.
package trace

import (
	"github.com/sirupsen/logrus"
)

// Hook receives structural lifecycle and evaluation events from the
// operator tree. Implementations must not block.
type Hook interface {
	Open(operator string)
	Next(operator string, producedRow bool)
	Close(operator string)
	Eval(predicate string, result bool)
	// Warn surfaces a non-fatal resolution tolerance (§7): the engine
	// keeps running, but something looked like a typo.
	Warn(operator, message string)
}

// NoopHook discards every event; it is the default for production
// engines that don't want tracing overhead.
type NoopHook struct{}

func (NoopHook) Open(string)       {}
func (NoopHook) Next(string, bool) {}
func (NoopHook) Close(string)      {}
func (NoopHook) Eval(string, bool) {}
func (NoopHook) Warn(string, string) {}

// LogrusHook logs Open/Next/Close/Eval events at Trace level and Warn
// events at Warn level through a *logrus.Logger,
// matching the teacher's practice of threading a logrus logger through
// session/audit machinery (auth/audit.go's MysqlAudit).
type LogrusHook struct {
	Logger *logrus.Logger
}

// NewLogrusHook builds a LogrusHook; a nil logger falls back to
// logrus.StandardLogger().
func NewLogrusHook(logger *logrus.Logger) *LogrusHook {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusHook{Logger: logger}
}

func (h *LogrusHook) Open(operator string) {
	h.Logger.WithField("operator", operator).Trace("open")
}

func (h *LogrusHook) Next(operator string, producedRow bool) {
	h.Logger.WithFields(logrus.Fields{
		"operator": operator,
		"produced": producedRow,
	}).Trace("next")
}

func (h *LogrusHook) Close(operator string) {
	h.Logger.WithField("operator", operator).Trace("close")
}

func (h *LogrusHook) Eval(predicate string, result bool) {
	h.Logger.WithFields(logrus.Fields{
		"predicate": predicate,
		"result":    result,
	}).Trace("eval")
}

func (h *LogrusHook) Warn(operator, message string) {
	h.Logger.WithField("operator", operator).Warn(message)
}
