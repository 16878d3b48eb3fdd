// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

import (
	"errors"
	"sync"
)

// ErrInvalidInput is returned by a parse in the event that an error was
// encountered, but the configured ErrorReporter returned nil for it.
var ErrInvalidInput = errors.New("parse failed: invalid input")

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, that error is what the failed parse returns. If
// it returns nil, the parse still fails, with [ErrInvalidInput].
type ErrorReporter func(ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// are conditions that do not cause a parse to fail, such as tokens left
// unconsumed after a complete expression. Though they are just warnings,
// the details are supplied to the reporter via an error type.
type WarningReporter func(ErrorWithPos)

// Reporter receives the errors and warnings produced by a parse.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a [Reporter] out of a pair of functions. Either may be
// nil: a nil errs returns every error unchanged, and a nil warnings drops
// every warning.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler routes the outcome of a single parse to a [Reporter], remembering
// the first error it sees.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler returns a handler for rep. If rep is nil, errors are passed
// through unchanged and warnings are dropped.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleError records err. Errors that carry a position are passed to the
// reporter, whose result is returned. Once an error has been recorded, later
// calls return it without consulting the reporter again.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	var ewp ErrorWithPos
	if errors.As(err, &ewp) {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning passes a warning to the reporter.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	// no need for lock; warnings don't interact with mutable fields
	h.reporter.Warning(err)
}

// Error returns the error recorded by this handler, if any. If errors were
// reported but the reporter swallowed all of them, returns [ErrInvalidInput].
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidInput
	}
	return h.err
}
