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

package lexer

import (
	"fmt"
	"iter"
	"regexp"

	"github.com/bufbuild/topdown"
)

// Match is the text a pattern matched, as byte offsets into the text that
// was searched.
type Match struct {
	Start, End int
	Text       string
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Entry is a single rule in a [Registry].
type Entry[R any] struct {
	Kind    *topdown.Kind[R]
	Pattern *regexp.Regexp
}

// Registry is an ordered list of (kind, pattern) rules.
//
// Order matters: when two rules match the same amount of text, the one
// registered first wins. A registry should not be modified while it is
// being used to lex.
type Registry[R any] struct {
	entries []Entry[R]
}

// Register compiles pattern and appends a rule for kind.
//
// The pattern only ever matches at the position being lexed, as if it began
// with \A. Registering a kind twice adds a second rule; both are tried.
//
// Patterns see only the text from the position being lexed onwards, never
// the text before it. So ^ and \A always match there, and \b and \B treat
// that position as the start of the text: `\bin` matches the "in" of
// "main" once "ma" has been consumed. Use ordering and longest-match to
// separate keywords from identifiers instead of relying on word boundaries.
func (r *Registry[R]) Register(kind *topdown.Kind[R], pattern string) error {
	re, err := regexp.Compile(anchored(pattern))
	if err != nil {
		return fmt.Errorf("lexer: invalid pattern for %v: %w", kind, err)
	}
	r.RegisterRegexp(kind, re)
	return nil
}

// RegisterRegexp appends a rule for kind using an already-compiled
// pattern. Matches of re that do not begin at the position being lexed are
// ignored. As with [Registry.Register], re sees only the text from that
// position onwards.
func (r *Registry[R]) RegisterRegexp(kind *topdown.Kind[R], re *regexp.Regexp) {
	r.entries = append(r.entries, Entry[R]{Kind: kind, Pattern: re})
}

// Len returns the number of registered rules.
func (r *Registry[R]) Len() int {
	return len(r.entries)
}

// All returns an iterator over the registered rules, in registration order.
func (r *Registry[R]) All() iter.Seq2[int, Entry[R]] {
	return func(yield func(int, Entry[R]) bool) {
		for i, e := range r.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// MatchingTokens returns an iterator over every rule whose pattern matches
// text at start, in registration order. Patterns are run against
// text[start:], so they cannot look behind start.
func (r *Registry[R]) MatchingTokens(text string, start int) iter.Seq2[*topdown.Kind[R], Match] {
	return func(yield func(*topdown.Kind[R], Match) bool) {
		if start < 0 || start > len(text) {
			return
		}
		rest := text[start:]
		for _, e := range r.entries {
			loc := e.Pattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			m := Match{Start: start, End: start + loc[1], Text: rest[:loc[1]]}
			if !yield(e.Kind, m) {
				return
			}
		}
	}
}

// GetToken selects the rule that should produce the token at start.
//
// The longest match wins. Among matches of equal length, the one registered
// first wins, which is what lets a keyword registered before an identifier
// pattern take priority over it. Empty matches never win, since they would
// not make progress.
func (r *Registry[R]) GetToken(text string, start int) (*topdown.Kind[R], Match, bool) {
	var (
		best  *topdown.Kind[R]
		match Match
	)
	for kind, m := range r.MatchingTokens(text, start) {
		if m.Len() > match.Len() {
			best, match = kind, m
		}
	}
	return best, match, best != nil
}

// anchored wraps pattern so that it can only match at the start of the text.
func anchored(pattern string) string {
	return `^(?:` + pattern + `)`
}
