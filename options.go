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

package topdown

import (
	"iter"

	"github.com/bufbuild/topdown/reporter"
)

// TrailingPolicy controls what [Parser.Parse] does when tokens remain
// between the parsed expression and the end of input.
type TrailingPolicy int

const (
	// Leave trailing tokens unconsumed and say nothing. Callers can still
	// check [Parser.Current] themselves.
	TrailingIgnore TrailingPolicy = iota

	// Report trailing tokens as a warning to the configured reporter, and
	// return the parsed value.
	TrailingWarn

	// Fail with an error wrapping [reporter.ErrInvalidToken].
	TrailingReject
)

// ParserOption is a function that configures a [Parser].
type ParserOption func(config *parserConfig)

// parserConfig holds configuration for parsers.
type parserConfig struct {
	trailing TrailingPolicy
	maxDepth int
	reporter reporter.Reporter
}

// WithTrailing sets the policy for tokens left over after a parse.
func WithTrailing(policy TrailingPolicy) ParserOption {
	return func(config *parserConfig) {
		config.trailing = policy
	}
}

// WithMaxDepth limits how deeply calls to [Parser.Expression] may nest.
//
// Nested expressions recurse on the goroutine's stack, so untrusted input
// can otherwise exhaust it. Zero, the default, means no limit.
func WithMaxDepth(depth int) ParserOption {
	return func(config *parserConfig) {
		config.maxDepth = depth
	}
}

// WithReporter sets where a parser's errors and warnings are sent.
func WithReporter(rep reporter.Reporter) ParserOption {
	return func(config *parserConfig) {
		config.reporter = rep
	}
}

// Tokens returns a token sequence over a fixed list of tokens, for parsing
// tokens that were not produced by a lexer.
func Tokens[R any](tokens ...Token[R]) iter.Seq2[Token[R], error] {
	return func(yield func(Token[R], error) bool) {
		for _, t := range tokens {
			if !yield(t, nil) {
				return
			}
		}
	}
}
