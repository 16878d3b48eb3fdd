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

// Package lexer splits text into the tokens of a [topdown] grammar.
package lexer

import (
	"iter"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/bufbuild/topdown"
	"github.com/bufbuild/topdown/internal/ext/iterx"
	"github.com/bufbuild/topdown/internal/ext/stringsx"
	"github.com/bufbuild/topdown/reporter"
)

// excerptWidth is how many columns of text a [reporter.LexerError] quotes.
const excerptWidth = 32

// DefaultBlanks are the characters skipped between tokens when
// [Config.Blanks] is nil.
var DefaultBlanks = []rune{' ', '\t'}

// Config is construction-time configuration for a [Lexer].
type Config[R any] struct {
	// If set, the built-in parenthesis kinds from [topdown.Parens] are
	// registered before anything else.
	Parens bool

	// Characters that may appear between tokens and are otherwise ignored.
	// If nil, [DefaultBlanks] is used; to disable blanks entirely, set this
	// to an empty, non-nil slice.
	Blanks []rune

	// The kind of the token appended to every token sequence. If nil, a new
	// kind from [topdown.EndKind] is used. Otherwise, [New] marks it with
	// [topdown.AsEnd].
	End *topdown.Kind[R]
}

// Lexer turns text into a sequence of tokens, using a [Registry] to decide
// which kind each token is.
//
// Registration is not safe to do concurrently with anything else. Once a
// lexer is set up, it may be used to lex from many goroutines at once.
type Lexer[R any] struct {
	registry    Registry[R]
	blanks      []rune
	end         *topdown.Kind[R]
	left, right *topdown.Kind[R]
}

// New returns a new lexer configured by config.
func New[R any](config Config[R]) *Lexer[R] {
	l := &Lexer[R]{
		blanks: config.Blanks,
		end:    config.End,
	}
	if l.blanks == nil {
		l.blanks = DefaultBlanks
	}
	if l.end == nil {
		l.end = topdown.EndKind[R]("End")
	} else {
		topdown.AsEnd(l.end)
	}
	if config.Parens {
		l.left, l.right = topdown.Parens[R]()
		l.registry.RegisterRegexp(l.left, mustAnchor(l.left.Pattern))
		l.registry.RegisterRegexp(l.right, mustAnchor(l.right.Pattern))
	}
	return l
}

// Registry returns the lexer's rules.
func (l *Lexer[R]) Registry() *Registry[R] {
	return &l.registry
}

// End returns the kind of token that terminates every sequence.
func (l *Lexer[R]) End() *topdown.Kind[R] {
	return l.end
}

// LeftParen returns the built-in left parenthesis kind, or nil if this lexer
// was not configured with [Config.Parens].
func (l *Lexer[R]) LeftParen() *topdown.Kind[R] {
	return l.left
}

// RightParen is like [Lexer.LeftParen], for the right parenthesis.
func (l *Lexer[R]) RightParen() *topdown.Kind[R] {
	return l.right
}

// RegisterToken registers kind with its own [topdown.Kind.Pattern].
func (l *Lexer[R]) RegisterToken(kind *topdown.Kind[R]) error {
	return l.registry.Register(kind, kind.Pattern)
}

// RegisterTokenPattern registers kind with an explicit pattern.
func (l *Lexer[R]) RegisterTokenPattern(kind *topdown.Kind[R], pattern string) error {
	return l.registry.Register(kind, pattern)
}

// RegisterTokens registers each of kinds with its own pattern, in order.
func (l *Lexer[R]) RegisterTokens(kinds ...*topdown.Kind[R]) error {
	for _, kind := range kinds {
		if err := l.RegisterToken(kind); err != nil {
			return err
		}
	}
	return nil
}

// Lex returns the tokens of text, lazily.
//
// At each position, the best rule from the registry produces the next
// token. Where no rule matches, a single blank character is skipped; any
// other character ends the sequence with a [reporter.LexerError]. A
// successful sequence always ends with exactly one token of the lexer's
// [Lexer.End] kind.
//
// The returned sequence may be iterated more than once; each iteration lexes
// text from the start.
func (l *Lexer[R]) Lex(text string) iter.Seq2[topdown.Token[R], error] {
	return func(yield func(topdown.Token[R], error) bool) {
		cursor := 0
		for cursor < len(text) {
			if kind, m, ok := l.registry.GetToken(text, cursor); ok {
				if !yield(kind.New(m.Text), nil) {
					return
				}
				cursor = m.End
				continue
			}

			if r, n := utf8.DecodeRuneInString(text[cursor:]); slices.Contains(l.blanks, r) {
				cursor += n
				continue
			}

			yield(topdown.Token[R]{}, &reporter.LexerError{
				Offset:  cursor,
				Char:    stringsx.Grapheme(text[cursor:]),
				Context: stringsx.Excerpt(text[cursor:], excerptWidth),
			})
			return
		}
		yield(l.end.New(""), nil)
	}
}

// Tokenize is like [Lexer.Lex], but collects the tokens into a slice.
func (l *Lexer[R]) Tokenize(text string) ([]topdown.Token[R], error) {
	return iterx.CollectErr(l.Lex(text))
}

// Parse lexes text and parses a single expression out of it.
func (l *Lexer[R]) Parse(text string, options ...topdown.ParserOption) (R, error) {
	p, err := topdown.NewParser(l.Lex(text), options...)
	if err != nil {
		var zero R
		return zero, err
	}
	defer p.Close()
	return p.Parse()
}

func mustAnchor(pattern string) *regexp.Regexp {
	return regexp.MustCompile(anchored(pattern))
}
