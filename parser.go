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

// Parser runs the top-down operator precedence algorithm over a sequence of
// tokens.
//
// The only state a parser keeps is a cursor: the current token and the
// number of times the cursor has moved. The cursor never moves backwards, so
// re-parsing requires a fresh token sequence and a fresh parser.
//
// A Parser is not safe for concurrent use.
type Parser[R any] struct {
	next func() (Token[R], error, bool)
	stop func()

	current  Token[R]
	position int
	depth    int

	trailing TrailingPolicy
	maxDepth int
	handler  *reporter.Handler
}

// NewParser returns a parser that pulls tokens from seq.
//
// The first token is pulled immediately; if seq is empty, this fails with an
// error wrapping [reporter.ErrMissingTokens]. Errors yielded by seq (such as
// a [reporter.LexerError]) are returned as-is from whichever call advances
// onto them. Failures here are passed to the reporter given by
// [WithReporter], the same way [Parser.Parse] does.
//
// Callers should call [Parser.Close] once they are done with the parser.
func NewParser[R any](seq iter.Seq2[Token[R], error], options ...ParserOption) (*Parser[R], error) {
	var config parserConfig
	for _, option := range options {
		option(&config)
	}

	next, stop := iter.Pull2(seq)
	p := &Parser[R]{
		next:     next,
		stop:     stop,
		trailing: config.trailing,
		maxDepth: config.maxDepth,
		handler:  reporter.NewHandler(config.reporter),
	}

	first, err, ok := next()
	if !ok {
		err = reporter.MissingTokens(0, "no tokens provided")
	}
	if err != nil {
		stop()
		return nil, p.fail(err)
	}
	p.current = first
	return p, nil
}

// Current returns the token under the cursor.
func (p *Parser[R]) Current() Token[R] {
	return p.current
}

// Position returns the number of times the cursor has advanced.
func (p *Parser[R]) Position() int {
	return p.position
}

// Close releases the underlying token sequence. The parser must not be
// advanced afterwards.
func (p *Parser[R]) Close() {
	p.stop()
}

// Advance moves the cursor forward and returns the token it was on.
//
// If expect is not nil, the current token must be of that kind, otherwise
// this fails with an error wrapping [reporter.ErrInvalidToken] and the cursor
// does not move.
//
// The cursor never moves past an end-of-input token: advancing from one
// returns it and leaves it current. Running out of tokens anywhere else
// means the sequence was not terminated, and fails with an error wrapping
// [reporter.ErrMissingTokens].
func (p *Parser[R]) Advance(expect *Kind[R]) (Token[R], error) {
	if expect != nil && !p.current.Is(expect) {
		return Token[R]{}, reporter.InvalidToken(p.position,
			"got %v, expected %v", p.current, expect)
	}

	prev := p.current
	next, err, ok := p.next()
	switch {
	case !ok && prev.Kind().IsEnd():
		return prev, nil
	case !ok:
		return Token[R]{}, reporter.MissingTokens(p.position,
			"unexpected end of token stream")
	case err != nil:
		return Token[R]{}, err
	}

	p.current = next
	p.position++
	return prev, nil
}

// Expression parses an expression whose operators all bind tighter than
// rbp, the right binding power of whatever is to the left of it.
//
// A token's prefix rule produces the leftmost operand; then, for as long as
// the current token's binding power exceeds rbp, that token's infix rule
// folds it into a larger expression. Infix rules typically recurse with
// their own binding power, which makes operators left-associative; passing
// one less makes them right-associative.
func (p *Parser[R]) Expression(rbp int) (R, error) {
	var zero R

	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return zero, reporter.TooDeep(p.position, p.maxDepth)
	}

	t, err := p.Advance(nil)
	if err != nil {
		return zero, err
	}
	left, err := t.Prefix(p)
	if err != nil {
		return zero, err
	}

	for rbp < p.current.BindingPower() {
		t, err := p.Advance(nil)
		if err != nil {
			return zero, err
		}
		left, err = t.Infix(left, p)
		if err != nil {
			return zero, err
		}
	}
	return left, nil
}

// Parse parses a single top-level expression.
//
// What happens to tokens left over afterwards depends on the parser's
// [TrailingPolicy]. Errors are routed through the reporter configured with
// [WithReporter], if any.
func (p *Parser[R]) Parse() (R, error) {
	value, err := p.Expression(0)
	if err == nil {
		err = p.checkTrailing()
	}
	if err == nil {
		return value, nil
	}

	var zero R
	return zero, p.fail(err)
}

// fail passes err to the reporter and returns the error the caller should
// see. This is never nil, even if the reporter swallows err.
func (p *Parser[R]) fail(err error) error {
	if reported := p.handler.HandleError(err); reported != nil {
		return reported
	}
	return p.handler.Error()
}

func (p *Parser[R]) checkTrailing() error {
	if p.current.Kind().IsEnd() {
		return nil
	}

	switch p.trailing {
	case TrailingWarn:
		p.handler.HandleWarning(reporter.InvalidToken(p.position,
			"unexpected trailing token %v", p.current))
	case TrailingReject:
		return reporter.InvalidToken(p.position,
			"unexpected trailing token %v", p.current)
	}
	return nil
}
