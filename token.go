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
	"fmt"

	"github.com/bufbuild/topdown/reporter"
)

// Kind is a token variant: the unit a grammar is written in terms of.
//
// Kinds are compared by identity, so a grammar should create each of its
// kinds once and share the pointer between the lexer registration and any
// [Parser.Advance] checks.
//
// The zero value of every field is meaningful: a kind with no Prefix
// cannot start an expression, a kind with no Infix cannot continue one, and
// a kind with zero binding power never pulls in a left operand.
type Kind[R any] struct {
	// Name is used when printing tokens and in diagnostics.
	Name string

	// Pattern is the regular expression used when this kind is registered
	// without an explicit pattern.
	Pattern string

	// BindingPower is the left binding power shared by all tokens of this
	// kind. Higher values bind tighter.
	BindingPower int

	// Prefix is called when a token of this kind begins an expression
	// (Pratt's "nud"). The parser's current token is the one following t.
	Prefix func(t Token[R], p *Parser[R]) (R, error)

	// Infix is called when a token of this kind follows an already-parsed
	// left operand (Pratt's "led"). The parser's current token is the one
	// following t.
	Infix func(t Token[R], left R, p *Parser[R]) (R, error)

	end bool
}

// New returns a token of this kind with the given text.
func (k *Kind[R]) New(text string) Token[R] {
	return Token[R]{kind: k, text: text, power: k.BindingPower}
}

// IsEnd returns whether this kind was created by [EndKind] or marked with
// [AsEnd].
func (k *Kind[R]) IsEnd() bool {
	return k != nil && k.end
}

func (k *Kind[R]) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.Name
}

// Token is a single lexical unit: a kind plus the exact text it matched.
//
// Tokens are immutable values.
type Token[R any] struct {
	kind  *Kind[R]
	text  string
	power int
}

// Kind returns this token's kind. Returns nil for the zero token.
func (t Token[R]) Kind() *Kind[R] {
	return t.kind
}

// Text returns the text this token was created from.
func (t Token[R]) Text() string {
	return t.text
}

// BindingPower returns this token's left binding power.
func (t Token[R]) BindingPower() int {
	return t.power
}

// WithBindingPower returns a copy of t with a different binding power. This
// is for grammars whose precedence depends on more than the kind.
func (t Token[R]) WithBindingPower(power int) Token[R] {
	t.power = power
	return t
}

// Is returns whether t is of the given kind.
func (t Token[R]) Is(kind *Kind[R]) bool {
	return t.kind != nil && t.kind == kind
}

// IsZero returns whether this is the zero token.
func (t Token[R]) IsZero() bool {
	return t.kind == nil
}

// Prefix runs this token's prefix rule.
func (t Token[R]) Prefix(p *Parser[R]) (R, error) {
	if t.kind == nil || t.kind.Prefix == nil {
		var zero R
		return zero, reporter.InvalidToken(p.Position(),
			"token %v cannot start an expression", t)
	}
	return t.kind.Prefix(t, p)
}

// Infix runs this token's infix rule.
func (t Token[R]) Infix(left R, p *Parser[R]) (R, error) {
	if t.kind == nil || t.kind.Infix == nil {
		var zero R
		return zero, reporter.InvalidToken(p.Position(),
			"token %v cannot continue an expression", t)
	}
	return t.kind.Infix(t, left, p)
}

// String implements [fmt.Stringer].
func (t Token[R]) String() string {
	if t.kind.IsEnd() {
		return fmt.Sprintf("<%s>", t.kind)
	}
	return fmt.Sprintf("<%s: %q>", t.kind, t.text)
}

// Parens returns a fresh pair of parenthesis kinds.
//
// The left kind's prefix rule parses a nested expression and then requires
// the right kind to follow it, returning the nested result unchanged. The
// right kind has no rules of its own; it only exists to be consumed by the
// left one.
func Parens[R any]() (left, right *Kind[R]) {
	right = &Kind[R]{Name: ")", Pattern: `\)`}
	left = &Kind[R]{
		Name:    "(",
		Pattern: `\(`,
		Prefix: func(_ Token[R], p *Parser[R]) (R, error) {
			expr, err := p.Expression(0)
			if err != nil {
				return expr, err
			}
			if _, err := p.Advance(right); err != nil {
				var zero R
				return zero, err
			}
			return expr, nil
		},
	}
	return left, right
}

// EndKind returns a new end-of-input kind with the given name.
//
// Every token sequence ends with exactly one token of an end kind. It has
// binding power zero, so it always stops the infix loop; reaching it in
// prefix or infix position means the input ended too early. Callers may
// replace the Prefix and Infix rules before the kind is used.
func EndKind[R any](name string) *Kind[R] {
	return &Kind[R]{
		Name: name,
		Prefix: func(_ Token[R], p *Parser[R]) (R, error) {
			var zero R
			return zero, reporter.MissingTokens(p.Position(), "no tokens to parse")
		},
		Infix: func(_ Token[R], _ R, p *Parser[R]) (R, error) {
			var zero R
			return zero, reporter.MissingTokens(p.Position(),
				"unexpected end of input while continuing an expression")
		},
		end: true,
	}
}

// AsEnd marks k as an end kind and returns it. The parser treats tokens of
// an end kind as the end of input: they are not trailing tokens, and the
// cursor stays on them once the sequence runs out.
//
// Unlike [EndKind], this keeps k's own rules.
func AsEnd[R any](k *Kind[R]) *Kind[R] {
	k.end = true
	return k
}
