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

// Package grammars contains small grammars built on package topdown. They
// serve as worked examples and as test fixtures for the parser and lexer.
package grammars

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints" //nolint:exptostd // Needs Integer, which cmp lacks.

	"github.com/bufbuild/topdown"
	"github.com/bufbuild/topdown/lexer"
)

// Binding powers shared by the grammars in this package.
const (
	PowerAssign  = 5
	PowerEqual   = 7
	PowerSum     = 10
	PowerProduct = 20
	PowerNegate  = 25
	PowerPower   = 30
	PowerCall    = 40
)

var (
	// ErrDivideByZero is returned when evaluating x / 0.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNegativeExponent is returned when evaluating x ^ y for y < 0.
	ErrNegativeExponent = errors.New("negative exponent")
)

// NewEvaluator returns a lexer for integer arithmetic that evaluates as it
// parses.
//
// It understands decimal literals, parentheses, binary + - * / and ^, and
// unary -. ^ is right-associative and binds tighter than unary -, so
// -2 ^ 2 is -4.
func NewEvaluator[T constraints.Integer]() (*lexer.Lexer[T], error) {
	num := &topdown.Kind[T]{
		Name:    "num",
		Pattern: `[0-9]+`,
		Prefix: func(t topdown.Token[T], _ *topdown.Parser[T]) (T, error) {
			v, err := strconv.ParseUint(t.Text(), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid literal %q: %w", t.Text(), err)
			}
			n := T(v)
			if n < 0 || uint64(n) != v {
				return 0, fmt.Errorf("invalid literal %q: %w", t.Text(),
					&strconv.NumError{Func: "ParseUint", Num: t.Text(), Err: strconv.ErrRange})
			}
			return n, nil
		},
	}

	plus := binary("+", `\+`, PowerSum, func(a, b T) (T, error) { return a + b, nil })
	times := binary("*", `\*`, PowerProduct, func(a, b T) (T, error) { return a * b, nil })
	divide := binary("/", `/`, PowerProduct, func(a, b T) (T, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	})

	minus := binary("-", `-`, PowerSum, func(a, b T) (T, error) { return a - b, nil })
	minus.Prefix = func(_ topdown.Token[T], p *topdown.Parser[T]) (T, error) {
		v, err := p.Expression(PowerNegate)
		return -v, err
	}

	pow := &topdown.Kind[T]{
		Name:         "^",
		Pattern:      `\^`,
		BindingPower: PowerPower,
		Infix: func(t topdown.Token[T], left T, p *topdown.Parser[T]) (T, error) {
			right, err := p.Expression(t.BindingPower() - 1)
			if err != nil {
				return 0, err
			}
			return power(left, right)
		},
	}

	l := lexer.New(lexer.Config[T]{Parens: true})
	if err := l.RegisterTokens(num, plus, minus, times, divide, pow); err != nil {
		return nil, err
	}
	return l, nil
}

// binary returns a left-associative binary operator kind.
func binary[T any](name, pattern string, bp int, op func(a, b T) (T, error)) *topdown.Kind[T] {
	return &topdown.Kind[T]{
		Name:         name,
		Pattern:      pattern,
		BindingPower: bp,
		Infix: func(t topdown.Token[T], left T, p *topdown.Parser[T]) (T, error) {
			right, err := p.Expression(t.BindingPower())
			if err != nil {
				var zero T
				return zero, err
			}
			return op(left, right)
		},
	}
}

func power[T constraints.Integer](base, exp T) (T, error) {
	if exp < 0 {
		return 0, ErrNegativeExponent
	}
	result := T(1)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
	}
	return result, nil
}
