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

// Package topdown implements top-down operator precedence parsing, also
// known as Pratt parsing.
//
// A grammar is a set of token [Kind]s. Each kind may carry a prefix rule,
// which says what a token means when it starts an expression, and an infix
// rule, which says what it means when it follows one. Its binding power
// decides how strongly it pulls in the expression to its left. The
// [Parser] supplies the rest: it calls prefix rules to get a left operand,
// then keeps folding in infix rules for as long as the next token binds
// more tightly than the surrounding context.
//
// # Example
//
// A grammar that evaluates sums and products of integers looks like this:
//
//	num := &topdown.Kind[int]{Name: "num", Pattern: `[0-9]+`}
//	num.Prefix = func(t topdown.Token[int], _ *topdown.Parser[int]) (int, error) {
//	    return strconv.Atoi(t.Text())
//	}
//
//	plus := &topdown.Kind[int]{Name: "+", Pattern: `\+`, BindingPower: 10}
//	plus.Infix = func(t topdown.Token[int], left int, p *topdown.Parser[int]) (int, error) {
//	    right, err := p.Expression(t.BindingPower())
//	    return left + right, err
//	}
//
// The [github.com/bufbuild/topdown/lexer] package turns text into tokens of
// registered kinds:
//
//	l := lexer.New(lexer.Config[int]{Parens: true})
//	if err := l.RegisterTokens(num, plus); err != nil {
//	    return err
//	}
//	value, err := l.Parse("(1 + 2) + 3")
//
// # Recursion
//
// Nested expressions are parsed by recursion on the calling goroutine's
// stack. Pathologically nested input can be rejected with [WithMaxDepth].
//
// # Errors
//
// Parsing stops at the first error. Errors are from the
// [github.com/bufbuild/topdown/reporter] package and can be classified with
// [errors.Is] against [reporter.ErrInvalidToken], [reporter.ErrMissingTokens]
// and [reporter.ErrLexer].
package topdown
