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

package grammars

import (
	"strings"

	"github.com/bufbuild/topdown"
	"github.com/bufbuild/topdown/lexer"
)

// Node is a syntax tree node. Leaves have no Args.
type Node struct {
	Op   string
	Args []*Node
}

// String renders n as an S-expression.
func (n *Node) String() string {
	var out strings.Builder
	n.write(&out)
	return out.String()
}

func (n *Node) write(out *strings.Builder) {
	if n == nil {
		out.WriteString("<nil>")
		return
	}
	if n.Args == nil {
		out.WriteString(n.Op)
		return
	}
	out.WriteByte('(')
	out.WriteString(n.Op)
	for _, arg := range n.Args {
		out.WriteByte(' ')
		arg.write(out)
	}
	out.WriteByte(')')
}

// NewTree returns a lexer for an expression language that builds a syntax
// tree instead of evaluating.
//
// On top of the operators of [NewEvaluator], it has identifiers, the
// keywords true and false, assignment (right-associative), equality, and
// calls such as f(a, b). Its end-of-input kind is named EOF.
func NewTree() (*lexer.Lexer[*Node], error) {
	leaf := func(t topdown.Token[*Node], _ *topdown.Parser[*Node]) (*Node, error) {
		return &Node{Op: t.Text()}, nil
	}

	keyword := &topdown.Kind[*Node]{Name: "keyword", Pattern: `true|false`, Prefix: leaf}
	ident := &topdown.Kind[*Node]{Name: "ident", Pattern: `[a-z_][a-z0-9_]*`, Prefix: leaf}
	num := &topdown.Kind[*Node]{Name: "num", Pattern: `[0-9]+`, Prefix: leaf}

	minus := infixNode("-", `-`, PowerSum, 0)
	minus.Prefix = func(t topdown.Token[*Node], p *topdown.Parser[*Node]) (*Node, error) {
		operand, err := p.Expression(PowerNegate)
		if err != nil {
			return nil, err
		}
		return &Node{Op: t.Text(), Args: []*Node{operand}}, nil
	}

	comma := &topdown.Kind[*Node]{Name: ",", Pattern: `,`}
	rparen := &topdown.Kind[*Node]{Name: ")", Pattern: `\)`}
	lparen := &topdown.Kind[*Node]{
		Name:         "(",
		Pattern:      `\(`,
		BindingPower: PowerCall,
		Prefix: func(_ topdown.Token[*Node], p *topdown.Parser[*Node]) (*Node, error) {
			inner, err := p.Expression(0)
			if err != nil {
				return nil, err
			}
			_, err = p.Advance(rparen)
			return inner, err
		},
	}
	lparen.Infix = func(_ topdown.Token[*Node], callee *Node, p *topdown.Parser[*Node]) (*Node, error) {
		call := &Node{Op: "call", Args: []*Node{callee}}
		if p.Current().Is(rparen) {
			_, err := p.Advance(rparen)
			return call, err
		}
		for {
			arg, err := p.Expression(0)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.Current().Is(comma) {
				break
			}
			if _, err := p.Advance(comma); err != nil {
				return nil, err
			}
		}
		_, err := p.Advance(rparen)
		return call, err
	}

	l := lexer.New(lexer.Config[*Node]{End: topdown.EndKind[*Node]("EOF")})
	err := l.RegisterTokens(
		keyword, ident, num,
		infixNode("==", `==`, PowerEqual, 0),
		infixNode("=", `=`, PowerAssign, 1),
		infixNode("+", `\+`, PowerSum, 0),
		minus,
		infixNode("*", `\*`, PowerProduct, 0),
		infixNode("/", `/`, PowerProduct, 0),
		infixNode("^", `\^`, PowerPower, 1),
		lparen, rparen, comma,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// infixNode returns a binary operator kind that builds a node. assoc is
// subtracted from the binding power of the right operand: 0 makes the
// operator left-associative, 1 right-associative.
func infixNode(name, pattern string, bp, assoc int) *topdown.Kind[*Node] {
	return &topdown.Kind[*Node]{
		Name:         name,
		Pattern:      pattern,
		BindingPower: bp,
		Infix: func(t topdown.Token[*Node], left *Node, p *topdown.Parser[*Node]) (*Node, error) {
			right, err := p.Expression(t.BindingPower() - assoc)
			if err != nil {
				return nil, err
			}
			return &Node{Op: t.Text(), Args: []*Node{left, right}}, nil
		},
	}
}
