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
	"github.com/bufbuild/topdown"
	"github.com/bufbuild/topdown/lexer"
)

// NewGroups returns a lexer for nested groups of parentheses, such as
// (()(())). Each group parses to a slice holding the opening text, one
// element per nested group, and the closing text.
func NewGroups() (*lexer.Lexer[any], error) {
	right := &topdown.Kind[any]{Name: "right", Pattern: `\)`}
	left := &topdown.Kind[any]{
		Name:    "left",
		Pattern: `\(`,
		Prefix: func(t topdown.Token[any], p *topdown.Parser[any]) (any, error) {
			group := []any{t.Text()}
			for !p.Current().Is(right) {
				inner, err := p.Expression(0)
				if err != nil {
					return nil, err
				}
				group = append(group, inner)
			}
			closing, err := p.Advance(right)
			if err != nil {
				return nil, err
			}
			return append(group, closing.Text()), nil
		},
	}

	l := lexer.New(lexer.Config[any]{})
	if err := l.RegisterTokens(left, right); err != nil {
		return nil, err
	}
	return l, nil
}
