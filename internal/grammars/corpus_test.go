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

package grammars_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bufbuild/topdown"
	"github.com/bufbuild/topdown/internal/corpora"
	"github.com/bufbuild/topdown/internal/grammars"
	"github.com/bufbuild/topdown/reporter"
)

// Config is configuration settable in a test case via #% lines.
type Config struct {
	Grammar  string `yaml:"grammar"`
	Trailing string `yaml:"trailing"`
	MaxDepth int    `yaml:"max_depth"`
}

func (c Config) options(t *testing.T) []topdown.ParserOption {
	t.Helper()

	options := []topdown.ParserOption{topdown.WithMaxDepth(c.MaxDepth)}
	switch c.Trailing {
	case "", "ignore":
	case "warn":
		options = append(options, topdown.WithTrailing(topdown.TrailingWarn))
	case "reject":
		options = append(options, topdown.WithTrailing(topdown.TrailingReject))
	default:
		t.Fatalf("unknown trailing policy %q", c.Trailing)
	}
	return options
}

// TestCorpus evaluates every line of each test case's body as a separate
// expression, writing one line of output (and of errors) per expression.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:    "testdata",
		Pattern: "**/*.expr",
		Refresh: "TOPDOWN_REFRESH",
		Outputs: []corpora.Output{
			{Extension: "out"},
			{Extension: "err"},
		},
		Test: func(t *testing.T, path, text string) []string {
			var config Config
			require.NoError(t, corpora.Header(text, "#%", &config))

			parse := parser(t, config.Grammar)

			var warnings []string
			rep := reporter.NewReporter(nil, func(err reporter.ErrorWithPos) {
				warnings = append(warnings, err.Error())
			})
			options := append(config.options(t), topdown.WithReporter(rep))

			var out, errs strings.Builder
			for line := range strings.Lines(corpora.Body(text, "#%")) {
				line = strings.TrimSuffix(line, "\n")
				if strings.TrimSpace(line) == "" {
					continue
				}

				warnings = warnings[:0]
				value, err := parse(line, options)
				if err != nil {
					fmt.Fprintf(&out, "%s => error\n", line)
					fmt.Fprintf(&errs, "%s: %v\n", line, err)
					continue
				}
				fmt.Fprintf(&out, "%s => %s\n", line, value)
				for _, w := range warnings {
					fmt.Fprintf(&errs, "%s: warning: %s\n", line, w)
				}
			}
			return []string{out.String(), errs.String()}
		},
	}
	corpus.Run(t)
}

// parser returns a function that parses text with the named grammar and
// renders the result.
func parser(t *testing.T, grammar string) func(string, []topdown.ParserOption) (string, error) {
	t.Helper()

	switch grammar {
	case "eval":
		l, err := grammars.NewEvaluator[int64]()
		require.NoError(t, err)
		return func(text string, options []topdown.ParserOption) (string, error) {
			v, err := l.Parse(text, options...)
			return fmt.Sprint(v), err
		}
	case "tree":
		l, err := grammars.NewTree()
		require.NoError(t, err)
		return func(text string, options []topdown.ParserOption) (string, error) {
			v, err := l.Parse(text, options...)
			return v.String(), err
		}
	case "groups":
		l, err := grammars.NewGroups()
		require.NoError(t, err)
		return func(text string, options []topdown.ParserOption) (string, error) {
			v, err := l.Parse(text, options...)
			return fmt.Sprint(v), err
		}
	default:
		t.Fatalf("unknown grammar %q", grammar)
		return nil
	}
}
