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

// Package corpora runs table-driven tests whose "table" lives in the file
// system: each test case is a file, and its expected outputs are sibling
// files next to it.
package corpora

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Corpus describes a test data corpus.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file
	// that calls [Corpus.Run].
	Root string

	// A doublestar glob, relative to Root, selecting the files which define
	// test cases, e.g. "**/*.expr".
	Pattern string

	// An environment variable holding a doublestar glob. Test cases whose
	// path relative to Root matches it have their outputs rewritten instead
	// of compared.
	Refresh string

	// Possible outputs of a test case. The file for output n of case
	// "foo.expr" is "foo.expr.<Outputs[n].Extension>". A missing file is
	// treated as expecting empty output, and empty output deletes the file
	// on refresh.
	Outputs []Output

	// Test executes one test case. Returns one string per element of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output represents one output of a test case.
type Output struct {
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values are compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns empty string if the strings match, otherwise returns an error
// message.
type Compare func(got, want string) string

// Run runs every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	root := filepath.Join(callerDir(0), c.Root)
	t.Logf("corpora: searching for %q in %q", c.Pattern, root)

	tests, err := doublestar.Glob(os.DirFS(root), c.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		t.Fatalf("corpora: error while searching test data: %v", err)
	}
	if len(tests) == 0 {
		t.Fatalf("corpora: no test cases match %q", c.Pattern)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, name := range tests {
		path := filepath.Join(root, filepath.FromSlash(name))
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", path, err)
			}

			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			matched, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if matched {
					writeOutput(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading output file %q: %v", path, err)
					continue
				}

				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if diff := cmp(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

// Header decodes the YAML configuration embedded in a test case into v.
//
// Configuration lines are those starting with prefix followed by a space,
// e.g. "#% grammar: tree"; all other lines are ignored.
func Header(text, prefix string, v any) error {
	var config bytes.Buffer
	for line := range strings.Lines(text) {
		if line, ok := strings.CutPrefix(line, prefix+" "); ok {
			config.WriteString(line)
		}
	}
	if config.Len() == 0 {
		return nil
	}
	return yaml.Unmarshal(config.Bytes(), v)
}

// Body returns the lines of text that are not configuration lines.
func Body(text, prefix string) string {
	var body strings.Builder
	for line := range strings.Lines(text) {
		if !strings.HasPrefix(line, prefix+" ") {
			body.WriteString(line)
		}
	}
	return body.String()
}

func writeOutput(t *testing.T, path, result string) {
	t.Helper()

	if result == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while deleting output file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(result), 0600); err != nil {
		t.Errorf("corpora: error while writing output file %q: %v", path, err)
	}
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize the diff so it's easier to read. We're looking for lines that
	// start with a - or a +.
	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		if strings.HasPrefix(s, "+") {
			lines[i] = "\033[1;92m" + s + "\033[0m"
		} else if strings.HasPrefix(s, "-") {
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
