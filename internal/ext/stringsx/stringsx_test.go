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

package stringsx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/topdown/internal/ext/stringsx"
)

func TestGrapheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", stringsx.Grapheme("abc"))
	assert.Equal(t, "é", stringsx.Grapheme("éx"))
	assert.Equal(t, "🇫🇷", stringsx.Grapheme("🇫🇷!"))
	assert.Empty(t, stringsx.Grapheme(""))
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", stringsx.Excerpt("short", 10))
	assert.Equal(t, "abcd…", stringsx.Excerpt("abcdefgh", 5))
	assert.Equal(t, strings.Repeat("x", 9)+"…", stringsx.Excerpt(strings.Repeat("x", 20), 10))

	// Wide characters take two columns and are never split.
	assert.Equal(t, "日本…", stringsx.Excerpt("日本語です", 6))
}
