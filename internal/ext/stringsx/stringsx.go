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

// Package stringsx contains extensions to Go's package strings.
package stringsx

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Grapheme returns the first user-perceived character of s, which may span
// several runes (for example, a letter followed by combining marks).
func Grapheme(s string) string {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster
}

// Excerpt returns a prefix of s that fits in width terminal columns, ending
// with an ellipsis if anything was cut. Grapheme clusters are never split.
func Excerpt(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var out strings.Builder
	column := 0
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if column+w > width-1 {
			break
		}
		column += w
		out.WriteString(cluster)
	}
	out.WriteString("…")
	return out.String()
}
