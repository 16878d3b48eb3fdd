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

package iterx

import "iter"

// CollectErr collects the values of a fallible sequence into a slice,
// stopping at the first error.
//
// On error, the values collected so far are returned along with it.
func CollectErr[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// First2 retrieves the first pair of a two-element iterator.
func First2[T, U any](seq iter.Seq2[T, U]) (v1 T, v2 U, ok bool) {
	for v1, v2 = range seq {
		return v1, v2, true
	}
	return v1, v2, false
}
