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

package reporter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/topdown/reporter"
)

func TestCategories(t *testing.T) {
	t.Parallel()

	invalid := reporter.InvalidToken(3, "got %s", "x")
	assert.ErrorIs(t, invalid, reporter.ErrInvalidToken)
	assert.ErrorIs(t, invalid, reporter.ErrParser)
	assert.NotErrorIs(t, invalid, reporter.ErrMissingTokens)
	assert.Equal(t, "token 3: parse error: invalid token: got x", invalid.Error())

	missing := reporter.MissingTokens(0, "empty")
	assert.ErrorIs(t, missing, reporter.ErrMissingTokens)
	assert.ErrorIs(t, missing, reporter.ErrParser)
	assert.NotErrorIs(t, missing, reporter.ErrInvalidToken)

	deep := reporter.TooDeep(9, 100)
	assert.ErrorIs(t, deep, reporter.ErrTooDeep)
	assert.ErrorIs(t, deep, reporter.ErrParser)
	assert.Contains(t, deep.Error(), "limit is 100")

	lexer := &reporter.LexerError{Offset: 4, Char: "?", Context: "?!"}
	assert.ErrorIs(t, lexer, reporter.ErrLexer)
	assert.NotErrorIs(t, lexer, reporter.ErrParser)
}

func TestPosition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "offset 4", reporter.AtOffset(4).String())
	assert.Equal(t, "token 2", reporter.AtToken(2).String())
	assert.Equal(t, "unknown position", reporter.Position{Offset: -1, Token: -1}.String())

	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, reporter.InvalidToken(5, "x"), &ewp)
	assert.Equal(t, reporter.AtToken(5), ewp.GetPosition())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("passthrough", func(t *testing.T) {
		t.Parallel()
		h := reporter.NewHandler(nil)
		require.NoError(t, h.Error())

		err := reporter.MissingTokens(1, "x")
		assert.Same(t, err, h.HandleError(err))
		assert.Same(t, err, h.Error())

		// The first error sticks.
		assert.Same(t, err, h.HandleError(errors.New("later")))

		h.HandleWarning(reporter.InvalidToken(1, "dropped"))
	})

	t.Run("plain_errors_bypass_reporter", func(t *testing.T) {
		t.Parallel()
		called := false
		h := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
			called = true
			return err
		}, nil))
		plain := errors.New("plain")
		assert.Equal(t, plain, h.HandleError(plain))
		assert.False(t, called)
	})

	t.Run("swallowed", func(t *testing.T) {
		t.Parallel()
		h := reporter.NewHandler(reporter.NewReporter(func(reporter.ErrorWithPos) error {
			return nil
		}, nil))
		require.NoError(t, h.HandleError(reporter.InvalidToken(0, "x")))
		assert.Equal(t, reporter.ErrInvalidInput, h.Error())
	})

	t.Run("warnings", func(t *testing.T) {
		t.Parallel()
		var (
			mu       sync.Mutex
			warnings []reporter.ErrorWithPos
		)
		h := reporter.NewHandler(reporter.NewReporter(nil, func(err reporter.ErrorWithPos) {
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, err)
		}))

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.HandleWarning(reporter.InvalidToken(i, "w"))
			}()
		}
		wg.Wait()
		assert.Len(t, warnings, 8)
		require.NoError(t, h.Error(), "warnings are not errors")
	})
}
