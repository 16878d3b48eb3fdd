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

// Package reporter contains the error types produced while lexing and
// parsing, and a small mechanism for routing warnings back to callers.
package reporter

import (
	"errors"
	"fmt"
)

var (
	// ErrLexer is the category of all errors produced while splitting text into
	// tokens.
	ErrLexer = errors.New("unrecognized character")

	// ErrParser is the category of all errors produced while parsing a token
	// sequence.
	ErrParser = errors.New("parse error")

	// ErrInvalidToken is reported when a token appears somewhere its kind does
	// not support.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrParser)

	// ErrMissingTokens is reported when the token sequence is empty or ends
	// while the parser still expects input.
	ErrMissingTokens = fmt.Errorf("%w: missing tokens", ErrParser)

	// ErrTooDeep is reported when expressions nest beyond a parser's
	// configured depth limit.
	ErrTooDeep = fmt.Errorf("%w: expression nested too deeply", ErrParser)
)

// Position locates an error. Lexer errors carry a byte offset into the
// lexed text; parser errors carry the index of the token the parser was
// looking at. Whichever is not applicable is -1.
type Position struct {
	Offset int
	Token  int
}

// AtOffset returns a position for byte offset n.
func AtOffset(n int) Position {
	return Position{Offset: n, Token: -1}
}

// AtToken returns a position for token index n.
func AtToken(n int) Position {
	return Position{Offset: -1, Token: n}
}

func (p Position) String() string {
	switch {
	case p.Offset >= 0:
		return fmt.Sprintf("offset %d", p.Offset)
	case p.Token >= 0:
		return fmt.Sprintf("token %d", p.Token)
	default:
		return "unknown position"
	}
}

// ErrorWithPos is an error about some input that includes information about
// the location that caused the error.
//
// The value of Error() will contain both the Position and Underlying error.
// The value of Unwrap() will only be the Underlying error.
type ErrorWithPos interface {
	error
	GetPosition() Position
	Unwrap() error
}

// LexerError is returned when no registered pattern matches the remaining
// text and its first character is not a blank.
type LexerError struct {
	// Byte offset of the offending character.
	Offset int
	// The offending character, as a single grapheme cluster.
	Char string
	// An excerpt of the text starting at the offending character.
	Context string
}

var _ ErrorWithPos = (*LexerError)(nil)

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s: %v %q in %q", e.GetPosition(), ErrLexer, e.Char, e.Context)
}

// GetPosition implements [ErrorWithPos].
func (e *LexerError) GetPosition() Position {
	return AtOffset(e.Offset)
}

// Unwrap implements [ErrorWithPos]. It always returns [ErrLexer].
func (e *LexerError) Unwrap() error {
	return ErrLexer
}

// ParserError is an error produced while parsing. Its underlying error wraps
// one of [ErrInvalidToken], [ErrMissingTokens] or [ErrTooDeep], all of which
// wrap [ErrParser].
type ParserError struct {
	Pos int
	Err error
}

var _ ErrorWithPos = (*ParserError)(nil)

// InvalidToken returns a [ParserError] at token position pos whose message is
// built from format and args and which wraps [ErrInvalidToken].
func InvalidToken(pos int, format string, args ...any) *ParserError {
	return newParserError(pos, ErrInvalidToken, format, args...)
}

// MissingTokens is like [InvalidToken], but wraps [ErrMissingTokens].
func MissingTokens(pos int, format string, args ...any) *ParserError {
	return newParserError(pos, ErrMissingTokens, format, args...)
}

// TooDeep returns a [ParserError] reporting that nesting exceeded limit.
func TooDeep(pos int, limit int) *ParserError {
	return newParserError(pos, ErrTooDeep, "limit is %d", limit)
}

func newParserError(pos int, kind error, format string, args ...any) *ParserError {
	return &ParserError{
		Pos: pos,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s: %v", e.GetPosition(), e.Err)
}

// GetPosition implements [ErrorWithPos].
func (e *ParserError) GetPosition() Position {
	return AtToken(e.Pos)
}

// Unwrap implements [ErrorWithPos].
func (e *ParserError) Unwrap() error {
	return e.Err
}
