package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorCode classifies lexing failures. Codes compare equal to a *LexError
// of the same code under errors.Is.
type ErrorCode int

const (
	// ErrUnrecognizedCharacter reports a character outside the lexical
	// vocabulary when Config.Strict is set.
	ErrUnrecognizedCharacter ErrorCode = iota + 1
	// ErrUnterminatedToken reports a token still being built at end of input
	// when Config.EOF is EOFFail.
	ErrUnterminatedToken
)

func (c ErrorCode) Error() string {
	switch c {
	case ErrUnrecognizedCharacter:
		return "unrecognized character"
	case ErrUnterminatedToken:
		return "unterminated token"
	default:
		return "lex error " + strconv.Itoa(int(c))
	}
}

// LexError is the error returned by Tokenize. Every LexError is terminal for
// the call that produced it.
type LexError struct {
	Code ErrorCode
	Pos  Position

	// Char is set for ErrUnrecognizedCharacter.
	Char rune

	// Partial and Kind are set for ErrUnterminatedToken.
	Partial string
	Kind    TokenType

	source string
}

func (e *LexError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message())
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// Message is the one-line description without position or code frame.
func (e *LexError) Message() string {
	switch e.Code {
	case ErrUnrecognizedCharacter:
		return fmt.Sprintf("unrecognized character %q", e.Char)
	case ErrUnterminatedToken:
		return fmt.Sprintf("unterminated %s token %q at end of input", e.Kind, e.Partial)
	default:
		return e.Code.Error()
	}
}

func (e *LexError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
