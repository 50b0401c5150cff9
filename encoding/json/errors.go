package json

import (
	"errors"
	"fmt"

	"github.com/jonathanvanschenck/json-color-stream/token"
)

// Errors reported by a Parser.  Syntax errors are returned as *SyntaxError
// values wrapping one of these, so use errors.Is to tell them apart.
var (
	ErrUnexpectedEndOfInput        = errors.New("unexpected end of input")
	ErrUnexpectedCharacter         = errors.New("unexpected character")
	ErrUnexpectedTrailingCharacter = errors.New("unexpected trailing character")
	ErrInvalidEscapeCharacter      = errors.New("invalid escape character")
	ErrInvalidUnicodeEscape        = errors.New("invalid unicode escape")
	ErrInvalidNumber               = errors.New("invalid number")
	ErrStreamClosed                = errors.New("cannot write to a closed stream")
)

// A SyntaxError describes where and why the input was rejected.
type SyntaxError struct {
	Line   int // 0-based
	Col    int // 0-based, in code points
	Offset int // bytes from the start of the input

	// Path of the value being parsed when the error was found.
	Path token.Path

	Message string

	err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.Line+1, e.Col+1, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}
