package escape

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"

	"github.com/jonathanvanschenck/json-color-stream/internal/scanner"
)

// ParseHex4 decodes exactly four hexadecimal digits, the payload of a \u
// escape sequence.
func ParseHex4(data mem.RO) (rune, error) {
	if data.Len() != 4 {
		return 0, fmt.Errorf("expected 4 hex digits, got %d", data.Len())
	}
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		if !scanner.IsHexDigit(b) {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
		v = v<<4 | hexValue(b)
	}
	return v, nil
}

func hexValue(b byte) rune {
	switch {
	case b >= 'a':
		return rune(b - 'a' + 10)
	case b >= 'A':
		return rune(b - 'A' + 10)
	}
	return rune(b - '0')
}

// A RuneWriter accumulates decoded string content.  Code points from \u
// escapes go through WriteEscaped so that UTF-16 surrogate pairs are
// recombined; a surrogate without its partner becomes U+FFFD.
type RuneWriter struct {
	buf  []byte
	high rune // pending high surrogate, or 0
}

// WriteByte appends a literal byte from the source text.
func (w *RuneWriter) WriteByte(b byte) error {
	w.flush()
	w.buf = append(w.buf, b)
	return nil
}

// WriteRune appends a decoded rune which is not part of a surrogate pair.
func (w *RuneWriter) WriteRune(r rune) {
	w.flush()
	w.buf = utf8.AppendRune(w.buf, r)
}

// WriteEscaped appends a code point decoded from a \u escape.
func (w *RuneWriter) WriteEscaped(r rune) {
	switch {
	case w.high != 0 && utf16.IsSurrogate(r) && r >= 0xDC00:
		w.buf = utf8.AppendRune(w.buf, utf16.DecodeRune(w.high, r))
		w.high = 0
	case utf16.IsSurrogate(r) && r < 0xDC00:
		w.flush()
		w.high = r
	default:
		w.WriteRune(r)
	}
}

func (w *RuneWriter) flush() {
	if w.high != 0 {
		w.buf = utf8.AppendRune(w.buf, utf8.RuneError)
		w.high = 0
	}
}

// String returns the decoded content.
func (w *RuneWriter) String() string {
	w.flush()
	return string(w.buf)
}

func (w *RuneWriter) Reset() {
	w.buf = w.buf[:0]
	w.high = 0
}
