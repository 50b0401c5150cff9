package format

import (
	"go4.org/mem"

	"github.com/jonathanvanschenck/json-color-stream/internal/scanner"
)

var (
	trueText  = mem.S("true")
	falseText = mem.S("false")
	nullText  = mem.S("null")
)

// Highlight prints raw JSON source text, colouring it lexically.  The text
// need not be a complete value: a string followed by ':' is printed as a key,
// and anything it does not recognise is printed as is.
func (c *Colorizer) Highlight(p Printer, raw []byte) {
	if c == nil {
		p.PrintBytes(raw)
		return
	}
	for i := 0; i < len(raw); {
		b := raw[i]
		j := i + 1
		switch {
		case b == '"':
			j = stringEnd(raw, i)
			if isKey(raw, j) {
				c.print(p, c.KeyColorCode, raw[i:j])
			} else {
				c.print(p, c.ScalarColorCodes[StringClass], raw[i:j])
			}
		case scanner.IsNumberStart(b):
			for j < len(raw) && isNumberByte(raw[j]) {
				j++
			}
			c.print(p, c.ScalarColorCodes[NumberClass], raw[i:j])
		case b >= 'a' && b <= 'z':
			for j < len(raw) && raw[j] >= 'a' && raw[j] <= 'z' {
				j++
			}
			word := mem.B(raw[i:j])
			switch {
			case word.Equal(trueText), word.Equal(falseText):
				c.print(p, c.ScalarColorCodes[BooleanClass], raw[i:j])
			case word.Equal(nullText):
				c.print(p, c.ScalarColorCodes[NullClass], raw[i:j])
			default:
				p.PrintBytes(raw[i:j])
			}
		case isPunctuation(b):
			c.print(p, c.PunctuationColorCode, raw[i:j])
		default:
			for j < len(raw) && scanner.IsSpace(raw[j]) && scanner.IsSpace(b) {
				j++
			}
			p.PrintBytes(raw[i:j])
		}
		i = j
	}
}

// stringEnd returns the index just past the closing quote of the string
// starting at i, or len(raw) if it is not terminated.
func stringEnd(raw []byte, i int) int {
	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(raw)
}

func isKey(raw []byte, j int) bool {
	for ; j < len(raw); j++ {
		if !scanner.IsSpace(raw[j]) {
			return raw[j] == ':'
		}
	}
	return false
}

func isNumberByte(b byte) bool {
	return scanner.IsDigit(b) || scanner.IsSign(b) || scanner.IsExponent(b) || b == '.'
}

func isPunctuation(b byte) bool {
	switch b {
	case '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}
