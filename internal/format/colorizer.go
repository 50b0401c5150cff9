package format

import (
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// ScalarClass groups scalar token kinds that share a colour.
type ScalarClass uint8

const (
	NullClass ScalarClass = iota
	BooleanClass
	NumberClass
	StringClass
)

// ClassOf returns the scalar class of a token kind, or false if the kind is
// not a scalar.
func ClassOf(kind token.Kind) (ScalarClass, bool) {
	switch kind {
	case token.Null:
		return NullClass, true
	case token.True, token.False:
		return BooleanClass, true
	case token.Number:
		return NumberClass, true
	case token.String:
		return StringClass, true
	}
	return 0, false
}

// A Colorizer holds the ANSI escape codes used to colour output.  A nil
// *Colorizer is valid and prints everything uncoloured.
type Colorizer struct {
	KeyColorCode         []byte
	ScalarColorCodes     [4][]byte
	PunctuationColorCode []byte
	ResetCode            []byte
}

func (c *Colorizer) ScalarColorCode(kind token.Kind) []byte {
	if c == nil {
		return nil
	}
	class, ok := ClassOf(kind)
	if !ok {
		return nil
	}
	return c.ScalarColorCodes[class]
}

// PrintScalar prints the encoded text of a scalar of the given kind.
func (c *Colorizer) PrintScalar(p Printer, kind token.Kind, text []byte) {
	c.print(p, c.ScalarColorCode(kind), text)
}

// PrintKey prints the encoded text of an object key.
func (c *Colorizer) PrintKey(p Printer, text []byte) {
	if c == nil {
		p.PrintBytes(text)
		return
	}
	c.print(p, c.KeyColorCode, text)
}

// PrintPunctuation prints brackets, braces, commas and colons.
func (c *Colorizer) PrintPunctuation(p Printer, text []byte) {
	if c == nil {
		p.PrintBytes(text)
		return
	}
	c.print(p, c.PunctuationColorCode, text)
}

func (c *Colorizer) print(p Printer, code []byte, text []byte) {
	if c == nil || len(code) == 0 {
		p.PrintBytes(text)
		return
	}
	p.PrintBytes(code)
	p.PrintBytes(text)
	p.PrintBytes(c.ResetCode)
}
