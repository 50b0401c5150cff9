// Package jpv prints token streams in the JPV (JSON Path-Value) format.
//
// Every scalar, and every empty container, is written on its own line as
// its path followed by its value:
//
//	$.name = "Alice"
//	$.scores[0] = 95
//	$.tags = []
//	$["first name"] = "Al"
//
// The output is easy to grep, and the paths are those of the source
// document even when the stream has been filtered.
package jpv

import (
	"strconv"

	"go4.org/mem"

	"github.com/jonathanvanschenck/json-color-stream/internal/escape"
	"github.com/jonathanvanschenck/json-color-stream/internal/format"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// An Encoder outputs a token stream in the JPV format using the given
// Printer instance.
type Encoder struct {
	format.Printer
	*format.Colorizer

	// AlwaysQuoteKeys selects the $["key"] form even for keys that could be
	// written $.key.
	AlwaysQuoteKeys bool

	pendingOpen *token.Token // container opened with no item seen yet
}

var _ token.StreamSink = &Encoder{}

// Consume formats the stream in the given channel.  An error is returned if
// the Printer could not write.
func (e *Encoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	for tok := range stream {
		e.Put(tok)
	}
	return nil
}

// Put formats a single token.  Printer errors panic with a
// *format.PrinterError.
func (e *Encoder) Put(tok token.Token) {
	pending := e.pendingOpen
	e.pendingOpen = nil
	switch {
	case tok.IsOpen():
		e.pendingOpen = &tok
	case tok.IsClose():
		if pending != nil {
			e.writePathWithValue(tok.Path, tok.Kind, emptyContainer(pending.Kind))
		}
	case tok.IsScalar():
		value := []byte(tok.Value)
		if tok.Kind == token.String {
			value = escape.Quote(mem.S(tok.Value))
		}
		e.writePathWithValue(tok.Path, tok.Kind, value)
	}
}

func (e *Encoder) writePathWithValue(path token.Path, kind token.Kind, value []byte) {
	e.Colorizer.PrintKey(e.Printer, e.appendPath(nil, path))
	e.PrintBytes(pathValueSeparatorBytes)
	if kind == token.EndObject || kind == token.EndArray {
		e.Colorizer.PrintPunctuation(e.Printer, value)
	} else {
		e.Colorizer.PrintScalar(e.Printer, kind, value)
	}
	e.NewLine()
}

func (e *Encoder) appendPath(dst []byte, path token.Path) []byte {
	dst = append(dst, '$')
	for _, seg := range path {
		switch {
		case seg.IsIndex:
			dst = append(dst, '[')
			dst = strconv.AppendInt(dst, int64(seg.Index), 10)
			dst = append(dst, ']')
		case !e.AlwaysQuoteKeys && isIdentifier(seg.Key):
			dst = append(dst, '.')
			dst = append(dst, seg.Key...)
		default:
			dst = append(dst, '[')
			dst = append(dst, escape.Quote(mem.S(seg.Key))...)
			dst = append(dst, ']')
		}
	}
	return dst
}

func isIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		b := key[i]
		switch {
		case b == '_', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		case i > 0 && b >= '0' && b <= '9':
		default:
			return false
		}
	}
	return true
}

func emptyContainer(kind token.Kind) []byte {
	if kind == token.StartObject {
		return emptyObjectBytes
	}
	return emptyArrayBytes
}

var (
	pathValueSeparatorBytes = []byte(" = ")
	emptyObjectBytes        = []byte("{}")
	emptyArrayBytes         = []byte("[]")
)
