package json

import (
	"fmt"

	"go4.org/mem"

	"github.com/jonathanvanschenck/json-color-stream/internal/escape"
	"github.com/jonathanvanschenck/json-color-stream/internal/format"
	"github.com/jonathanvanschenck/json-color-stream/internal/stack"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// An Encoder can output a stream encoding a (stream of) JSON values using
// the given Printer instance for formatting.
//
// Values are laid out from the tokens' kinds alone, so the stream may be a
// filtered one whose values do not start at the document root.  Object keys
// are taken from the last segment of each member's path.
type Encoder struct {
	format.Printer
	*format.Colorizer

	frames *stack.Stack[frame]
}

type frame struct {
	kind  token.Kind // StartObject or StartArray
	count int
}

var _ token.StreamSink = &Encoder{}

// Consume formats the JSON stream encoded in the given channel using the
// instance's Printer.  It assumes that the stream is well-formed, i.e. that
// containers are balanced, and may panic if that is not the case.
//
// An error can be returned if the Printer could not perform some writing
// operation.  A typical example is if it attempt to write to a closed pipe.
func (e *Encoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	for tok := range stream {
		e.writeToken(tok)
	}
	return nil
}

// Put formats a single token, which lets an Encoder subscribe to a Parser
// directly.  Printer errors panic with a *format.PrinterError.
func (e *Encoder) Put(tok token.Token) {
	e.writeToken(tok)
}

func (e *Encoder) writeToken(tok token.Token) {
	if e.frames == nil {
		e.frames = stack.New[frame]()
	}
	switch {
	case tok.Kind == token.EndOfDocument:
		return
	case tok.IsClose():
		e.closeContainer(tok.Kind)
	case tok.IsOpen():
		e.startItem(tok)
		e.Colorizer.PrintPunctuation(e.Printer, []byte(tok.Value))
		e.frames.Push(frame{kind: tok.Kind})
	case tok.IsScalar():
		e.startItem(tok)
		e.Colorizer.PrintScalar(e.Printer, tok.Kind, encodeScalar(tok))
		e.endItem()
	default:
		panic(fmt.Sprintf("invalid token: %s", tok))
	}
}

// startItem prints what comes before a value: separator, line break and key.
func (e *Encoder) startItem(tok token.Token) {
	parent := e.frames.PeekRef()
	if parent == nil {
		return
	}
	if parent.count > 0 {
		e.Colorizer.PrintPunctuation(e.Printer, itemSeparatorBytes)
		e.NewLine()
	} else {
		e.Indent()
	}
	parent.count++
	if parent.kind != token.StartObject {
		return
	}
	last, ok := tok.Path.Last()
	if !ok || last.IsIndex {
		panic(fmt.Sprintf("object member without a key: %s", tok))
	}
	e.Colorizer.PrintKey(e.Printer, escape.Quote(mem.S(last.Key)))
	e.Colorizer.PrintPunctuation(e.Printer, keyValueSeparatorBytes)
}

func (e *Encoder) closeContainer(kind token.Kind) {
	f, ok := e.frames.Pop()
	if !ok {
		panic("unbalanced container")
	}
	if f.count > 0 {
		e.Dedent()
	}
	if kind == token.EndObject {
		e.Colorizer.PrintPunctuation(e.Printer, closeObjectBytes)
	} else {
		e.Colorizer.PrintPunctuation(e.Printer, closeArrayBytes)
	}
	e.endItem()
}

// endItem resets the printer after a complete top-level value.
func (e *Encoder) endItem() {
	if e.frames.IsEmpty() {
		e.Printer.Reset()
	}
}

func encodeScalar(tok token.Token) []byte {
	if tok.Kind == token.String {
		return escape.Quote(mem.S(tok.Value))
	}
	return []byte(tok.Value)
}

var (
	closeObjectBytes       = []byte("}")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(": ")
)
