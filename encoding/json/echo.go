package json

import (
	"github.com/jonathanvanschenck/json-color-stream/internal/format"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// An EchoEncoder writes back the source text of every token, highlighted by
// its Colorizer.  Without a Colorizer the output is byte for byte the input
// the tokens were parsed from.
type EchoEncoder struct {
	format.Printer
	*format.Colorizer

	// Flusher, if set, is flushed after each token so the output keeps up
	// with input that arrives slowly.
	Flusher format.Flusher
}

var _ token.StreamSink = &EchoEncoder{}

// Consume echoes the tokens in the given channel.  An error is returned if
// the Printer could not write.
func (e *EchoEncoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	for tok := range stream {
		e.Put(tok)
	}
	return nil
}

// Put echoes a single token.  Printer errors panic with a
// *format.PrinterError.
func (e *EchoEncoder) Put(tok token.Token) {
	if tok.Kind == token.EndOfDocument {
		// The EOF token carries whatever trailed the document, usually a
		// final newline.
		e.PrintBytes([]byte(tok.Raw))
	} else {
		e.Colorizer.Highlight(e.Printer, []byte(tok.Raw))
	}
	if e.Flusher != nil {
		if err := e.Flusher.Flush(); err != nil {
			panic(&format.PrinterError{Err: err})
		}
	}
}
