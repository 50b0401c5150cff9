// Package transform provides token stream transformers that can be chained
// with token.TransformStream.
package transform

import (
	"log"

	"github.com/jonathanvanschenck/json-color-stream/token"
)

// MaxDepthFilter is a Transformer that truncates the stream to a given depth.
// The contents of collections which are more deeply nested than MaxDepth are
// dropped, leaving them empty.
//
// E.g.
//
//	[1, 2, {"x": [3, 4], "y": 2}]
//
// At MaxDepth=0:
//
//	[]
//
// At MaxDepth=1
//
//	[1, 2, {}]
//
// At MaxDepth=2
//
//	[1, 2, {"x": [], "y": 2}]
//
// Depth is counted from the start of the stream, so it also works on the
// output of a PathFilter.
type MaxDepthFilter struct {
	MaxDepth int
}

var _ token.StreamTransformer = &MaxDepthFilter{}

// Transform implements the MaxDepthFilter tansform.
func (f *MaxDepthFilter) Transform(in <-chan token.Token, out token.WriteStream) {
	depth := 0
	for tok := range in {
		postIncr := 0
		switch {
		case tok.IsOpen():
			postIncr++
		case tok.IsClose():
			depth--
		}
		if depth <= f.MaxDepth || tok.Kind == token.EndOfDocument {
			out.Put(tok)
		}
		depth += postIncr
	}
}

// TraceStream logs all the tokens and sends them on unchanged.  It's useful
// for debugging streams.
type TraceStream struct{}

var _ token.StreamTransformer = TraceStream{}

// Transform implements the TraceStream transform
func (t TraceStream) Transform(in <-chan token.Token, out token.WriteStream) {
	for tok := range in {
		log.Printf("%s", tok)
		out.Put(tok)
	}
}
