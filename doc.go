// Package colorstream is the root of a set of packages that tokenize JSON
// documents incrementally, while they are still arriving.
//
// The package is organized into several sub-packages:
//
// - encoding/json: the incremental Parser, a Decoder reading from an
// io.Reader, and encoders writing token streams back out
// - encoding/jpv: JPV (JSON Path-Value) encoder
// - transform: Built-in stream transformers
// - token: Tokens, paths and the streaming infrastructure
//
// A Parser is fed with chunks of text of any size.  It emits a token as soon
// as one is recognised, each carrying its kind, its path in the document
// tree, its value and the exact source text it was made from:
//
//	p := json.NewParser()
//	p.Subscribe(token.HandlerFunc(func(tok token.Token) {
//	    fmt.Println(tok.Kind, tok.Path, tok.Value)
//	}))
//	p.WriteString(`{"a": [1, `)
//	p.WriteString(`true]}`)
//	err := p.End(nil)
//
// Tokens can also be sent through a pipeline:
//
//	decode JSON -> transform_1 -> ... -> transform_n -> encode
//
// Each stage in the pipeline is a streaming operation, so the whole pipeline
// can start producing output straight away.
//
// The CLI utility is in the directory cmd/jcs. You can install it with:
//
//	go install github.com/jonathanvanschenck/json-color-stream/cmd/jcs
package colorstream
