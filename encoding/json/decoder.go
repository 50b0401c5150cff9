package json

import (
	"io"

	"github.com/jonathanvanschenck/json-color-stream/token"
)

const defaultChunkSize = 4096

// A Decoder reads a JSON document from an io.Reader and streams its tokens.
// The input is handed to a Parser chunk by chunk as it is read, so tokens
// are produced before the reader reaches the end of the document.
type Decoder struct {
	in io.Reader

	// ChunkSize is the maximum number of bytes read from the input at once.
	ChunkSize int
}

var _ token.StreamSource = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{in: in, ChunkSize: defaultChunkSize}
}

// Produce reads the document and streams its tokens, until it runs out of
// input or encounters invalid JSON, in which case it returns an error.
func (d *Decoder) Produce(out chan<- token.Token) error {
	p := NewParser()
	p.Subscribe(token.ChannelWriteStream(out))
	return d.feed(p)
}

// Decode reads the document and passes its tokens to w.
func (d *Decoder) Decode(w token.WriteStream) error {
	p := NewParser()
	p.Subscribe(w)
	return d.feed(p)
}

func (d *Decoder) feed(p *Parser) error {
	size := d.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	buf := make([]byte, size)
	for {
		n, err := d.in.Read(buf)
		if n > 0 {
			if _, werr := p.Write(buf[:n]); werr != nil {
				// Release the parser goroutine.
				p.Close()
				return werr
			}
		}
		switch {
		case err == io.EOF:
			return p.Close()
		case err != nil:
			p.Close()
			return err
		}
	}
}
