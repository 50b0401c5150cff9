package token

// A WriteStream receives tokens in emission order.  Parsers publish to one or
// more WriteStream observers.
type WriteStream interface {
	Put(Token)
}

// HandlerFunc adapts a function to the WriteStream interface.
type HandlerFunc func(Token)

var _ WriteStream = HandlerFunc(nil)

func (f HandlerFunc) Put(tok Token) {
	f(tok)
}

type ChannelWriteStream chan<- Token

var _ WriteStream = make(ChannelWriteStream)

func (w ChannelWriteStream) Put(tok Token) {
	w <- tok
}

// AccumulatorStream collects every token it is given.
type AccumulatorStream struct {
	toks []Token
}

var _ WriteStream = &AccumulatorStream{}

func NewAccumulatorStream() *AccumulatorStream {
	return &AccumulatorStream{}
}

func (w *AccumulatorStream) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *AccumulatorStream) GetTokens() []Token {
	return w.toks
}
