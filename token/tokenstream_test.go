package token

import (
	"testing"
)

func numbers(n int) []Token {
	toks := make([]Token, n)
	for i := range toks {
		toks[i] = Token{Kind: Number, Path: Path{Index(i)}, Value: string(rune('0' + i))}
	}
	return toks
}

func TestAccumulatorAndHandlerFunc(t *testing.T) {
	acc := NewAccumulatorStream()
	var count int
	streams := []WriteStream{acc, HandlerFunc(func(Token) { count++ })}
	for _, tok := range numbers(3) {
		for _, w := range streams {
			w.Put(tok)
		}
	}
	if len(acc.GetTokens()) != 3 || count != 3 {
		t.Fatalf("expected 3 tokens each, got %d and %d", len(acc.GetTokens()), count)
	}
}

type sliceSource []Token

func (s sliceSource) Produce(out chan<- Token) error {
	for _, tok := range s {
		out <- tok
	}
	return nil
}

type dropOdd struct{}

func (dropOdd) Transform(in <-chan Token, out WriteStream) {
	for tok := range in {
		if tok.Path[0].Index%2 == 0 {
			out.Put(tok)
		}
	}
}

// stopAfterOne returns early without draining its input.
type stopAfterOne struct{}

func (stopAfterOne) Transform(in <-chan Token, out WriteStream) {
	if tok, ok := <-in; ok {
		out.Put(tok)
	}
}

func TestPipeline(t *testing.T) {
	stream := StartStream(sliceSource(numbers(6)), nil)
	stream = TransformStream(stream, dropOdd{})
	got := Collect(stream)
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(got))
	}
	for i, tok := range got {
		if tok.Path[0].Index != 2*i {
			t.Errorf("token %d: unexpected path %s", i, tok.Path)
		}
	}
}

func TestPipelineEarlyStop(t *testing.T) {
	stream := StartStream(sliceSource(numbers(10)), nil)
	got := Collect(TransformStream(stream, stopAfterOne{}))
	if len(got) != 1 {
		t.Fatalf("expected 1 token, got %d", len(got))
	}
}
