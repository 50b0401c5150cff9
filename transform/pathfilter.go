package transform

import (
	"github.com/jonathanvanschenck/json-color-stream/internal/pattern"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// A PathFilter is a Transformer that keeps only the values whose path
// matches a pattern, together with the EOF token.  Matching values are sent
// on whole, so the output is a stream of values.
//
// Patterns use the bracket notation of token.Path, plus dotted keys and a
// wildcard that matches any key or index:
//
//	$                  the whole document
//	$.users[*].name    the name of every user
//	$["a b"][0]        the first item of the "a b" array
//	$.*                every member of the root object
type PathFilter struct {
	steps []pattern.Step
}

var _ token.StreamTransformer = &PathFilter{}

// ParsePathFilter compiles a path pattern.
func ParsePathFilter(p string) (*PathFilter, error) {
	steps, err := pattern.Parse(p)
	if err != nil {
		return nil, err
	}
	return &PathFilter{steps: steps}, nil
}

// Match reports whether path is matched by the pattern or lies inside a
// matched value.
func (f *PathFilter) Match(path token.Path) bool {
	if len(path) < len(f.steps) {
		return false
	}
	for i, step := range f.steps {
		if !step.Matches(path[i]) {
			return false
		}
	}
	return true
}

// Transform implements the PathFilter transform.
func (f *PathFilter) Transform(in <-chan token.Token, out token.WriteStream) {
	for tok := range in {
		if tok.Kind == token.EndOfDocument || f.Match(tok.Path) {
			out.Put(tok)
		}
	}
}
