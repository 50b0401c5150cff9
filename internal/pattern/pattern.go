// Package pattern parses the path patterns accepted by the path filter.
//
// A pattern is a JSONPath-like expression made only of child segments:
//
//	$.users[*].name
//	$["a b"][0]
//	$.*
package pattern

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/arnodel/grammar"

	"github.com/jonathanvanschenck/json-color-stream/encoding/json"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

type Token = grammar.SimpleToken

var tokenise = grammar.SimpleTokeniser([]grammar.TokenDef{
	{
		Ptn: `\s+`,
	},
	{
		Name: "membernameshorthand",
		Ptn:  `\.[a-zA-Z_\x80-\x{D7FF}\x{E000}-\x{10FFFF}][0-9a-zA-Z_\x80-\x{D7FF}\x{E000}-\x{10FFFF}]*`,
	},
	{
		Name: "op",
		Ptn:  `\.\*|[$*[\]]`,
	},
	{
		Name: "int",
		Ptn:  `0|[1-9][0-9]*`,
	},
	{
		Name: "doublequotedstring",
		Ptn:  `"(?:\\[bfnrt/\\"]|\\u[0-9ABCEFabcef][0-9A-Fa-f]{3}|\\uD[89ABab][0-9A-Fa-f]{2}\\u[Dd][C-Fc-f][0-9A-Fa-f]{2}|[\x20-\x21\x23-\x5B\x5D-\x{D7FF}\x{E000}-\x{10FFFF}])*"`,
	},
})

type Pattern struct {
	grammar.Seq
	RootIdentifier Token `tok:"op,$"`
	Segments       []Segment
}

type Segment struct {
	grammar.OneOf
	WildcardSelector    *Token `tok:"op,.*"`
	MemberNameShorthand *Token `tok:"membernameshorthand"`
	*BracketedSelection
}

type BracketedSelection struct {
	grammar.Seq
	OpenSquareBracket  Token `tok:"op,["`
	Selector           Selector
	CloseSquareBracket Token `tok:"op,]"`
}

type Selector struct {
	grammar.OneOf
	WildcardSelector *Token `tok:"op,*"`
	IndexSelector    *Token `tok:"int"`
	NameSelector     *Token `tok:"doublequotedstring"`
}

// A Step matches one segment of a token.Path.  A wildcard step matches any
// key or index.
type Step struct {
	Wildcard bool
	Segment  token.Segment
}

func (s Step) Matches(seg token.Segment) bool {
	return s.Wildcard || s.Segment == seg
}

func (s Step) String() string {
	if s.Wildcard {
		return "[*]"
	}
	return s.Segment.String()
}

var ErrInvalidPattern = errors.New("invalid path pattern")

// Parse compiles a pattern into the steps a path must match, in order.
func Parse(s string) ([]Step, error) {
	stream, err := tokenise(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, s, err)
	}
	var p Pattern
	if parseErr := grammar.Parse(&p, stream); parseErr != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, s, parseErr)
	}
	if n := stream.Next(); n != grammar.EOF {
		return nil, fmt.Errorf("%w %q: unexpected trailing input", ErrInvalidPattern, s)
	}
	steps, err := p.compile()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, s, err)
	}
	return steps, nil
}

func (p *Pattern) compile() ([]Step, error) {
	steps := make([]Step, len(p.Segments))
	for i, s := range p.Segments {
		step, err := s.compile()
		if err != nil {
			return nil, err
		}
		steps[i] = step
	}
	return steps, nil
}

func (s *Segment) compile() (Step, error) {
	switch {
	case s.WildcardSelector != nil:
		return Step{Wildcard: true}, nil
	case s.MemberNameShorthand != nil:
		// s.MemberNameShorthand is of the form '.name'
		return Step{Segment: token.Key(s.MemberNameShorthand.TokValue[1:])}, nil
	case s.BracketedSelection != nil:
		return s.Selector.compile()
	default:
		panic("invalid Segment")
	}
}

func (s *Selector) compile() (Step, error) {
	switch {
	case s.WildcardSelector != nil:
		return Step{Wildcard: true}, nil
	case s.IndexSelector != nil:
		index, err := strconv.Atoi(s.IndexSelector.TokValue)
		if err != nil {
			return Step{}, fmt.Errorf("invalid index: %w", err)
		}
		return Step{Segment: token.Index(index)}, nil
	case s.NameSelector != nil:
		name, err := parseDoubleQuotedString(s.NameSelector.TokValue)
		if err != nil {
			return Step{}, err
		}
		return Step{Segment: token.Key(name)}, nil
	default:
		panic("invalid Selector")
	}
}

// parseDoubleQuotedString decodes a JSON string literal.
func parseDoubleQuotedString(s string) (string, error) {
	toks, err := json.Parse("[" + s + "]")
	if err != nil {
		return "", err
	}
	return toks[1].Value, nil
}
