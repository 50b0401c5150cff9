package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		steps []Step
	}{
		{
			input: "$",
			steps: []Step{},
		},
		{
			input: "$.store.book[*].author",
			steps: []Step{
				{Segment: token.Key("store")},
				{Segment: token.Key("book")},
				{Wildcard: true},
				{Segment: token.Key("author")},
			},
		},
		{
			input: `$["a b"][0][12]`,
			steps: []Step{
				{Segment: token.Key("a b")},
				{Segment: token.Index(0)},
				{Segment: token.Index(12)},
			},
		},
		{
			input: `$.*["é\n"]`,
			steps: []Step{
				{Wildcard: true},
				{Segment: token.Key("é\n")},
			},
		},
	}
	for _, test := range tests {
		steps, err := Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.steps, steps); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "users", "$.", "$[", `$["a"`, "$[-1]", "$[x]", "$x", "$..a", "$[1:2]", "$$"} {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("Parse(%q): expected ErrInvalidPattern, got %v", input, err)
		}
	}
}

func TestStep(t *testing.T) {
	wildcard := Step{Wildcard: true}
	if !wildcard.Matches(token.Key("x")) || !wildcard.Matches(token.Index(3)) {
		t.Error("wildcard should match anything")
	}
	key := Step{Segment: token.Key("0")}
	if key.Matches(token.Index(0)) {
		t.Error("key should not match an index")
	}
	if got := key.String(); got != `["0"]` {
		t.Errorf("unexpected String() %q", got)
	}
	if got := wildcard.String(); got != "[*]" {
		t.Errorf("unexpected String() %q", got)
	}
}
