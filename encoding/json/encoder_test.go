package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathanvanschenck/json-color-stream/internal/format"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// feed sends toks on a channel consumed by sink.
func feed(t *testing.T, sink token.StreamSink, toks []token.Token) {
	t.Helper()
	ch := make(chan token.Token)
	go func() {
		defer close(ch)
		for _, tok := range toks {
			ch <- tok
		}
	}()
	if err := sink.Consume(ch); err != nil {
		t.Fatal(err)
	}
}

func encode(t *testing.T, doc string, indent int, colorizer *format.Colorizer) string {
	t.Helper()
	var buf bytes.Buffer
	enc := &Encoder{
		Printer:   &format.DefaultPrinter{Writer: &buf, IndentSize: indent},
		Colorizer: colorizer,
	}
	feed(t, enc, mustParse(t, doc))
	return buf.String()
}

func TestEncoder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		indent   int
		expected string
	}{
		{
			name:     "empty containers",
			input:    `{"a":{}, "b" : [ ]}`,
			indent:   2,
			expected: "{\n  \"a\": {},\n  \"b\": []\n}\n",
		},
		{
			name:   "nested",
			input:  `[1,{"x":"y\n","z":[true,null]},-2.5e3]`,
			indent: 2,
			expected: `[
  1,
  {
    "x": "y\n",
    "z": [
      true,
      null
    ]
  },
  -2.5e3
]
`,
		},
		{
			name:     "compact",
			input:    "{\n  \"a\": [1, 2],\n  \"b\": \"é\"\n}",
			indent:   -1,
			expected: `{"a": [1,2],"b": "é"}` + "\n",
		},
		{
			name:     "escaped key",
			input:    `{"a\"b\u0001": false}`,
			indent:   0,
			expected: "{\n\"a\\\"b\\u0001\": false\n}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := encode(t, test.input, test.indent, nil)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncoderColors(t *testing.T) {
	c := &format.Colorizer{
		KeyColorCode:     []byte("<k>"),
		ScalarColorCodes: [4][]byte{[]byte("<z>"), []byte("<b>"), []byte("<n>"), []byte("<s>")},
		ResetCode:        []byte("</>"),
	}
	got := encode(t, `{"a": ["s", 1, true, null]}`, -1, c)
	want := `{<k>"a"</>: [<s>"s"</>,<n>1</>,<b>true</>,<z>null</>]}` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// TestEncoderSubtrees checks that values which do not start at the root,
// as produced by a path filter, are laid out as separate values.
func TestEncoderSubtrees(t *testing.T) {
	toks := mustParse(t, `{"a": {"b": [1, 2]}, "c": 3}`)
	var kept []token.Token
	for _, tok := range toks {
		if len(tok.Path) >= 1 && (tok.Path[0].Key == "a" || tok.Path[0].Key == "c") {
			kept = append(kept, tok)
		}
	}
	var buf bytes.Buffer
	feed(t, &Encoder{Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: -1}}, kept)
	if diff := cmp.Diff("{\"b\": [1,2]}\n3\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEncoderSubscribed(t *testing.T) {
	var buf bytes.Buffer
	p := NewParser()
	p.Subscribe(&Encoder{Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: -1}})
	for _, chunk := range []string{`[1, `, `"two"`, `]`} {
		if _, err := p.WriteString(chunk); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[1,\"two\"]\n" {
		t.Errorf("got %q", got)
	}
}

func TestEchoEncoder(t *testing.T) {
	doc := " {\"a\" : [1, \"x\", true],\n \"b\": null}\n"
	var buf bytes.Buffer
	feed(t, &EchoEncoder{Printer: &format.DefaultPrinter{Writer: &buf}}, mustParse(t, doc))
	if diff := cmp.Diff(doc, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

type flushCounter struct{ n int }

func (f *flushCounter) Flush() error {
	f.n++
	return nil
}

func TestEchoEncoderHighlight(t *testing.T) {
	c := &format.Colorizer{
		KeyColorCode:     []byte("<k>"),
		ScalarColorCodes: [4][]byte{[]byte("<z>"), []byte("<b>"), []byte("<n>"), []byte("<s>")},
		ResetCode:        []byte("</>"),
	}
	var buf bytes.Buffer
	flusher := &flushCounter{}
	toks := mustParse(t, `{"a": [1, "x"], "b": false}`)
	feed(t, &EchoEncoder{
		Printer:   &format.DefaultPrinter{Writer: &buf},
		Colorizer: c,
		Flusher:   flusher,
	}, toks)
	want := `{<k>"a"</>: [<n>1</>, <s>"x"</>], <k>"b"</>: <b>false</>}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if flusher.n != len(toks) {
		t.Errorf("expected %d flushes, got %d", len(toks), flusher.n)
	}
	if strings.Contains(buf.String(), "EOF") {
		t.Error("EOF value should not be printed")
	}
}
