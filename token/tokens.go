package token

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathanvanschenck/json-color-stream/internal/escape"
)

// A Token is an item in a stream that encodes a JSON document.
// For example, the document
//
//	{"id": 123, "tags": ["important", "new"]}
//
// would be represented by the stream of Token (in pseudocode for
// clarity):
//
//	{              -> object         path=$
//	"id": 123,     -> number         path=$["id"]          value=123
//	"tags": [      -> array          path=$["tags"]
//	"important",   -> string         path=$["tags"][0]     value=important
//	"new"          -> string         path=$["tags"][1]     value=new
//	]              -> array_closing  path=$["tags"]
//	}              -> object_closing path=$
//	               -> EOF            path=$
//
// Each token carries the exact source text consumed while recognising it in
// Raw, so concatenating the Raw fields of a stream gives back the input.
//
// Tokens are values: once emitted they are never modified, and their Path is
// a private copy.
type Token struct {
	Kind Kind

	// Location of the token in the document tree.  The root container's own
	// open and close tokens have an empty path.
	Path Path

	// For containers and keywords a fixed string ("{", "]", "true", ...).
	// For strings the decoded text.  For numbers the literal source digits.
	Value string

	// Source text consumed to produce this token.
	Raw string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s, %q, %q)", t.Kind, t.Path, t.Value, t.Raw)
}

// IsOpen reports whether t starts a container.
func (t Token) IsOpen() bool {
	return t.Kind == StartObject || t.Kind == StartArray
}

// IsClose reports whether t ends a container.
func (t Token) IsClose() bool {
	return t.Kind == EndObject || t.Kind == EndArray
}

// IsScalar reports whether t is a complete scalar value.
func (t Token) IsScalar() bool {
	switch t.Kind {
	case String, Number, True, False, Null:
		return true
	}
	return false
}

// Kind identifies the type of a token.
type Kind uint8

const (
	StartObject   Kind = iota // "{"
	EndObject                 // "}"
	StartArray                // "["
	EndArray                  // "]"
	String                    // a decoded string value
	Number                    // a number, kept as source text
	True                      // the literal true
	False                     // the literal false
	Null                      // the literal null
	EndOfDocument             // end of the top-level value and of the input
)

var kindNames = [...]string{
	StartObject:   "object",
	EndObject:     "object_closing",
	StartArray:    "array",
	EndArray:      "array_closing",
	String:        "string",
	Number:        "number",
	True:          "true",
	False:         "false",
	Null:          "null",
	EndOfDocument: "EOF",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Fixed token values.
const (
	OpenObjectValue  = "{"
	CloseObjectValue = "}"
	OpenArrayValue   = "["
	CloseArrayValue  = "]"
	TrueValue        = "true"
	FalseValue       = "false"
	NullValue        = "null"
	EOFValue         = "EOF"
)

// A Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns the Segment for the object member called k.
func Key(k string) Segment {
	return Segment{Key: k}
}

// Index returns the Segment for the array element at position i.  It panics
// if i is negative.
func Index(i int) Segment {
	if i < 0 {
		panic("negative array index")
	}
	return Segment{Index: i, IsIndex: true}
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "[" + escape.QuoteString(s.Key) + "]"
}

// A Path locates a token in the document tree, starting from the root.
type Path []Segment

// Clone returns a copy of p that does not share storage with it.
func (p Path) Clone() Path {
	if len(p) == 0 {
		return Path{}
	}
	return slices.Clone(p)
}

func (p Path) Depth() int {
	return len(p)
}

// Equal reports whether p and q designate the same location.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// HasPrefix reports whether q is an ancestor of (or equal to) p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && slices.Equal(p[:len(q)], q)
}

// Last returns the final segment of p, or false if p is the root.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// String renders p in bracket notation, e.g. $["users"][0]["name"].
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}
