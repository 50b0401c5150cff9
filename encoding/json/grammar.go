package json

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go4.org/mem"

	"github.com/jonathanvanschenck/json-color-stream/internal/escape"
	"github.com/jonathanvanschenck/json-color-stream/internal/scanner"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// Terminator sets.  A value inside a container must be followed by one of
// these; commas and colons are consumed with the value, closing delimiters
// are left for the container.
const (
	arrayTerminators  = ",]"
	objectTerminators = ",}"
	keyTerminators    = ":"
	rootTerminators   = ""
)

type match uint8

const (
	noMatch match = iota
	matched
	endOfInput
)

// parseDocument parses a single object or array followed by the end of the
// input, then emits the EOF token.
func (p *Parser) parseDocument() error {
	b, err := p.skipSpaceAndPeek(false)
	if err != nil {
		return err
	}
	var ok bool
	switch b {
	case '{':
		ok, err = p.parseObject(rootTerminators)
	case '[':
		ok, err = p.parseArray(rootTerminators)
	default:
		return p.unexpected(b)
	}
	if err != nil {
		return err
	}
	if !ok {
		panic("logic error")
	}

	// Only whitespace may follow, and we need to know there is nothing more
	// to come.
	b, err = p.skipSpaceAndPeek(true)
	switch {
	case err == io.EOF:
	case err != nil:
		return err
	default:
		p.read()
		return p.syntaxError(ErrUnexpectedTrailingCharacter, "unexpected trailing character %q", b)
	}
	p.emit(token.EndOfDocument, token.EOFValue)
	return nil
}

// parseValue parses any value.  It returns false if the next character
// cannot start a value.
func (p *Parser) parseValue(terminators string) (bool, error) {
	if ok, err := p.parseArray(terminators); ok || err != nil {
		return ok, err
	}
	if ok, err := p.parseObject(terminators); ok || err != nil {
		return ok, err
	}
	if ok, err := p.parseString(terminators); ok || err != nil {
		return ok, err
	}
	if ok, err := p.parseNumber(terminators); ok || err != nil {
		return ok, err
	}
	if ok, err := p.parseKeyword(token.Null, token.NullValue, terminators); ok || err != nil {
		return ok, err
	}
	if ok, err := p.parseKeyword(token.True, token.TrueValue, terminators); ok || err != nil {
		return ok, err
	}
	return p.parseKeyword(token.False, token.FalseValue, terminators)
}

func (p *Parser) parseArray(terminators string) (bool, error) {
	b, err := p.skipSpaceAndPeek(false)
	if err != nil || b != '[' {
		return false, err
	}
	p.read()
	p.emit(token.StartArray, token.OpenArrayValue)

	index := 0
	trailingComma := false
	for {
		b, err := p.skipSpaceAndPeek(false)
		if err != nil {
			return false, err
		}
		if b == ']' {
			break
		}

		p.path.Push(token.Index(index))
		index++
		ok, err := p.parseValue(arrayTerminators)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, p.unexpectedNext()
		}
		p.popPath()
		trailingComma = p.term == ','
	}
	if trailingComma {
		return false, p.unexpected(']')
	}

	p.read()
	if err := p.finishContainer(terminators); err != nil {
		return false, err
	}
	p.emit(token.EndArray, token.CloseArrayValue)
	return true, nil
}

func (p *Parser) parseObject(terminators string) (bool, error) {
	b, err := p.skipSpaceAndPeek(false)
	if err != nil || b != '{' {
		return false, err
	}
	p.read()
	p.emit(token.StartObject, token.OpenObjectValue)

	trailingComma := false
	for {
		b, err := p.skipSpaceAndPeek(false)
		if err != nil {
			return false, err
		}
		if b == '}' {
			break
		}

		key, ok, err := p.parseKey()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, p.unexpectedNext()
		}

		p.path.Push(token.Key(key))
		ok, err = p.parseValue(objectTerminators)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, p.unexpectedNext()
		}
		p.popPath()
		trailingComma = p.term == ','
	}
	if trailingComma {
		return false, p.unexpected('}')
	}

	p.read()
	if err := p.finishContainer(terminators); err != nil {
		return false, err
	}
	p.emit(token.EndObject, token.CloseObjectValue)
	return true, nil
}

// finishContainer applies the terminator rule after a closing delimiter.
// The root container has no terminator.
func (p *Parser) finishContainer(terminators string) error {
	if terminators == rootTerminators {
		return nil
	}
	return p.finishValue(terminators)
}

// parseKey parses an object key and the colon after it.
func (p *Parser) parseKey() (string, bool, error) {
	return p.extractString(keyTerminators)
}

func (p *Parser) parseString(terminators string) (bool, error) {
	s, ok, err := p.extractString(terminators)
	if !ok || err != nil {
		return false, err
	}
	p.emit(token.String, s)
	return true, nil
}

// extractString reads a quoted string and its terminator, and returns the
// decoded content.
func (p *Parser) extractString(terminators string) (string, bool, error) {
	b, err := p.skipSpaceAndPeek(false)
	if err != nil || b != '"' {
		return "", false, err
	}
	p.read()

	p.str.Reset()
	for {
		c, err := p.read()
		if err != nil {
			return "", false, err
		}
		if c == '"' {
			break
		}
		if c != '\\' {
			p.str.WriteByte(c)
			continue
		}

		c, err = p.read()
		if err != nil {
			return "", false, err
		}
		switch c {
		case '"', '\\', '/':
			p.str.WriteByte(c)
		case 'b':
			p.str.WriteByte('\b')
		case 'f':
			p.str.WriteByte('\f')
		case 'n':
			p.str.WriteByte('\n')
		case 'r':
			p.str.WriteByte('\r')
		case 't':
			p.str.WriteByte('\t')
		case 'u':
			var hex [4]byte
			for i := range hex {
				if hex[i], err = p.read(); err != nil {
					return "", false, err
				}
				if !scanner.IsHexDigit(hex[i]) {
					return "", false, p.syntaxError(ErrInvalidUnicodeEscape, "invalid unicode escape \\u%s", hex[:i+1])
				}
			}
			r, err := escape.ParseHex4(mem.B(hex[:]))
			if err != nil {
				return "", false, p.syntaxError(ErrInvalidUnicodeEscape, "invalid unicode escape \\u%s", hex[:])
			}
			p.str.WriteEscaped(r)
		default:
			return "", false, p.syntaxError(ErrInvalidEscapeCharacter, "invalid escape character %q", c)
		}
	}
	s := p.str.String()

	if err := p.finishValue(terminators); err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (p *Parser) parseNumber(terminators string) (bool, error) {
	if _, err := p.skipSpaceAndPeek(false); err != nil {
		return false, err
	}
	if m, err := p.peekMatch(scanner.IsNumberStart[byte], false); m != matched || err != nil {
		return false, err
	}

	p.num = p.num[:0]
	if _, err := p.accept(isMinus); err != nil {
		return false, err
	}

	// Either a single zero, or a non-zero digit followed by digits.  A missing
	// integer part is let through to the fraction.
	b, err := p.peek(false)
	if err != nil {
		return false, err
	}
	switch {
	case b == '0':
		if _, err := p.accept(scanner.IsDigit[byte]); err != nil {
			return false, err
		}
	case scanner.IsNonZeroDigit(b):
		if err := p.acceptDigits(); err != nil {
			return false, err
		}
	case b == '.':
	default:
		return false, p.syntaxError(ErrInvalidNumber, "failed to read number at character %q", b)
	}

	if ok, err := p.accept(isDot); err != nil {
		return false, err
	} else if ok {
		if err := p.requireDigits(); err != nil {
			return false, err
		}
	}

	if ok, err := p.accept(scanner.IsExponent[byte]); err != nil {
		return false, err
	} else if ok {
		if _, err := p.accept(scanner.IsSign[byte]); err != nil {
			return false, err
		}
		if err := p.requireDigits(); err != nil {
			return false, err
		}
	}

	number := string(p.num)
	if _, err := strconv.ParseFloat(number, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
		return false, p.syntaxError(ErrInvalidNumber, "failed to read number %q", number)
	}

	if err := p.finishValue(terminators); err != nil {
		return false, err
	}
	p.emit(token.Number, number)
	return true, nil
}

func isMinus(b byte) bool { return b == '-' }
func isDot(b byte) bool   { return b == '.' }

// accept consumes the next character into the number buffer if it belongs
// to class.
func (p *Parser) accept(class func(byte) bool) (bool, error) {
	m, err := p.peekMatch(class, false)
	if m != matched || err != nil {
		return false, err
	}
	b, err := p.read()
	if err != nil {
		return false, err
	}
	p.num = append(p.num, b)
	return true, nil
}

func (p *Parser) acceptDigits() error {
	for {
		ok, err := p.accept(scanner.IsDigit[byte])
		if !ok || err != nil {
			return err
		}
	}
}

// requireDigits is acceptDigits for a fraction or exponent, which cannot be
// empty.
func (p *Parser) requireDigits() error {
	n := len(p.num)
	if err := p.acceptDigits(); err != nil {
		return err
	}
	if len(p.num) == n {
		return p.syntaxError(ErrInvalidNumber, "failed to read number %q", p.num)
	}
	return nil
}

// parseKeyword parses one of the literals true, false and null.
func (p *Parser) parseKeyword(kind token.Kind, keyword string, terminators string) (bool, error) {
	b, err := p.skipSpaceAndPeek(false)
	if err != nil || b != keyword[0] {
		return false, err
	}
	for i := 0; i < len(keyword); i++ {
		b, err := p.peek(false)
		if err != nil {
			return false, err
		}
		if b != keyword[i] {
			return false, p.unexpected(b)
		}
		p.read()
	}

	if err := p.finishValue(terminators); err != nil {
		return false, err
	}
	p.emit(kind, keyword)
	return true, nil
}

// finishValue checks that the value just read is followed by one of the
// terminators.  Commas and colons are consumed, closing delimiters are not.
// The terminator seen is recorded in p.term (0 for a closing delimiter).
func (p *Parser) finishValue(terminators string) error {
	p.term = 0
	b, err := p.skipSpaceAndPeek(false)
	if err != nil {
		return err
	}
	if strings.IndexByte(terminators, b) < 0 {
		return p.unexpected(b)
	}
	if b == ',' || b == ':' {
		p.read()
		p.term = b
	}
	return nil
}

// skipSpaceAndPeek skips whitespace and returns the next character.  At the
// end of the input it returns io.EOF if allowEOF is true, otherwise a syntax
// error.
func (p *Parser) skipSpaceAndPeek(allowEOF bool) (byte, error) {
	b, err := p.scanr.SkipSpaceAndPeek()
	if err == io.EOF && !allowEOF {
		return 0, p.syntaxError(ErrUnexpectedEndOfInput, "unexpected end of input")
	}
	return b, err
}

func (p *Parser) peek(allowEOF bool) (byte, error) {
	b, err := p.scanr.Peek()
	if err == io.EOF && !allowEOF {
		return 0, p.syntaxError(ErrUnexpectedEndOfInput, "unexpected end of input")
	}
	return b, err
}

func (p *Parser) read() (byte, error) {
	b, err := p.scanr.Read()
	if err == io.EOF {
		return 0, p.syntaxError(ErrUnexpectedEndOfInput, "unexpected end of input")
	}
	return b, err
}

func (p *Parser) peekMatch(class func(byte) bool, allowEOF bool) (match, error) {
	b, err := p.peek(allowEOF)
	switch {
	case err == io.EOF:
		return endOfInput, nil
	case err != nil:
		return noMatch, err
	case class(b):
		return matched, nil
	default:
		return noMatch, nil
	}
}

func (p *Parser) popPath() {
	if _, ok := p.path.Pop(); !ok {
		panic("logic error")
	}
}

// emit publishes a token made of everything consumed since the previous one.
func (p *Parser) emit(kind token.Kind, value string) {
	tok := token.Token{
		Kind:  kind,
		Path:  token.Path(p.path.ToSlice()),
		Value: value,
		Raw:   string(p.scanr.Discard()),
	}
	p.mu.Lock()
	observers := p.observers
	p.mu.Unlock()
	for _, w := range observers {
		w.Put(tok)
	}
}

func (p *Parser) unexpected(b byte) error {
	return p.syntaxError(ErrUnexpectedCharacter, "unexpected character %q", b)
}

// unexpectedNext reports the next character as unexpected.
func (p *Parser) unexpectedNext() error {
	b, err := p.peek(false)
	if err != nil {
		return err
	}
	return p.unexpected(b)
}

func (p *Parser) syntaxError(err error, msg string, args ...any) error {
	pos := p.scanr.CurrentPos()
	return &SyntaxError{
		Line:    pos.Line,
		Col:     pos.Col,
		Offset:  pos.Offset,
		Path:    token.Path(p.path.ToSlice()),
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
}
