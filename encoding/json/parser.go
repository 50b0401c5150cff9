package json

import (
	"errors"
	"sync"

	"github.com/jonathanvanschenck/json-color-stream/internal/debug"
	"github.com/jonathanvanschenck/json-color-stream/internal/escape"
	"github.com/jonathanvanschenck/json-color-stream/internal/scanner"
	"github.com/jonathanvanschenck/json-color-stream/internal/stack"
	"github.com/jonathanvanschenck/json-color-stream/token"
)

// State is the lifecycle stage of a Parser.
type State uint8

const (
	NotStarted   State = iota // no data submitted yet
	Running                   // tokenizing available data
	AwaitingData              // all submitted data used, waiting for Write or End
	Completed                 // the document and the input ended correctly
	Errored                   // the input was rejected
)

var stateNames = [...]string{
	NotStarted:   "not-started",
	Running:      "running",
	AwaitingData: "awaiting-data",
	Completed:    "completed",
	Errored:      "errored",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// A Parser tokenizes one JSON document delivered in chunks.
//
// The document is fed with Write (any number of times) and then End.  Tokens
// are published to the observers registered with Subscribe as soon as they
// are recognised, so a consumer can process a document that is still
// arriving.
//
// Tokenizing happens on a goroutine that belongs to the Parser.  It starts
// with the first chunk and blocks whenever it needs more data than has been
// submitted.  Write returns once that happens (or the document is complete,
// or it was rejected), which gives the producer natural backpressure.
//
// Observers are called on the parser's goroutine, one token at a time and in
// document order.  They must not call Write or End.
//
// Once End has been called, the parser goroutine always terminates.  A
// producer that wants to give up on a document calls End.
type Parser struct {
	scanr *scanner.Scanner
	path  *stack.Stack[token.Segment]

	// Scratch space for the grammar
	str  escape.RuneWriter
	num  []byte
	term byte

	mu             sync.Mutex
	started        bool
	observers      []token.WriteStream
	errorObservers []func(error)
}

var _ interface {
	Write([]byte) (int, error)
	WriteString(string) (int, error)
	Close() error
} = &Parser{}

func NewParser() *Parser {
	return &Parser{
		scanr: scanner.NewScanner(),
		path:  stack.NewWithCapacity[token.Segment](16),
	}
}

// Subscribe registers an observer that receives every token emitted from now
// on.
func (p *Parser) Subscribe(w token.WriteStream) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers[:len(p.observers):len(p.observers)], w)
}

// OnError registers a function called with the error that stops the parser,
// if it fails.  It is called before the pending Write or End returns.
func (p *Parser) OnError(f func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorObservers = append(p.errorObservers, f)
}

// Write submits a chunk of the document.  It blocks until the parser has
// consumed everything submitted so far, reached the end of the document or
// failed.  Write after End returns ErrStreamClosed; Write after a failure
// returns the failure.
func (p *Parser) Write(chunk []byte) (int, error) {
	if err := p.scanr.Append(chunk); err != nil {
		return 0, p.closedError(err)
	}
	p.start()
	if err := p.scanr.Wait(); err != nil {
		return 0, err
	}
	return len(chunk), nil
}

// WriteString is like Write for a string chunk.
func (p *Parser) WriteString(chunk string) (int, error) {
	return p.Write([]byte(chunk))
}

// End submits the last chunk of the document (which may be empty) and
// declares that no more data will follow.  It blocks until the document has
// been fully tokenized, and returns an error if it was rejected, including
// when it is incomplete.
func (p *Parser) End(chunk []byte) error {
	if err := p.scanr.Close(chunk); err != nil {
		return p.closedError(err)
	}
	p.start()
	return p.scanr.Wait()
}

// Close is End with no final chunk.
func (p *Parser) Close() error {
	return p.End(nil)
}

// Closed reports whether End has been called.
func (p *Parser) Closed() bool {
	return p.scanr.Closed()
}

// State returns the current lifecycle stage of the parser.
func (p *Parser) State() State {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return NotStarted
	}
	if stopped, err := p.scanr.Stopped(); stopped {
		if err != nil {
			return Errored
		}
		return Completed
	}
	if p.scanr.Starved() {
		return AwaitingData
	}
	return Running
}

// Err returns the error that stopped the parser, if any.
func (p *Parser) Err() error {
	_, err := p.scanr.Stopped()
	return err
}

func (p *Parser) closedError(err error) error {
	if errors.Is(err, scanner.ErrClosed) {
		return ErrStreamClosed
	}
	return err
}

func (p *Parser) start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	go p.run()
}

func (p *Parser) run() {
	debug.Printf("parser started")
	err := p.parseDocument()
	if err != nil {
		debug.Printf("parser failed: %s", err)
		p.mu.Lock()
		errorObservers := p.errorObservers
		p.mu.Unlock()
		for _, f := range errorObservers {
			f(err)
		}
	} else {
		debug.Printf("parser completed")
	}
	p.scanr.Stop(err)
}

// Parse tokenizes a complete document.
func Parse(text string) ([]token.Token, error) {
	p := NewParser()
	acc := token.NewAccumulatorStream()
	p.Subscribe(acc)
	if err := p.End([]byte(text)); err != nil {
		return nil, err
	}
	return acc.GetTokens(), nil
}
