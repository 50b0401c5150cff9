package scanner

import (
	"errors"
	"io"
	"slices"
	"sync"
)

// ErrClosed is returned when data is appended after the scanner was closed.
var ErrClosed = errors.New("scanner closed")

type Pos struct {
	Line   int
	Col    int
	Offset int
}

// A Scanner holds text delivered in chunks by a producer and lets a single
// consumer read it byte by byte.  When the consumer runs out of data it
// blocks until the producer appends more or closes the scanner.
//
// Producer side: Append, Close, Wait.
// Consumer side: Peek, Read, SkipSpaceAndPeek, Discard, Stop.
type Scanner struct {
	mu   sync.Mutex
	cond sync.Cond

	// Pending text.  buf[:start] has been discarded, buf[start:currentIndex]
	// has been consumed but not yet discarded.
	buf   []byte
	start int

	// 0 <= start <= currentIndex <= len(buf)
	currentIndex int

	// Position of buf[currentIndex] from the start of the input (0-based).
	currentPos Pos

	// No more data will be appended.  Never reset once set.
	closed bool

	// The consumer is blocked waiting for data.
	starved bool

	// The consumer has finished, err holds the reason if it failed.
	stopped bool
	err     error
}

func NewScanner() *Scanner {
	s := &Scanner{}
	s.cond.L = &s.mu
	return s
}

// Append adds a chunk at the end of the pending text and wakes up the
// consumer.
func (s *Scanner) Append(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.appendLocked(chunk)
	return nil
}

// Close appends a final chunk (which may be empty) and records that no more
// data will follow.
func (s *Scanner) Close(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.appendLocked(chunk)
	return nil
}

func (s *Scanner) appendLocked(chunk []byte) {
	if s.start > 0 && s.start >= cap(s.buf)/2 {
		s.compact()
	}
	s.buf = append(s.buf, chunk...)
	s.starved = false
	s.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (s *Scanner) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Starved reports whether the consumer is waiting for more data.
func (s *Scanner) Starved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starved
}

// Wait blocks until the consumer has used up all the available data, or has
// stopped.  In the latter case it returns the error passed to Stop.
func (s *Scanner) Wait() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.starved && !s.stopped {
		s.cond.Wait()
	}
	return s.err
}

// Stop records that the consumer will not read any more, and releases
// everything blocked in Wait.
func (s *Scanner) Stop(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.starved = false
	s.err = err
	s.cond.Broadcast()
}

// Stopped reports whether Stop has been called, and with which error.
func (s *Scanner) Stopped() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped, s.err
}

// fill makes sure there is a byte to read at currentIndex, blocking if
// needed.  It returns false if the scanner is closed and exhausted.
// Must be called with s.mu held.
func (s *Scanner) fill() bool {
	for s.currentIndex >= len(s.buf) {
		if s.closed {
			return false
		}
		s.starved = true
		s.cond.Broadcast()
		s.cond.Wait()
	}
	return true
}

// Peek returns the next byte without consuming it.  It returns io.EOF if the
// scanner is closed and there is no more data.
func (s *Scanner) Peek() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fill() {
		return 0, io.EOF
	}
	return s.buf[s.currentIndex], nil
}

// Read consumes and returns the next byte.  It returns io.EOF if the scanner
// is closed and there is no more data.
func (s *Scanner) Read() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fill() {
		return 0, io.EOF
	}
	b := s.buf[s.currentIndex]
	s.advance(b)
	return b, nil
}

func (s *Scanner) advance(b byte) {
	s.currentIndex++
	s.currentPos.Offset++
	switch {
	case b == '\n':
		s.currentPos.Line++
		s.currentPos.Col = 0
	case b&0xC0 != 0x80:
		// Not a utf8 continuation byte
		s.currentPos.Col++
	}
}

// SkipSpaceAndPeek consumes whitespace and returns the first byte that is not
// whitespace, without consuming it.  It returns io.EOF if the input ends
// first.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.fill() {
		b := s.buf[s.currentIndex]
		if !IsSpace(b) {
			return b, nil
		}
		s.advance(b)
	}
	return 0, io.EOF
}

// compact moves the text that has not been discarded to the front of buf.
func (s *Scanner) compact() {
	n := copy(s.buf, s.buf[s.start:])
	s.buf = s.buf[:n]
	s.currentIndex -= s.start
	s.start = 0
}

// Discard drops the consumed prefix of the pending text and returns a copy
// of it.  The unread text stays where it is.
func (s *Scanner) Discard() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	consumed := slices.Clone(s.buf[s.start:s.currentIndex])
	if s.currentIndex == len(s.buf) {
		s.buf = s.buf[:0]
		s.currentIndex = 0
	}
	s.start = s.currentIndex
	return consumed
}

func (s *Scanner) CurrentPos() Pos {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPos
}
